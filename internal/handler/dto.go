package handler

import (
	"github.com/twaasoulElm3refa/editor-tool/internal/model"
	"github.com/twaasoulElm3refa/editor-tool/pkg/news"
)

type EditorProcessRequest struct {
	ID          int64  `json:"id"`
	ToolName    string `json:"tool_name"`
	Date        string `json:"date"`
	JournalName string `json:"journal_name"`
	Text        string `json:"text"`
}

type EditorProcessResponse struct {
	Status string `json:"status"`
	Result string `json:"result"`
}

type EnqueueResponse struct {
	Status string `json:"status"`
	RowID  int64  `json:"row_id"`
	TaskID string `json:"task_id"`
}

type TaskStatusResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

type SessionRequest struct {
	UserID  int64  `json:"user_id"`
	WPNonce string `json:"wp_nonce"`
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
}

type ChatRequest struct {
	SessionID     string               `json:"session_id"`
	UserID        int64                `json:"user_id"`
	Message       string               `json:"message"`
	VisibleValues []model.VisibleValue `json:"visible_values"`
}

type NewsSearchResponse struct {
	Query   string      `json:"q"`
	Results []news.Item `json:"results"`
}
