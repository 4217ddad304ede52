package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/twaasoulElm3refa/editor-tool/internal/model"
	"github.com/twaasoulElm3refa/editor-tool/internal/repository"
	"github.com/twaasoulElm3refa/editor-tool/pkg/llm"
	"github.com/twaasoulElm3refa/editor-tool/pkg/prompt"
)

// waitTimeout bounds the blocking variant of the queued path; a stuck worker
// turns into a 504 instead of an open-ended request.
const waitTimeout = 60 * time.Second

type EditorStore interface {
	FetchText(id int64) (string, error)
	Ping() error
}

type TaskQueue interface {
	Enqueue(task model.EditorTask) error
	State(taskID string) (*model.TaskState, error)
	Wait(ctx context.Context, taskID string, timeout time.Duration) (*model.TaskState, error)
}

type EditorHandler struct {
	store     EditorStore
	completer llm.Completer
	queue     TaskQueue
}

func NewEditorHandler(store EditorStore, completer llm.Completer, queue TaskQueue) *EditorHandler {
	return &EditorHandler{store: store, completer: completer, queue: queue}
}

// validate parses and checks a request body shared by the synchronous and
// queued paths. It replies on the context itself when the request is bad.
func (h *EditorHandler) validate(c *gin.Context) (*EditorProcessRequest, prompt.Tool, bool) {
	var req EditorProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return nil, 0, false
	}

	if req.ID == 0 || strings.TrimSpace(req.ToolName) == "" || strings.TrimSpace(req.Date) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields."})
		return nil, 0, false
	}

	tool, err := prompt.ParseTool(req.ToolName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown tool name"})
		return nil, 0, false
	}

	return &req, tool, true
}

// resolveText prefers the caller-supplied text and falls back to the editor
// table. It replies on the context when the row is missing or empty.
func (h *EditorHandler) resolveText(c *gin.Context, req *EditorProcessRequest) (string, bool) {
	text := strings.TrimSpace(req.Text)
	if text != "" {
		return text, true
	}

	stored, err := h.store.FetchText(req.ID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No row found for id"})
		return "", false
	}
	if err != nil {
		slog.Error("error fetching editor text", "error", err, "row_id", req.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return "", false
	}

	text = strings.TrimSpace(stored)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No text to process"})
		return "", false
	}

	return text, true
}

// ProcessEditor runs one editor operation inside the request. The result is
// returned to the plugin and deliberately not written back to the table; the
// CMS stays the only writer of the result column.
func (h *EditorHandler) ProcessEditor(c *gin.Context) {
	req, tool, ok := h.validate(c)
	if !ok {
		return
	}

	text, ok := h.resolveText(c, req)
	if !ok {
		return
	}

	instruction := prompt.Build(tool, prompt.Input{
		Text:        text,
		Date:        req.Date,
		JournalName: req.JournalName,
	})

	result, err := h.completer.Complete(c.Request.Context(), prompt.EditorSystemPrompt, instruction)
	if err != nil {
		slog.Error("error running editor completion", "error", err, "tool", tool.String(), "row_id", req.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, EditorProcessResponse{
		Status: model.StatusCompleted,
		Result: result,
	})
}

// EnqueueEditor hands the same unit of work to the background runner. With
// ?wait=true the handler blocks on the result backend up to waitTimeout and
// returns the terminal shape instead of the queued acknowledgement.
func (h *EditorHandler) EnqueueEditor(c *gin.Context) {
	req, _, ok := h.validate(c)
	if !ok {
		return
	}

	task := model.EditorTask{
		TaskID:      uuid.NewString(),
		RowID:       req.ID,
		Tool:        req.ToolName,
		Date:        req.Date,
		JournalName: req.JournalName,
		Text:        req.Text,
	}

	if err := h.queue.Enqueue(task); err != nil {
		slog.Error("error enqueueing editor task", "error", err, "row_id", req.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Queue error"})
		return
	}

	if c.Query("wait") != "true" {
		c.JSON(http.StatusAccepted, EnqueueResponse{
			Status: model.StatusQueued,
			RowID:  req.ID,
			TaskID: task.TaskID,
		})
		return
	}

	state, err := h.queue.Wait(c.Request.Context(), task.TaskID, waitTimeout)
	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Task did not complete in time"})
		return
	}
	if err != nil {
		slog.Error("error waiting for editor task", "error", err, "task_id", task.TaskID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Queue error"})
		return
	}

	if state.Status == model.StatusFailed {
		c.JSON(http.StatusInternalServerError, gin.H{"error": state.Error})
		return
	}

	c.JSON(http.StatusOK, EditorProcessResponse{
		Status: state.Status,
		Result: state.Result,
	})
}

// GetTask is the polling endpoint over the result backend.
func (h *EditorHandler) GetTask(c *gin.Context) {
	taskID := c.Param("id")

	state, err := h.queue.State(taskID)
	if err != nil {
		slog.Error("error reading task state", "error", err, "task_id", taskID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Queue error"})
		return
	}

	if state == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, TaskStatusResponse{
		TaskID: taskID,
		Status: state.Status,
		Result: state.Result,
		Error:  state.Error,
	})
}

func (h *EditorHandler) GetHealth(c *gin.Context) {
	if err := h.store.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
