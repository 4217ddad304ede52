package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/twaasoulElm3refa/editor-tool/pkg/llm"
	"github.com/twaasoulElm3refa/editor-tool/pkg/news"
)

const maxNewsItems = 5

const chatSystemPrompt = `أنت مساعد تحرير صحفي يعمل داخل أداة تحرير تابعة لوكالة أنباء عربية. ساعد المحرر في صياغة الأخبار وتحسينها والإجابة عن أسئلته بدقة وإيجاز، بالاعتماد على المعلومات المعروضة على شاشته إن وُجدت.`

// streamErrorMessage is the single readable fragment appended when the
// provider fails mid-stream.
const streamErrorMessage = "عذرًا، تعذر الحصول على رد من النموذج حاليًا. حاول مرة أخرى."

type ChatHandler struct {
	sessions     SessionVerifier
	completer    llm.Completer
	news         news.Searcher
	autoSearch   bool
	newsLanguage string
}

func NewChatHandler(sessions SessionVerifier, completer llm.Completer, searcher news.Searcher, autoSearch bool, newsLanguage string) *ChatHandler {
	return &ChatHandler{
		sessions:     sessions,
		completer:    completer,
		news:         searcher,
		autoSearch:   autoSearch,
		newsLanguage: newsLanguage,
	}
}

// Chat streams an assistant reply as incremental text/plain fragments. The
// connection stays open for the duration of generation; client disconnect
// cancels the request context and the provider stream is abandoned.
func (h *ChatHandler) Chat(c *gin.Context) {
	claims, err := h.sessions.Verify(c.GetHeader("Authorization"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing message"})
		return
	}

	system := chatSystemPrompt

	if contextBlock := buildChatContext(req.VisibleValues); contextBlock != "" {
		system += "\n\n" + contextBlock
	}

	if newsBlock := h.newsBlock(message, &req); newsBlock != "" {
		system += "\n\nأخبار حديثة ذات صلة:\n" + newsBlock
	}

	slog.Info("chat turn", "session_id", claims.SessionID, "user_id", claims.UserID, "message_len", len(message))

	fragments := h.completer.Stream(c.Request.Context(), system, message)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)

	c.Stream(func(w io.Writer) bool {
		fragment, ok := <-fragments
		if !ok {
			return false
		}

		if fragment.Err != nil {
			slog.Error("chat stream failed", "error", fragment.Err, "session_id", claims.SessionID)
			io.WriteString(w, streamErrorMessage)
			return false
		}

		io.WriteString(w, fragment.Text)
		return true
	})
}

// newsBlock runs the search trigger heuristic and formats the results. Any
// provider failure is swallowed; a chat turn never fails over news.
func (h *ChatHandler) newsBlock(message string, req *ChatRequest) string {
	if h.news == nil || !h.news.Enabled() {
		return ""
	}

	if !shouldSearchNews(message, h.autoSearch) {
		return ""
	}

	query := deriveNewsQuery(message, req.VisibleValues)
	if query == "" {
		return ""
	}

	items, err := h.news.Search(query, h.newsLanguage, maxNewsItems)
	if err != nil {
		slog.Warn("news search failed, continuing without news", "error", err, "query", query)
		return ""
	}

	return news.FormatBlock(items)
}
