package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/twaasoulElm3refa/editor-tool/internal/auth"
)

type SessionIssuer interface {
	CreateSession(userID int64) (string, string, error)
}

type SessionVerifier interface {
	Verify(authorization string) (*auth.Claims, error)
}

type SessionHandler struct {
	sessions SessionIssuer
}

func NewSessionHandler(sessions SessionIssuer) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// CreateSession issues a chat session token for a WordPress user. The
// wp_nonce field is accepted for the plugin's benefit but not checked here;
// the plugin already validated it against WordPress before calling.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id"})
		return
	}

	sessionID, token, err := h.sessions.CreateSession(req.UserID)
	if err != nil {
		slog.Error("error creating session", "error", err, "user_id", req.UserID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session error"})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		SessionID: sessionID,
		Token:     token,
	})
}
