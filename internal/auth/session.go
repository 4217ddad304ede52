package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionTTL is the fixed token lifetime. There is no refresh and no
// revocation; a leaked token stays valid until natural expiry.
const SessionTTL = 2 * time.Hour

var ErrUnauthorized = errors.New("unauthorized")

// Claims is the full session state. Nothing is stored server-side; the
// signed token carries everything.
type Claims struct {
	SessionID string `json:"session_id"`
	UserID    int64  `json:"user_id"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    SessionTTL,
	}
}

// CreateSession issues a fresh session id and its signed token for userID.
func (m *Manager) CreateSession(userID int64) (string, string, error) {
	sessionID := uuid.NewString()
	now := time.Now()

	claims := Claims{
		SessionID: sessionID,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", "", fmt.Errorf("signing session token: %w", err)
	}

	return sessionID, token, nil
}

// Verify checks an Authorization header value. Missing header, missing
// Bearer prefix, bad signature and expired token all come back as
// ErrUnauthorized.
func (m *Manager) Verify(authorization string) (*Claims, error) {
	raw, found := strings.CutPrefix(authorization, "Bearer ")
	if !found || strings.TrimSpace(raw) == "" {
		return nil, ErrUnauthorized
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})

	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}

	return claims, nil
}
