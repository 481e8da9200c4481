package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/frahmantamala/hopecare/internal/user"
)

// ErrSessionNotFound is returned by a SessionStore for unknown tokens.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExpired is returned when a store is asked to keep a session whose
// expiry has already passed.
var ErrSessionExpired = errors.New("session already expired")

// Session binds an opaque token to exactly one user until ExpiresAt.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      user.Role `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) ExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func (s *Session) IsAdministrator() bool {
	return s.Role == user.RoleAdministrator
}

// SessionStore is injected into the gate; implementations live in sessionstore.
type SessionStore interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
