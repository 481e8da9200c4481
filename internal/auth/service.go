package auth

import (
	"context"
	goerrors "errors"
	"log/slog"
	"strings"
	"time"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/internal/user"
	"github.com/frahmantamala/hopecare/pkg/metrics"
	"golang.org/x/crypto/bcrypt"
)

// UserFinder is the slice of the IdentityStore the gate needs.
type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	TouchLastLogin(ctx context.Context, id int64)
}

// Service is the AccessGate: credential checks and the session lifecycle.
type Service struct {
	users      UserFinder
	sessions   SessionStore
	sessionTTL time.Duration
	now        func() time.Time
	logger     *slog.Logger
	metrics    *metrics.Ledger

	// compared against when the username is unknown so both failure paths
	// cost one bcrypt comparison
	dummyHash []byte
}

func NewService(users UserFinder, sessions SessionStore, sessionTTL time.Duration, logger *slog.Logger) *Service {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("hopecare-dummy-password"), bcrypt.DefaultCost)
	return &Service{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		now:        time.Now,
		logger:     logger,
		dummyHash:  dummy,
	}
}

// WithClock replaces the time source; tests use it to expire sessions.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) WithMetrics(m *metrics.Ledger) *Service {
	s.metrics = m
	return s
}

// Authenticate returns the user for valid credentials. Unknown users, inactive
// users and wrong passwords all fail with the same ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*user.User, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if goerrors.Is(err, errors.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			s.logger.InfoContext(ctx, "authentication failed")
			return nil, errors.ErrInvalidCredentials
		}
		s.logger.ErrorContext(ctx, "failed to look up user", "error", err)
		return nil, errors.WrapStore(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.InfoContext(ctx, "authentication failed")
		return nil, errors.ErrInvalidCredentials
	}
	if !u.IsActive {
		s.logger.InfoContext(ctx, "authentication failed")
		return nil, errors.ErrInvalidCredentials
	}

	return u, nil
}

// Login authenticates and opens a session. The last-login update is best effort.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*Session, *user.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, nil, err
	}

	u, err := s.Authenticate(ctx, dto.Username, dto.Password)
	if err != nil {
		s.metrics.Login(false)
		return nil, nil, err
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, nil, errors.NewInternalError("failed to generate session token", err)
	}

	now := s.now()
	session := &Session{
		Token:     token,
		UserID:    u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		s.logger.ErrorContext(ctx, "failed to create session", "user_id", u.ID, "error", err)
		return nil, nil, errors.NewStoreError(err)
	}

	s.users.TouchLastLogin(ctx, u.ID)
	s.metrics.Login(true)

	s.logger.InfoContext(ctx, "user logged in", "user_id", u.ID, "role", u.Role)
	return session, u, nil
}

// ResolveSession returns the live session for token. Expired sessions are
// deleted on read.
func (s *Service) ResolveSession(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, errors.ErrSessionRequired
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if goerrors.Is(err, ErrSessionNotFound) {
			return nil, errors.ErrSessionRequired
		}
		s.logger.ErrorContext(ctx, "failed to load session", "error", err)
		return nil, errors.NewStoreError(err)
	}

	if session.ExpiredAt(s.now()) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			s.logger.WarnContext(ctx, "failed to delete expired session", "user_id", session.UserID, "error", err)
		}
		return nil, errors.ErrSessionExpired
	}

	return session, nil
}

// Logout invalidates the session. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil && !goerrors.Is(err, ErrSessionNotFound) {
		s.logger.ErrorContext(ctx, "failed to delete session", "error", err)
		return errors.NewStoreError(err)
	}
	return nil
}

// SweepExpired removes every expired session and returns how many were dropped.
func (s *Service) SweepExpired(ctx context.Context) (int, error) {
	n, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, errors.NewStoreError(err)
	}
	if n > 0 {
		s.logger.DebugContext(ctx, "expired sessions removed", "count", n)
	}
	return n, nil
}

// StartJanitor sweeps expired sessions every interval until ctx is done.
func (s *Service) StartJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.SweepExpired(ctx); err != nil {
					s.logger.WarnContext(ctx, "session sweep failed", "error", err)
				}
			}
		}
	}()
}
