package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/frahmantamala/hopecare/internal/auth"
)

// Memory keeps sessions in process. It is the default for single-node setups
// and for tests.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]auth.Session
}

func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]auth.Session)}
}

func (m *Memory) Create(ctx context.Context, session *auth.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.Token] = *session
	return nil
}

func (m *Memory) Get(ctx context.Context, token string) (*auth.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, auth.ErrSessionNotFound
	}
	return &s, nil
}

func (m *Memory) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *Memory) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for token, s := range m.sessions {
		if s.ExpiredAt(now) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed, nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
