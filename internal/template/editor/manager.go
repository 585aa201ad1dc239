package editor

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/abdouni493/auto-rental-application/internal/clock"
	"github.com/abdouni493/auto-rental-application/internal/template/domain"
)

var ErrSessionNotFound = errors.New("session_not_found")

// Manager tracks open designer sessions by id. Each session owns its
// working copy; closing a session without saving simply discards it.
type Manager struct {
	mu       sync.RWMutex
	clock    clock.Clock
	sessions map[string]*Session
}

func NewManager(clk clock.Clock) *Manager {
	return &Manager{
		clock:    clk,
		sessions: make(map[string]*Session),
	}
}

// Open starts a designer session over a copy of the template and returns
// the session id.
func (m *Manager) Open(tpl domain.Template) (string, *Session) {
	id := uuid.NewString()
	session := Open(tpl, m.clock)

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()
	return id, session
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Close discards a session and its working copy.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
