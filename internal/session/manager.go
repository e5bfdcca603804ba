package session

import (
	"sync"

	"github.com/google/uuid"
)

// Manager owns the process-wide study sessions, one per learner. It is the
// explicitly injected holder of session state: handlers reach sessions only
// through their Manager, never through package globals, so tests and future
// multi-tenant deployments can run isolated instances.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Get returns the learner's session, creating an empty one on first use.
func (m *Manager) Get(learnerID uuid.UUID) *Session {
	m.mu.RLock()
	s, ok := m.sessions[learnerID]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[learnerID]; ok {
		return s
	}
	s = NewSession()
	m.sessions[learnerID] = s
	return s
}

// Drop removes a learner's session. The next Get re-creates an empty one,
// which will be re-seeded from persisted progress.
func (m *Manager) Drop(learnerID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, learnerID)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
