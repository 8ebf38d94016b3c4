package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager holds the conversation for the lifetime of the process.
// Messages are append-only; nothing is written to disk.
type Manager struct {
	mu        sync.RWMutex
	id        string
	startedAt time.Time
	messages  []Message
}

// NewManager starts a new, empty session
func NewManager() *Manager {
	return &Manager{
		id:        uuid.New().String(),
		startedAt: time.Now(),
	}
}

// SessionID identifies the current session in logs.
func (m *Manager) SessionID() string {
	return m.id
}

// StartedAt returns when the session began.
func (m *Manager) StartedAt() time.Time {
	return m.startedAt
}

// AddMessage appends a message to the session
func (m *Manager) AddMessage(msg Message) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	m.messages = append(m.messages, msg)
}

// GetRecentMessages returns a copy of the last limit messages
func (m *Manager) GetRecentMessages(limit int) []Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 || len(m.messages) == 0 {
		return []Message{}
	}

	start := 0
	if len(m.messages) > limit {
		start = len(m.messages) - limit
	}

	out := make([]Message, len(m.messages)-start)
	copy(out, m.messages[start:])
	return out
}

// Messages returns a copy of the whole session
func (m *Manager) Messages() []Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Len returns the number of messages in the session
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.messages)
}
