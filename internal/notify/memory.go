package notify

import "sync"

// Memory records notifications for tests to assert on.
type Memory struct {
	mu   sync.RWMutex
	seen []Notification
}

func NewMemory() *Memory {
	return &Memory{seen: make([]Notification, 0)}
}

func (m *Memory) Notify(n Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = append(m.seen, n)
}

// All returns the notifications in arrival order.
func (m *Memory) All() []Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Notification, len(m.seen))
	copy(out, m.seen)
	return out
}

// LastSeverity returns the severity of the most recent notification, or ""
// when none arrived.
func (m *Memory) LastSeverity() Severity {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.seen) == 0 {
		return ""
	}
	return m.seen[len(m.seen)-1].Severity
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = m.seen[:0]
}
