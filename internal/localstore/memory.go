package localstore

import "sync"

// Memory is an in-process store. It backs tests and the memory storage mode,
// where losing data on exit is the point.
type Memory struct {
	mu    sync.RWMutex
	slots map[string][]byte

	// FailSet, when non-nil, is returned by every Set. Tests use it to
	// exercise degraded persistence.
	FailSet error
}

func NewMemory() *Memory {
	return &Memory{slots: map[string][]byte{}}
}

func (m *Memory) Get(slot string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.slots[slot]
	if !ok {
		return nil, ErrNoValue
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Set(slot string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSet != nil {
		return m.FailSet
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.slots[slot] = v
	return nil
}

func (m *Memory) Delete(slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, slot)
	return nil
}

func (m *Memory) Close() error { return nil }

// Len reports how many slots hold a value.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.slots)
}
