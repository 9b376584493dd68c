package task

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jlmedgue/taskpad/internal/localstore"
)

// DefaultSlot is the store slot the task snapshot lives under.
const DefaultSlot = "tasks"

// Store persists the whole collection as one JSON array in a single named
// slot. There is no incremental update; every save rewrites the snapshot.
type Store struct {
	kv   localstore.Store
	slot string
}

// NewStore binds a snapshot store to a slot. An empty slot name falls back to
// DefaultSlot.
func NewStore(kv localstore.Store, slot string) *Store {
	if slot == "" {
		slot = DefaultSlot
	}
	return &Store{kv: kv, slot: slot}
}

// Load reads and decodes the snapshot. A missing slot is reported as
// ErrNotFound so callers can tell a first run apart from a broken one; any
// decode or validation failure comes back as a *PersistenceError.
func (s *Store) Load() ([]Task, error) {
	raw, err := s.kv.Get(s.slot)
	if err != nil {
		if errors.Is(err, localstore.ErrNoValue) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Op: "load", Err: err}
	}

	var tasks []Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	for i, t := range tasks {
		if err := validateRecord(i, t); err != nil {
			return nil, &PersistenceError{Op: "load", Err: err}
		}
	}
	return tasks, nil
}

// Save encodes the collection and rewrites the slot.
func (s *Store) Save(tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	raw, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	if err := s.kv.Set(s.slot, raw); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

func validateRecord(i int, t Task) error {
	if t.ID == "" {
		return fmt.Errorf("task %d: missing id", i)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("task %d: missing date", i)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("task %d: unknown status %q", i, string(t.Status))
	}
	return nil
}
