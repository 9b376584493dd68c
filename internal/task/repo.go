package task

import (
	"sync"

	"github.com/google/uuid"
)

// Repository is the single source of truth for the task collection. Tasks are
// held in insertion order, most recent first; display order is always derived
// downstream and never stored here.
//
// Every successful mutation writes a full snapshot through the store. A failed
// write does not roll the mutation back: the method returns the mutated task
// together with a *PersistenceError so the caller can warn the user while the
// session keeps working in memory.
type Repository struct {
	mu    sync.RWMutex
	tasks []Task
	store *Store
}

// NewRepository creates an empty repository. store may be nil for a purely
// in-memory session.
func NewRepository(store *Store) *Repository {
	return &Repository{store: store}
}

func newID() ID {
	return ID(uuid.NewString())
}

// Add validates the candidate, assigns a fresh id, and prepends the task.
func (r *Repository) Add(in Input) (Task, error) {
	in = in.normalize()
	if err := in.validate(); err != nil {
		return Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := newID()
	for r.indexLocked(id) >= 0 {
		id = newID()
	}

	t := in.apply(id)
	r.tasks = append([]Task{t}, r.tasks...)
	return t.Clone(), r.persistLocked()
}

// Update replaces every field except the id of the matching task.
func (r *Repository) Update(id ID, in Input) (Task, error) {
	in = in.normalize()
	if err := in.validate(); err != nil {
		return Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}

	t := in.apply(id)
	r.tasks[i] = t
	return t.Clone(), r.persistLocked()
}

// Remove deletes the task with the given id. A missing id is reported as
// ErrNotFound rather than silently ignored.
func (r *Repository) Remove(id ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return ErrNotFound
	}

	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	return r.persistLocked()
}

func (r *Repository) Get(id ID) (Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexLocked(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	return r.tasks[i].Clone(), nil
}

// List returns the collection in insertion order. The result is a deep copy;
// callers may not reach the stored tasks through it.
func (r *Repository) List() []Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneTasks(r.tasks)
}

// Replace swaps in a whole collection, keeping the given order. Used when
// bootstrapping from the store or seeding a first run; it does not persist.
func (r *Repository) Replace(tasks []Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = cloneTasks(tasks)
}

func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}

func (r *Repository) indexLocked(id ID) int {
	for i, t := range r.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) persistLocked() error {
	if r.store == nil {
		return nil
	}
	return r.store.Save(r.tasks)
}
