package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jlmedgue/taskpad/internal/localstore"
)

func inputN(n string) Input {
	in := validInput()
	in.Description = n
	return in
}

func TestRepository_AddPrependsNewest(t *testing.T) {
	repo := NewRepository(nil)

	a, err := repo.Add(inputN("first"))
	assert.NoError(t, err)
	b, err := repo.Add(inputN("second"))
	assert.NoError(t, err)
	c, err := repo.Add(inputN("third"))
	assert.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, b.ID, c.ID)

	list := repo.List()
	assert.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Description)
	assert.Equal(t, "second", list[1].Description)
	assert.Equal(t, "first", list[2].Description)
}

func TestRepository_IDsStayUnique(t *testing.T) {
	repo := NewRepository(nil)

	seen := map[ID]bool{}
	for i := 0; i < 200; i++ {
		created, err := repo.Add(inputN("task"))
		assert.NoError(t, err)
		assert.False(t, seen[created.ID], "id %s handed out twice", created.ID)
		seen[created.ID] = true
	}
}

func TestRepository_Update(t *testing.T) {
	repo := NewRepository(nil)
	created, err := repo.Add(inputN("before"))
	assert.NoError(t, err)

	in := Input{
		Date:        NewDate(2026, time.April, 1),
		Description: "after",
		Link:        "https://example.com/after",
		Status:      StatusCompleted,
	}
	updated, err := repo.Update(created.ID, in)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "after", updated.Description)
	assert.Equal(t, StatusCompleted, updated.Status)
	assert.Equal(t, "https://example.com/after", updated.LinkValue())

	_, err = repo.Update("missing", in)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Update(created.ID, Input{Description: "no date"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestRepository_Remove(t *testing.T) {
	repo := NewRepository(nil)
	a, _ := repo.Add(inputN("a"))
	b, _ := repo.Add(inputN("b"))

	assert.NoError(t, repo.Remove(a.ID))
	assert.Equal(t, 1, repo.Len())
	assert.ErrorIs(t, repo.Remove(a.ID), ErrNotFound)

	got, err := repo.Get(b.ID)
	assert.NoError(t, err)
	assert.Equal(t, "b", got.Description)

	_, err = repo.Get(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_ListReturnsCopies(t *testing.T) {
	repo := NewRepository(nil)
	in := inputN("original")
	in.Link = "https://example.com/doc"
	created, _ := repo.Add(in)

	list := repo.List()
	list[0].Description = "tampered"
	*list[0].Link = "https://evil.example"

	got, _ := repo.Get(created.ID)
	assert.Equal(t, "original", got.Description)
	assert.Equal(t, "https://example.com/doc", got.LinkValue())
}

func TestRepository_PersistsEveryMutation(t *testing.T) {
	mem := localstore.NewMemory()
	store := NewStore(mem, "tasks")
	repo := NewRepository(store)

	a, err := repo.Add(inputN("a"))
	assert.NoError(t, err)
	saved, err := store.Load()
	assert.NoError(t, err)
	assert.Len(t, saved, 1)

	_, err = repo.Update(a.ID, inputN("a2"))
	assert.NoError(t, err)
	saved, _ = store.Load()
	assert.Equal(t, "a2", saved[0].Description)

	assert.NoError(t, repo.Remove(a.ID))
	saved, err = store.Load()
	assert.NoError(t, err)
	assert.Len(t, saved, 0)
}

func TestRepository_KeepsWorkingWhenSaveFails(t *testing.T) {
	mem := localstore.NewMemory()
	store := NewStore(mem, "tasks")
	repo := NewRepository(store)

	mem.FailSet = errors.New("quota exceeded")

	created, err := repo.Add(inputN("survives in memory"))
	var perr *PersistenceError
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, "save", perr.Op)

	assert.NotEmpty(t, created.ID)
	got, err := repo.Get(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "survives in memory", got.Description)

	// The next successful write snapshots the whole collection, so nothing
	// from the degraded window is lost.
	mem.FailSet = nil
	_, err = repo.Add(inputN("second"))
	assert.NoError(t, err)

	saved, err := store.Load()
	assert.NoError(t, err)
	assert.Len(t, saved, 2)
}

func TestRepository_ReplaceDoesNotPersist(t *testing.T) {
	mem := localstore.NewMemory()
	repo := NewRepository(NewStore(mem, "tasks"))

	repo.Replace(SeedTasks())
	assert.Equal(t, 5, repo.Len())
	assert.Equal(t, 0, mem.Len())
}
