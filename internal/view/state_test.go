package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortKey(t *testing.T) {
	for raw, want := range map[string]SortKey{
		"":            SortNone,
		"none":        SortNone,
		"date":        SortDate,
		"Description": SortDescription,
		" STATUS ":    SortStatus,
	} {
		got, err := ParseSortKey(raw)
		assert.NoError(t, err, "key %q", raw)
		assert.Equal(t, want, got)
	}

	_, err := ParseSortKey("priority")
	assert.Error(t, err)
}

func TestParseDirection(t *testing.T) {
	for raw, want := range map[string]Direction{
		"":     Ascending,
		"asc":  Ascending,
		"DESC": Descending,
	} {
		got, err := ParseDirection(raw)
		assert.NoError(t, err, "direction %q", raw)
		assert.Equal(t, want, got)
	}

	_, err := ParseDirection("sideways")
	assert.Error(t, err)
}

func TestState_WithSortTogglesDirection(t *testing.T) {
	s := DefaultState()

	s = s.WithSort(SortDate)
	assert.Equal(t, SortDate, s.Key)
	assert.Equal(t, Ascending, s.Dir)

	s = s.WithSort(SortDate)
	assert.Equal(t, Descending, s.Dir)

	s = s.WithSort(SortStatus)
	assert.Equal(t, SortStatus, s.Key)
	assert.Equal(t, Ascending, s.Dir, "a new column starts ascending")
}

func TestState_TransitionsResetPage(t *testing.T) {
	s := DefaultState().WithPage(4)

	assert.Equal(t, 1, s.WithSearch("x").Page)
	assert.Equal(t, 1, s.WithSort(SortDate).Page)
	assert.Equal(t, 4, s.WithEditing("id-1").Page, "picking an edit target keeps the page")
}

func TestState_IsAValue(t *testing.T) {
	s := DefaultState()
	_ = s.WithSearch("x").WithSort(SortDate).WithPage(3)

	assert.Equal(t, DefaultState(), s)
}
