// Package view derives the rendered page from the task collection. The
// derivation is a pure function; the collection itself is never touched.
package view

import (
	"fmt"
	"strings"

	"github.com/jlmedgue/taskpad/internal/task"
)

// SortKey selects the column the table is ordered by.
type SortKey string

const (
	SortNone        SortKey = "none"
	SortDate        SortKey = "date"
	SortDescription SortKey = "description"
	SortStatus      SortKey = "status"
)

func ParseSortKey(value string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(value))) {
	case "", SortNone:
		return SortNone, nil
	case SortDate:
		return SortDate, nil
	case SortDescription:
		return SortDescription, nil
	case SortStatus:
		return SortStatus, nil
	}
	return SortNone, fmt.Errorf("unknown sort key %q", value)
}

// Direction orders ascending or descending. Flipping the direction flips the
// whole comparison, never the stable tie-break.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

func ParseDirection(value string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(value))) {
	case "", Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	}
	return Ascending, fmt.Errorf("unknown sort direction %q", value)
}

// State is the session's view parameters. It is a value; every transition
// returns a new State and leaves the old one alone.
type State struct {
	Search    string
	Key       SortKey
	Dir       Direction
	Page      int
	EditingID task.ID
}

func DefaultState() State {
	return State{Key: SortNone, Dir: Ascending, Page: 1}
}

// WithSearch sets the search term and jumps back to the first page, so a
// narrower result set never leaves the session stranded past the end.
func (s State) WithSearch(term string) State {
	s.Search = term
	s.Page = 1
	return s
}

// WithSort selects a sort column. Selecting the active column again flips the
// direction; selecting a new one starts ascending. Either way the page resets.
func (s State) WithSort(key SortKey) State {
	if key == s.Key {
		if s.Dir == Ascending {
			s.Dir = Descending
		} else {
			s.Dir = Ascending
		}
	} else {
		s.Key = key
		s.Dir = Ascending
	}
	s.Page = 1
	return s
}

func (s State) WithPage(page int) State {
	s.Page = page
	return s
}

// WithEditing marks the task the edit form is bound to. An empty id clears it.
func (s State) WithEditing(id task.ID) State {
	s.EditingID = id
	return s
}
