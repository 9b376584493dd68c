package view

import (
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jlmedgue/taskpad/internal/task"
)

// PageSize is fixed; the table always shows at most 30 rows.
const PageSize = 30

// Result is one derived page of the collection.
type Result struct {
	Tasks []task.Task
	// Page is the page actually shown. It equals the requested page unless
	// that fell outside [1, TotalPages], in which case it was clamped.
	Page          int
	TotalPages    int
	TotalMatching int
}

// Derive computes the visible page: sort, then filter, then paginate.
//
// Sorting runs before filtering on purpose. The display order is established
// over the whole collection, so narrowing or widening the search never
// reshuffles the rows that stay visible.
func Derive(tasks []task.Task, s State) Result {
	work := slices.Clone(tasks)

	if s.Key != SortNone {
		sortTasks(work, s.Key, s.Dir)
	}
	if term := strings.ToLower(strings.TrimSpace(s.Search)); term != "" {
		filtered := work[:0]
		for _, t := range work {
			if matches(t, term) {
				filtered = append(filtered, t)
			}
		}
		work = filtered
	}

	totalMatching := len(work)
	totalPages := (totalMatching + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := s.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := min(start+PageSize, totalMatching)

	return Result{
		Tasks:         work[start:end],
		Page:          page,
		TotalPages:    totalPages,
		TotalMatching: totalMatching,
	}
}

// sortTasks orders in place, stably. The base comparison is ascending with
// absent values last; descending flips the whole comparison, so absent values
// move to the front and ties still keep their prior relative order.
func sortTasks(tasks []task.Task, key SortKey, dir Direction) {
	var collator *collate.Collator
	if key == SortDescription {
		collator = collate.New(language.English)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		c := compareTasks(tasks[i], tasks[j], key, collator)
		if dir == Descending {
			c = -c
		}
		return c < 0
	})
}

func compareTasks(a, b task.Task, key SortKey, collator *collate.Collator) int {
	switch key {
	case SortDate:
		if c, done := compareAbsent(a.Date.IsZero(), b.Date.IsZero()); done {
			return c
		}
		return a.Date.Compare(b.Date)
	case SortDescription:
		if c, done := compareAbsent(a.Description == "", b.Description == ""); done {
			return c
		}
		return collator.CompareString(a.Description, b.Description)
	case SortStatus:
		if c, done := compareAbsent(!a.Status.Valid(), !b.Status.Valid()); done {
			return c
		}
		return statusRank(a.Status) - statusRank(b.Status)
	}
	return 0
}

// compareAbsent handles a value missing on one side: absent compares greater,
// which puts it last in the ascending base order.
func compareAbsent(aAbsent, bAbsent bool) (int, bool) {
	switch {
	case aAbsent && bAbsent:
		return 0, true
	case aAbsent:
		return 1, true
	case bAbsent:
		return -1, true
	}
	return 0, false
}

// statusRank fixes the status order: completed sorts before pending when
// ascending.
func statusRank(s task.Status) int {
	if s == task.StatusCompleted {
		return 0
	}
	return 1
}

// matches reports whether the task is visible under the lower-cased search
// term. The date is matched in both its ISO and long spelled-out forms, so
// searching "march" works as well as "2026-03".
func matches(t task.Task, term string) bool {
	if strings.Contains(strings.ToLower(t.Description), term) {
		return true
	}
	if !t.Date.IsZero() {
		if strings.Contains(t.Date.String(), term) {
			return true
		}
		if strings.Contains(strings.ToLower(t.Date.Long()), term) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(string(t.Status)), term)
}
