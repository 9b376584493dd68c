package task

import (
	"fmt"
	"strings"
)

type ID string

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// ParseStatus accepts either status literal case-insensitively.
func ParseStatus(value string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(StatusPending):
		return StatusPending, nil
	case string(StatusCompleted):
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("invalid status %q", value)
	}
}

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Task is a single tracked work item. Link is nil when the task has no link;
// an empty string never survives normalization, so nil is the only "absent"
// representation.
type Task struct {
	ID          ID      `json:"id"`
	Date        Date    `json:"date"`
	Description string  `json:"description"`
	Link        *string `json:"link,omitempty"`
	Status      Status  `json:"status"`
}

// Clone returns a copy that shares no pointers with the original.
func (t Task) Clone() Task {
	out := t
	if t.Link != nil {
		link := *t.Link
		out.Link = &link
	}
	return out
}

// LinkValue returns the link or "" when absent.
func (t Task) LinkValue() string {
	if t.Link == nil {
		return ""
	}
	return *t.Link
}

func cloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
