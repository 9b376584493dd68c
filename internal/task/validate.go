package task

import (
	"net/url"
	"strings"
)

// Input is the candidate record the form boundary submits for add/update.
// Link may be empty; an empty link is normalized to "no link".
type Input struct {
	Date        Date
	Description string
	Link        string
	Status      Status
}

// normalize trims free-text fields and folds an empty link into absence.
func (in Input) normalize() Input {
	in.Description = strings.TrimSpace(in.Description)
	in.Link = strings.TrimSpace(in.Link)
	return in
}

// validate re-checks the form boundary's contract. The first violating field
// wins, matching how the form reports errors one field at a time.
func (in Input) validate() error {
	if in.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "a date is required"}
	}
	if in.Description == "" {
		return &ValidationError{Field: "description", Reason: "description must not be empty"}
	}
	if in.Link != "" {
		u, err := url.Parse(in.Link)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return &ValidationError{Field: "link", Reason: "link must be an absolute URL"}
		}
	}
	if !in.Status.Valid() {
		return &ValidationError{Field: "status", Reason: "status must be pending or completed"}
	}
	return nil
}

// apply builds the stored task for this input, preserving the given id.
func (in Input) apply(id ID) Task {
	t := Task{
		ID:          id,
		Date:        in.Date,
		Description: in.Description,
		Status:      in.Status,
	}
	if in.Link != "" {
		link := in.Link
		t.Link = &link
	}
	return t
}
