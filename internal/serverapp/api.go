package serverapp

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/jlmedgue/taskpad/internal/notify"
	"github.com/jlmedgue/taskpad/internal/task"
	"github.com/jlmedgue/taskpad/internal/view"
)

// TaskAPI serves the JSON endpoints the page talks to. Mutations go through
// the repository; reads go through the view pipeline, so the table the page
// shows is always a fresh derivation of the collection.
type TaskAPI struct {
	repo *task.Repository
	sink notify.Sink
}

func NewTaskAPI(repo *task.Repository, sink notify.Sink) *TaskAPI {
	return &TaskAPI{repo: repo, sink: sink}
}

func (a *TaskAPI) notify(title, message string, sev notify.Severity) {
	if a.sink == nil {
		return
	}
	a.sink.Notify(notify.Notification{Title: title, Message: message, Severity: sev})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func writeFieldErr(w http.ResponseWriter, verr *task.ValidationError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error": verr.Error(),
		"field": verr.Field,
	})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

// taskPayload is the wire form of a candidate task, exactly what the page's
// form submits. Everything arrives as strings; parsing failures are reported
// per field so the form can highlight the offending input.
type taskPayload struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Status      string `json:"status"`
}

func (p taskPayload) toInput() (task.Input, *task.ValidationError) {
	in := task.Input{Description: p.Description, Link: p.Link}

	if strings.TrimSpace(p.Date) != "" {
		d, err := task.ParseDate(p.Date)
		if err != nil {
			return task.Input{}, &task.ValidationError{Field: "date", Reason: "date must be YYYY-MM-DD"}
		}
		in.Date = d
	}
	if strings.TrimSpace(p.Status) != "" {
		st, err := task.ParseStatus(p.Status)
		if err != nil {
			return task.Input{}, &task.ValidationError{Field: "status", Reason: "status must be pending or completed"}
		}
		in.Status = st
	}
	// Empty date or status falls through to the repository's own validation,
	// which reports the missing field.
	return in, nil
}

// pageResponse is one derived page of the table plus the numbers the
// pagination footer needs.
type pageResponse struct {
	Tasks         []task.Task `json:"tasks"`
	Page          int         `json:"page"`
	TotalPages    int         `json:"totalPages"`
	TotalMatching int         `json:"totalMatching"`
	Total         int         `json:"total"`
}

type mutationResponse struct {
	Task    *task.Task `json:"task,omitempty"`
	OK      bool       `json:"ok"`
	Warning string     `json:"warning,omitempty"`
}

// TasksRoot handles /api/tasks: GET lists the derived page, POST creates.
func (a *TaskAPI) TasksRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listTasks(w, r)
	case http.MethodPost:
		a.createTask(w, r)
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *TaskAPI) listTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	key, err := view.ParseSortKey(q.Get("sort"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	dir, err := view.ParseDirection(q.Get("dir"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	page := 1
	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "page must be an integer")
			return
		}
	}

	all := a.repo.List()
	res := view.Derive(all, view.State{Search: q.Get("search"), Key: key, Dir: dir, Page: page})

	tasks := res.Tasks
	if tasks == nil {
		tasks = []task.Task{}
	}
	writeJSON(w, http.StatusOK, pageResponse{
		Tasks:         tasks,
		Page:          res.Page,
		TotalPages:    res.TotalPages,
		TotalMatching: res.TotalMatching,
		Total:         len(all),
	})
}

func (a *TaskAPI) createTask(w http.ResponseWriter, r *http.Request) {
	var p taskPayload
	if err := decodeJSON(r, &p); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}
	in, verr := p.toInput()
	if verr != nil {
		a.notify("Task not added", verr.Error(), notify.SeverityError)
		writeFieldErr(w, verr)
		return
	}

	created, err := a.repo.Add(in)
	if verr := asValidation(err); verr != nil {
		a.notify("Task not added", verr.Error(), notify.SeverityError)
		writeFieldErr(w, verr)
		return
	}
	warning, ok := persistenceWarning(err)
	if err != nil && !ok {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	if warning != "" {
		a.notify("Persistence degraded", "The task was added but could not be saved to disk.", notify.SeverityError)
	} else {
		a.notify("Task added", created.Description, notify.SeveritySuccess)
	}
	writeJSON(w, http.StatusCreated, mutationResponse{Task: &created, OK: true, Warning: warning})
}

// TasksSub handles /api/tasks/{id}: GET fetches one task for the edit form,
// PUT replaces every field except the id, DELETE removes it.
func (a *TaskAPI) TasksSub(w http.ResponseWriter, r *http.Request) {
	tail := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
	tail = strings.Trim(tail, "/")
	if tail == "" || strings.Contains(tail, "/") {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	id := task.ID(tail)

	switch r.Method {
	case http.MethodGet:
		t, err := a.repo.Get(id)
		if errors.Is(err, task.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "not found")
			return
		}
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, t)

	case http.MethodPut:
		a.updateTask(w, r, id)

	case http.MethodDelete:
		a.deleteTask(w, id)

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *TaskAPI) updateTask(w http.ResponseWriter, r *http.Request, id task.ID) {
	var p taskPayload
	if err := decodeJSON(r, &p); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}
	in, verr := p.toInput()
	if verr != nil {
		a.notify("Task not updated", verr.Error(), notify.SeverityError)
		writeFieldErr(w, verr)
		return
	}

	updated, err := a.repo.Update(id, in)
	if errors.Is(err, task.ErrNotFound) {
		a.notify("Task not found", "No task with id "+string(id), notify.SeverityError)
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	if verr := asValidation(err); verr != nil {
		a.notify("Task not updated", verr.Error(), notify.SeverityError)
		writeFieldErr(w, verr)
		return
	}
	warning, ok := persistenceWarning(err)
	if err != nil && !ok {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	if warning != "" {
		a.notify("Persistence degraded", "The change was applied but could not be saved to disk.", notify.SeverityError)
	} else {
		a.notify("Task updated", updated.Description, notify.SeveritySuccess)
	}
	writeJSON(w, http.StatusOK, mutationResponse{Task: &updated, OK: true, Warning: warning})
}

func (a *TaskAPI) deleteTask(w http.ResponseWriter, id task.ID) {
	err := a.repo.Remove(id)
	if errors.Is(err, task.ErrNotFound) {
		a.notify("Task not found", "No task with id "+string(id), notify.SeverityError)
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	warning, ok := persistenceWarning(err)
	if err != nil && !ok {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	if warning != "" {
		a.notify("Persistence degraded", "The task was deleted but the change could not be saved to disk.", notify.SeverityError)
	} else {
		a.notify("Task deleted", "", notify.SeveritySuccess)
	}
	writeJSON(w, http.StatusOK, mutationResponse{OK: true, Warning: warning})
}

func asValidation(err error) *task.ValidationError {
	var verr *task.ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return nil
}

// persistenceWarning maps a degraded save to the warning string the response
// carries. The mutation already happened; the caller must not treat this as a
// failure.
func persistenceWarning(err error) (string, bool) {
	if err == nil {
		return "", true
	}
	var perr *task.PersistenceError
	if errors.As(err, &perr) {
		return perr.Error(), true
	}
	return "", false
}
