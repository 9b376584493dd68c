// Package serverapp assembles the running application: the storage backend,
// the task repository bootstrapped from it, the notification sink, the JSON
// API, the embedded page, and the middleware chain around all of it.
package serverapp

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jlmedgue/taskpad/internal/config"
	"github.com/jlmedgue/taskpad/internal/httpmw"
	"github.com/jlmedgue/taskpad/internal/localstore"
	"github.com/jlmedgue/taskpad/internal/notify"
	"github.com/jlmedgue/taskpad/internal/task"
	"github.com/jlmedgue/taskpad/internal/view"
	staticfiles "github.com/jlmedgue/taskpad/static"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTmpl = template.Must(
	template.New("index.html").ParseFS(templatesFS, "templates/index.html"),
)

type pageData struct {
	Service  string
	PageSize int
}

type Options struct {
	Config   *config.Config
	Logger   *log.Logger
	Notifier notify.Sink

	// UseDiskStatic serves /static/ from StaticDir instead of the embedded
	// assets, so css/js edits show up without a rebuild.
	UseDiskStatic bool
	StaticDir     string
}

// App is the composed application. It serves HTTP and owns the store handle.
type App struct {
	handler http.Handler
	store   localstore.Store
	repo    *task.Repository
	logger  *log.Logger
}

// New builds the app: opens the configured store, loads the saved collection
// (seeding sample tasks on a first run), and wires the routes.
func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.NewLogSink(opts.Logger)
	}
	if strings.TrimSpace(opts.StaticDir) == "" {
		opts.StaticDir = "static"
	}

	kv, err := openStore(opts.Config.Storage)
	if err != nil {
		return nil, err
	}

	store := task.NewStore(kv, task.DefaultSlot)
	repo := task.NewRepository(store)
	bootstrap(repo, store, opts)

	app := &App{store: kv, repo: repo, logger: opts.Logger}
	api := NewTaskAPI(repo, opts.Notifier)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/tasks", api.TasksRoot)
	mux.HandleFunc("/api/tasks/", api.TasksSub)

	staticHandler := http.FileServer(http.FS(staticfiles.FS()))
	if opts.UseDiskStatic {
		staticHandler = http.FileServer(http.Dir(opts.StaticDir))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", staticHandler))

	mux.HandleFunc("/healthz", app.healthz)
	mux.HandleFunc("/readyz", app.readyz)
	mux.HandleFunc("/", app.page)

	// Request ids are assigned outermost so the access log and the panic
	// handler both see them.
	app.handler = httpmw.Chain(
		mux,
		httpmw.WithRequestID,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRecover(opts.Logger),
	)
	return app, nil
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// Close releases the store handle. The in-memory collection is not flushed;
// every mutation already wrote its snapshot.
func (a *App) Close() error {
	return a.store.Close()
}

// bootstrap fills the repository from the store. A first run seeds the sample
// tasks and persists them immediately; an unreadable or corrupted snapshot
// leaves the repository empty and reports the error, but never prevents the
// app from starting.
func bootstrap(repo *task.Repository, store *task.Store, opts Options) {
	tasks, err := store.Load()
	switch {
	case err == nil:
		repo.Replace(tasks)

	case errors.Is(err, task.ErrNotFound):
		if opts.Config.Seed.Disabled {
			return
		}
		seeds := task.SeedTasks()
		repo.Replace(seeds)
		if err := store.Save(seeds); err != nil {
			opts.Logger.Printf("seed save failed, continuing without durability: %v", err)
			opts.Notifier.Notify(notify.Notification{
				Title:    "Persistence degraded",
				Message:  "Sample tasks could not be saved to disk.",
				Severity: notify.SeverityError,
			})
		}

	default:
		opts.Logger.Printf("stored tasks unavailable, starting empty: %v", err)
		opts.Notifier.Notify(notify.Notification{
			Title:    "Stored tasks unavailable",
			Message:  "Saved tasks could not be loaded; starting with an empty list.",
			Severity: notify.SeverityError,
		})
	}
}

func openStore(st config.Storage) (localstore.Store, error) {
	switch st.Backend {
	case config.BackendMemory:
		return localstore.NewMemory(), nil
	case config.BackendSQLite:
		if err := os.MkdirAll(st.Dir, 0o755); err != nil {
			return nil, err
		}
		return localstore.OpenSQLite(filepath.Join(st.Dir, "taskpad.db"))
	case config.BackendFile:
		return localstore.NewFileStore(st.Dir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", st.Backend)
	}
}

func (a *App) page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{Service: "taskpad", PageSize: view.PageSize}
	if err := pageTmpl.Execute(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"service": "taskpad",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// readyz probes the store so a broken data directory shows up in checks, not
// just in toasts. A missing slot is fine; that is simply a fresh install.
func (a *App) readyz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, err := a.store.Get(task.DefaultSlot); err != nil && !errors.Is(err, localstore.ErrNoValue) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"ok":    false,
			"error": "task storage unavailable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"service": "taskpad",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// UseDiskStaticByEnv reports whether TASKPAD_DEV_STATIC asks for disk-served
// assets.
func UseDiskStaticByEnv() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TASKPAD_DEV_STATIC"))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
