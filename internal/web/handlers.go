package web

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"todobox/internal/errors"
	"todobox/internal/todo"
	"todobox/internal/view"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	// mu serializes every command and the render that follows it.
	mu       sync.Mutex
	store    *todo.Store
	logger   *log.Logger
	renderer *Renderer
}

// HandleIndex handles GET /: the full page, optionally with one row in
// edit mode (?edit={id}).
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	editID := r.URL.Query().Get("edit")

	h.mu.Lock()
	if _, ok := h.store.Get(editID); !ok {
		editID = ""
	}
	vm := view.Build(h.store.State())
	h.mu.Unlock()

	h.renderer.renderPage(w, r, "index", IndexPageData{
		PageData: PageData{
			Title:   "todos",
			Version: h.renderer.version,
		},
		View:   vm,
		EditID: editID,
	})
}

// HandleView handles GET /api/view: the view model as JSON.
func (h *Handlers) HandleView(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	vm := view.Build(h.store.State())
	h.mu.Unlock()
	renderJSON(w, http.StatusOK, vm)
}

// HandleAdd handles POST /todos. Blank text is silently ignored.
func (h *Handlers) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}
	text := r.FormValue("text")
	h.apply(w, r, func() error {
		if t, ok := h.store.Add(text); ok {
			h.logger.Debug("todo added", "id", t.ID)
		}
		return nil
	})
}

// HandleToggle handles POST /todos/{id}/toggle.
func (h *Handlers) HandleToggle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.apply(w, r, func() error {
		if !h.store.Toggle(id) {
			return errors.NewNotFound(id)
		}
		h.logger.Debug("todo toggled", "id", id)
		return nil
	})
}

// HandleDelete handles POST /todos/{id}/delete.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.apply(w, r, func() error {
		if !h.store.Delete(id) {
			return errors.NewNotFound(id)
		}
		h.logger.Debug("todo deleted", "id", id)
		return nil
	})
}

// HandleEdit handles POST /todos/{id}/edit. A "cancel" field discards the
// edit; blank text keeps the old text.
func (h *Handlers) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}
	cancel := r.Form.Has("cancel")
	text := r.FormValue("text")
	h.apply(w, r, func() error {
		if _, ok := h.store.Get(id); !ok {
			return errors.NewNotFound(id)
		}
		if cancel {
			return nil
		}
		if h.store.Rename(id, text) {
			h.logger.Debug("todo renamed", "id", id)
		}
		return nil
	})
}

// HandleToggleAll handles POST /todos/toggle-all with done=on|off.
func (h *Handlers) HandleToggleAll(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}
	done, err := parseDone(r.FormValue("done"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	h.apply(w, r, func() error {
		if h.store.SetAll(done) {
			h.logger.Debug("all todos set", "completed", done)
		}
		return nil
	})
}

// HandleClearCompleted handles POST /todos/clear-completed.
func (h *Handlers) HandleClearCompleted(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func() error {
		n := h.store.ClearCompleted()
		h.logger.Debug("completed todos cleared", "count", n)
		return nil
	})
}

// HandleFilter handles POST /filter/{name}.
func (h *Handlers) HandleFilter(w http.ResponseWriter, r *http.Request) {
	f, err := todo.ParseFilter(r.PathValue("name"))
	if err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest(err.Error()))
		return
	}
	h.apply(w, r, func() error {
		h.store.SetFilter(f)
		return nil
	})
}

// HandlePage handles POST /page/{n}. Out-of-range pages clamp.
func (h *Handlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("page must be an integer"))
		return
	}
	h.apply(w, r, func() error {
		h.store.SetPage(n)
		return nil
	})
}

// apply runs one command under the lock and answers with the resulting view:
// JSON for API clients, 303 to / otherwise.
func (h *Handlers) apply(w http.ResponseWriter, r *http.Request, cmd func() error) {
	h.mu.Lock()
	err := cmd()
	vm := view.Build(h.store.State())
	h.mu.Unlock()

	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, vm)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func parseDone(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	default:
		return false, errors.NewInvalidRequest(`done must be "on" or "off"`)
	}
}
