package web

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"todobox/internal/todo"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// NewHandler wires the routes for one store. All requests share the store
// and are serialized by the handlers.
func NewHandler(store *todo.Store, logger *log.Logger, version string) http.Handler {
	// Create sub-FS for templates (strip "templates/" prefix)
	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		logger.Fatal("failed to create template sub-FS", "err", err)
	}
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		logger.Fatal("failed to create static sub-FS", "err", err)
	}

	h := &Handlers{
		store:    store,
		logger:   logger,
		renderer: NewRenderer(templateSub, version, logger),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.HandleIndex)
	mux.HandleFunc("GET /api/view", h.HandleView)
	mux.HandleFunc("POST /todos", h.HandleAdd)
	mux.HandleFunc("POST /todos/toggle-all", h.HandleToggleAll)
	mux.HandleFunc("POST /todos/clear-completed", h.HandleClearCompleted)
	mux.HandleFunc("POST /todos/{id}/toggle", h.HandleToggle)
	mux.HandleFunc("POST /todos/{id}/delete", h.HandleDelete)
	mux.HandleFunc("POST /todos/{id}/edit", h.HandleEdit)
	mux.HandleFunc("POST /filter/{name}", h.HandleFilter)
	mux.HandleFunc("POST /page/{n}", h.HandlePage)

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticSub)))

	return securityHeaders(mux)
}

// NewServer creates the HTTP server for the browser UI.
func NewServer(store *todo.Store, logger *log.Logger, version, addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewHandler(store, logger, version),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run serves until ctx is cancelled or the process gets SIGINT/SIGTERM, then
// shuts down gracefully.
func Run(ctx context.Context, srv *http.Server, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("todobox web UI running", "url", "http://"+srv.Addr)
	if strings.HasPrefix(srv.Addr, "0.0.0.0") || strings.HasPrefix(srv.Addr, ":") || strings.Contains(srv.Addr, "::") {
		logger.Warn("server is binding to all interfaces and may be reachable from the network")
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
