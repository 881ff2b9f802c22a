// Package server exposes an AppWindow over HTTP.
//
// All handlers share one window and are serialized by a mutex, so the UI
// model keeps its single-threaded semantics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sketchnote/internal/app"
	snerrors "github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/observability"
	"github.com/matzehuels/sketchnote/pkg/pipeline"
)

// MaxUploadSize limits the body of stroke imports.
const MaxUploadSize = 32 << 20

// Server serves the settings and sheet of an AppWindow.
type Server struct {
	mu     sync.Mutex
	win    *app.AppWindow
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithRunner sets the export runner used for sheet previews.
func WithRunner(r *pipeline.Runner) Option {
	return func(s *Server) { s.runner = r }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New returns a server for win.
func New(win *app.AppWindow, opts ...Option) *Server {
	s := &Server{win: win, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/settings", func(r chi.Router) {
		r.Get("/", s.handleListSettings)
		r.Get("/{key}", s.handleGetSetting)
		r.Put("/{key}", s.handlePutSetting)
		r.Delete("/{key}", s.handleResetSetting)
	})
	r.Get("/sheet.svg", s.handleSheet(pipeline.FormatSVG, "image/svg+xml"))
	r.Get("/sheet.png", s.handleSheet(pipeline.FormatPNG, "image/png"))
	r.Get("/sheet.json", s.handleSheet(pipeline.FormatJSON, "application/json"))
	r.Route("/strokes", func(r chi.Router) {
		r.Get("/", s.handleListStrokes)
		r.Post("/", s.handleImportStroke)
		r.Delete("/{id}", s.handleDeleteStroke)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// observe reports requests to the HTTP hooks and the logger.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		observability.HTTP().OnRequest(ctx, r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		observability.HTTP().OnResponse(ctx, r.Method, r.URL.Path, status, d)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", status, "duration", d)
	})
}

// ListenAndServe serves on addr until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeError maps coded errors to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := snerrors.GetCode(err)
	switch code {
	case snerrors.ErrCodeInvalidInput, snerrors.ErrCodeInvalidSVG, snerrors.ErrCodeInvalidImage,
		snerrors.ErrCodeInvalidBounds, snerrors.ErrCodeInvalidFormat, snerrors.ErrCodeTypeMismatch,
		snerrors.ErrCodeIndexOutOfRange:
		status = http.StatusBadRequest
	case snerrors.ErrCodeUnknownKey, snerrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case snerrors.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: snerrors.UserMessage(err), Code: string(code)})
}
