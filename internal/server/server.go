// Package server exposes the squiggle pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                  build info
//	GET  /seeds/{seed}/{format}    svg, metadata, png, json or params
//	GET  /tokens/{id}              token URI (metadata data URI)
//	GET  /tokens/{id}/{format}     artifact of the token's seed
//	PUT  /tokens/{id}              register a seed for a token
//
// Errors are JSON objects {"error": CODE, "message": ...} with the status
// code derived from the error code.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/squiggle/pkg/buildinfo"
	"github.com/matzehuels/squiggle/pkg/errors"
	"github.com/matzehuels/squiggle/pkg/pipeline"
	"github.com/matzehuels/squiggle/pkg/squiggle"
)

// Options configures the HTTP listener.
type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server routes HTTP requests to a pipeline.Runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server backed by runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/seeds/{seed}", func(r chi.Router) {
		r.Get("/{format}", s.handleSeedArtifact)
	})
	r.Route("/tokens/{id}", func(r chi.Router) {
		r.Get("/", s.handleTokenURI)
		r.Put("/", s.handleRegisterToken)
		r.Get("/{format}", s.handleTokenArtifact)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, opts Options) error {
	srv := &http.Server{
		Addr:         opts.Addr,
		Handler:      s.router,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.Wrap(errors.ErrCodeNetwork, err, "listen on %s", opts.Addr)
	case <-ctx.Done():
	}

	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleSeedArtifact(w http.ResponseWriter, r *http.Request) {
	seed, err := errors.ParseSeed(chi.URLParam(r, "seed"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.serveArtifact(w, r, seed)
}

func (s *Server) handleTokenURI(w http.ResponseWriter, r *http.Request) {
	uri, err := s.runner.TokenURI(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(uri))
}

func (s *Server) handleTokenArtifact(w http.ResponseWriter, r *http.Request) {
	seed, err := s.runner.TokenSeed(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.serveArtifact(w, r, seed)
}

type registerRequest struct {
	Seed string `json:"seed"`
}

type registerResponse struct {
	Token string `json:"token"`
	Seed  string `json:"seed"`
}

func (s *Server) handleRegisterToken(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<12)).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "request body must be {\"seed\": \"<hex>\"}"))
		return
	}
	seed, err := errors.ParseSeed(req.Seed)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := s.runner.RegisterToken(r.Context(), chi.URLParam(r, "id"), seed)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, registerResponse{Token: id, Seed: seed.String()})
}

// =============================================================================
// Helpers
// =============================================================================

// formatAliases maps URL format segments to pipeline formats.
var formatAliases = map[string]string{
	"params": pipeline.FormatJSON,
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, seed squiggle.Seed) {
	format := chi.URLParam(r, "format")
	if alias, ok := formatAliases[format]; ok {
		format = alias
	}

	opts := pipeline.Options{Formats: []string{format}}
	if v := r.URL.Query().Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid scale %q", v))
			return
		}
		opts.Scale = scale
	}

	result, err := s.runner.Execute(r.Context(), seed, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if result.CacheInfo.AllHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	observabilityError(r, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     string(code),
		Message:   errors.UserMessage(err),
		RequestID: RequestIDFromContext(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
