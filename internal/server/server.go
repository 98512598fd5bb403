// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/intelliresume/internal/config"
	"github.com/jonathan/intelliresume/internal/db"
	"github.com/jonathan/intelliresume/internal/generation"
	"github.com/jonathan/intelliresume/internal/history"
	"github.com/jonathan/intelliresume/internal/llm"
	"github.com/jonathan/intelliresume/internal/logging"
	"github.com/jonathan/intelliresume/internal/rendering"
	"github.com/jonathan/intelliresume/internal/server/ratelimit"
	"github.com/jonathan/intelliresume/internal/types"
)

// ResumeGenerator produces resumes and feedback. *generation.Generator
// implements it.
type ResumeGenerator interface {
	GenerateResume(ctx context.Context, req types.GenerateRequest) (*types.ResumeDocument, error)
	GetFeedback(ctx context.Context, req types.FeedbackRequest) (string, error)
}

// Deps are the collaborators a Server is built from.
type Deps struct {
	Generator       ResumeGenerator
	History         *history.Manager
	PDF             rendering.PDFRenderer // nil disables PDF export
	RateLimiter     *ratelimit.Limiter    // nil disables rate limiting
	DefaultTemplate types.TemplateID
	Addr            string
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	generator       ResumeGenerator
	history         *history.Manager
	pdf             rendering.PDFRenderer
	rateLimiter     *ratelimit.Limiter
	defaultTemplate types.TemplateID
	closers         []func()
}

// New wires the production dependencies described by cfg.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	if err := generation.CheckAssets(); err != nil {
		return nil, err
	}

	var closers []func()

	var client llm.Client
	gemini, err := llm.NewGeminiClient(ctx, cfg.LLMConfig(), cfg.APIKey)
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		// Generation requests fail with an auth error until a key is configured.
		slog.Warn("GEMINI_API_KEY is not set; generation endpoints will fail")
	case err != nil:
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	default:
		client = gemini
		closers = append(closers, func() { _ = gemini.Close() })
	}

	store, closeStore, err := db.OpenHistory(ctx, cfg.DatabaseURL, cfg.HistoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	closers = append(closers, closeStore)

	rl := cfg.RateLimit
	limiterCfg := &ratelimit.Config{}
	if !rl.Disabled {
		limiterCfg = ratelimit.NewConfig(rl.DefaultLimit, rl.StrictLimit, rl.Whitelist, rl.Blacklist)
	}

	pdf := rendering.NewChromeRenderer(cfg.ChromePath)
	pdf.Timeout = cfg.PDFTimeout()

	s := NewWithDeps(Deps{
		Generator: generation.New(client,
			generation.WithTier(cfg.ModelTier()),
			generation.WithTemperatures(cfg.ContentTemperature, cfg.FeedbackTemperature),
		),
		History:         history.NewManager(ctx, store, cfg.HistoryCapacity),
		PDF:             pdf,
		RateLimiter:     ratelimit.NewLimiter(limiterCfg),
		DefaultTemplate: types.TemplateID(cfg.Template),
		Addr:            cfg.Addr(),
	})
	s.closers = append(s.closers, closers...)
	return s, nil
}

// NewWithDeps builds a server from explicit dependencies.
func NewWithDeps(deps Deps) *Server {
	if deps.RateLimiter == nil {
		deps.RateLimiter = ratelimit.NewLimiter(nil)
	}
	if deps.DefaultTemplate == "" {
		deps.DefaultTemplate = types.DefaultTemplate
	}

	s := &Server{
		generator:       deps.Generator,
		history:         deps.History,
		pdf:             deps.PDF,
		rateLimiter:     deps.RateLimiter,
		defaultTemplate: deps.DefaultTemplate,
	}

	s.httpServer = &http.Server{
		Addr:         deps.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // model calls and PDF rendering are slow
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /templates", s.handleTemplates)

	mux.HandleFunc("POST /resumes/generate", s.handleGenerate)
	mux.HandleFunc("POST /resumes/feedback", s.handleFeedback)
	mux.HandleFunc("POST /resumes/export/{format}", s.handleExport)
	mux.HandleFunc("POST /uploads/resume", s.handleUpload)

	mux.HandleFunc("GET /history", s.handleListHistory)
	mux.HandleFunc("DELETE /history", s.handleClearHistory)
	mux.HandleFunc("GET /history.xlsx", s.handleExportHistory)
	mux.HandleFunc("GET /history/{id}", s.handleGetHistory)
	mux.HandleFunc("DELETE /history/{id}", s.handleDeleteHistory)

	return s.withRequestID(s.withLogging(s.withRateLimit(s.withRecover(s.withCORS(mux)))))
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.close()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

func (s *Server) close() {
	s.rateLimiter.Stop()
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleTemplates lists the available visual templates
func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"templates": types.Templates,
		"default":   s.defaultTemplate,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse maps err to a status and writes the error body
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error("request failed", "status", status, "error", err)
	}
	s.jsonResponse(w, status, errorBody(err, status))
}

// maxJSONBody caps request bodies; uploaded resume text alone may be 5 MB.
const maxJSONBody = types.MaxUploadedResumeBytes + 1<<20

// decodeJSON reads a JSON body into dst, rejecting unknown trailing data.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return &ErrValidation{Message: "invalid request body: " + err.Error()}
	}
	if dec.More() {
		return &ErrValidation{Message: "invalid request body: unexpected data after JSON object"}
	}
	return nil
}
