// Package server serves one answer form over HTTP: the rendered page, the
// form post that syncs it and the stored answer as JSON.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goliatone/go-answerform/pkg/answer"
	gotemplate "github.com/goliatone/go-answerform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-answerform/pkg/renderers/vanilla"
	"github.com/goliatone/go-answerform/pkg/widget"
)

//go:embed templates/page.tmpl
var pageFS embed.FS

// Config holds HTTP server tunables.
type Config struct {
	Addr         string
	Title        string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Server owns one widget. Requests are serialised through mu so the widget
// only ever sees one caller at a time.
type Server struct {
	mu      sync.Mutex
	host    widget.Host
	widget  *widget.Widget
	page    *gotemplate.Engine
	metrics *Metrics
	logger  *zap.Logger
	title   string
}

// New mounts a widget on host. Extra widget options are applied after the
// server's own notifier and logger.
func New(host widget.Host, cfg Config, logger *zap.Logger, options ...widget.Option) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	page, err := gotemplate.New(gotemplate.WithFS(pageFS))
	if err != nil {
		return nil, fmt.Errorf("server: page template: %w", err)
	}

	s := &Server{
		host:    host,
		page:    page,
		metrics: NewMetrics(),
		logger:  logger,
		title:   cfg.Title,
	}
	if s.title == "" {
		s.title = "Answer form"
	}

	logNotes := widget.LogNotifier(logger)
	notifier := widget.NotifierFunc(func(issues answer.Issues) {
		s.metrics.Observe(issues)
		logNotes.Notify(issues)
	})
	base := []widget.Option{widget.WithNotifier(notifier), widget.WithLogger(logger)}

	s.widget, err = widget.New(host, append(base, options...)...)
	if err != nil {
		return nil, fmt.Errorf("server: mount widget: %w", err)
	}
	return s, nil
}

// Metrics exposes the server's counters.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Handler returns the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/", s.handlePage)
	r.Get("/answer", s.handleAnswer)
	r.Post("/answer", s.handleSubmit)
	return r
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	root, err := s.widget.RenderedRoot(r.Context())
	s.mu.Unlock()
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	html, err := s.page.RenderTemplate("templates/page", map[string]any{
		"title":    s.title,
		"root":     string(root),
		"readonly": s.host.ReadOnly(),
	})
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

type answerResponse struct {
	ID        string          `json:"id"`
	Answer    string          `json:"answer"`
	Leftovers json.RawMessage `json:"leftovers"`
}

func (s *Server) handleAnswer(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	resp := answerResponse{
		ID:        s.widget.ID(),
		Answer:    s.host.Value(),
		Leftovers: json.RawMessage(s.widget.Leftovers().JSON()),
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if s.host.ReadOnly() {
		s.fail(w, r, http.StatusForbidden, errors.New("answer is read-only"))
		return
	}
	if err := r.ParseForm(); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	session := s.widget.Session()
	if session != nil {
		vanilla.ApplyFormValues(session.Fields(), r.PostForm)
	}
	err := s.widget.Sync()
	s.mu.Unlock()
	if err != nil {
		s.fail(w, r, http.StatusConflict, err)
		return
	}

	s.metrics.Syncs.Inc()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Shutdown syncs and destroys the widget.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.widget.Destroy()
	if errors.Is(err, widget.ErrDestroyed) {
		return nil
	}
	return err
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Warn("request failed",
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	)
	http.Error(w, err.Error(), status)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		t0 := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("http",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(t0)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// Run starts an HTTP server and returns a channel that receives an error
// when the server exits. Cancelling ctx shuts it down and destroys the
// widget.
func (s *Server) Run(ctx context.Context, cfg Config) <-chan error {
	errCh := make(chan error, 1)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errCh <- err
			return
		}
		if err := s.Shutdown(); err != nil {
			errCh <- err
			return
		}
		errCh <- ctx.Err()
	}()

	go func() {
		s.logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	return errCh
}
