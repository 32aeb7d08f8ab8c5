// Package server exposes the news service over HTTP. The JSON envelope
// mirrors what the static front end already consumes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hindsight-hq/past-news/internal/dates"
	"github.com/hindsight-hq/past-news/internal/domain"
	"github.com/hindsight-hq/past-news/internal/logger"
	"github.com/hindsight-hq/past-news/pkg/guardian"
)

// Fetcher resolves an option into a result.
type Fetcher interface {
	Fetch(ctx context.Context, opt domain.Option) (domain.Result, error)
}

// Server is the HTTP front end.
type Server struct {
	router chi.Router
	svc    Fetcher
	log    logger.Logger
}

// New builds a Server with routes and middleware attached.
func New(svc Fetcher, log logger.Logger) *Server {
	if log == nil {
		log = logger.NopLogger{}
	}
	s := &Server{svc: svc, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// The static front end is served from a different origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/news", s.handleNews)

	s.router = r
	return s
}

// Router returns the handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

type articlePayload struct {
	Headline  string `json:"headline"`
	Excerpt   string `json:"excerpt"`
	URL       string `json:"url"`
	Published string `json:"published"`
}

type newsResponse struct {
	Success bool            `json:"success"`
	Date    string          `json:"date"`
	Article *articlePayload `json:"article"`
	Message string          `json:"message,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("option")
	if raw == "" {
		s.writeError(w, http.StatusBadRequest, "missing required parameter: option")
		return
	}
	opt, err := domain.ParseOption(raw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.svc.Fetch(r.Context(), opt)
	if err != nil {
		status, msg := statusFor(err)
		s.log.WarnObj("news request failed", "fetch_error", map[string]any{
			"option": string(opt),
			"status": status,
			"error":  err.Error(),
		})
		s.writeError(w, status, msg)
		return
	}

	payload := newsResponse{
		Success: true,
		Date:    res.TargetDate.Format("2006-01-02"),
	}
	if res.Quiet() {
		payload.Message = res.Message
	} else {
		payload.Article = &articlePayload{
			Headline:  res.Article.Headline,
			Excerpt:   res.Article.Body,
			URL:       res.Article.URL,
			Published: formatPublished(res.Article.Published),
		}
	}
	s.writeJSON(w, http.StatusOK, payload)
}

// statusFor maps the service error taxonomy onto HTTP statuses. Unauthorized
// means our own credential is bad, which to a caller is a server-side fault.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, dates.ErrInvalidRange):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, guardian.ErrRateLimited):
		return http.StatusTooManyRequests, "API rate limit exceeded. Please try again later."
	case errors.Is(err, guardian.ErrUnauthorized):
		return http.StatusInternalServerError, "server configuration error"
	case errors.Is(err, guardian.ErrUnavailable):
		return http.StatusServiceUnavailable, "unable to fetch articles"
	}
	return http.StatusInternalServerError, "internal server error"
}

func formatPublished(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.ErrorObj("response encoding failed", "encode_error", map[string]any{
			"error": err.Error(),
		})
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

// ListenAndServe starts the server and blocks until SIGINT or SIGTERM, then
// shuts down gracefully within the given timeout.
func (s *Server) ListenAndServe(addr string, shutdownTimeout time.Duration) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.InfoObj("server listening", "startup", map[string]any{"addr": addr})

	select {
	case err := <-errCh:
		return err
	case <-done:
	}

	s.log.InfoObj("shutting down", "shutdown", nil)
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(ctx)
}
