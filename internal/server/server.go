// Package server exposes the generation pipeline as a small JSON API.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/EkalavyanS/Flashy/internal/content"
)

// Config controls the HTTP listener.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Model is reported by the health endpoint.
	Model string
}

// DefaultConfig listens on :8080. The write timeout leaves room for a
// full generation call.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
	}
}

// Server routes API requests to a content.Source.
type Server struct {
	source content.Source
	config Config
	log    logrus.FieldLogger
	router chi.Router
}

// New creates a Server. A nil log discards output.
func New(source content.Source, cfg Config, log logrus.FieldLogger) *Server {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	s := &Server{source: source, config: cfg, log: log}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)
		r.Post("/generate-flashcards", s.generateFlashcards)
		r.Post("/generate-quiz", s.generateQuiz)
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully, letting in-flight generations finish within the write
// timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.config.Addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.WriteTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
