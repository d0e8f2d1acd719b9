// Package server exposes the translation assistant over HTTP for a browser
// front end: JSON endpoints for detection, glossary, history, and drafts,
// and a server-sent-events endpoint that streams translation chunks followed
// by any grounding citations.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/imam0096361/translation/internal/cache"
	"github.com/imam0096361/translation/internal/store"
	"github.com/imam0096361/translation/internal/translator"
)

// Engine pairs a translation service with the credentials it runs under.
type Engine struct {
	Service translator.TranslationService
	Config  translator.ServiceConfig
}

// Options configures the server.
type Options struct {
	Store *store.Store

	// Cache is the optional lookaside cache consulted before the sqlite
	// translation memory. May be nil.
	Cache cache.Cache

	// Engines maps engine names to configured services. DefaultEngine is
	// used when a request does not name one.
	Engines       map[string]Engine
	DefaultEngine string

	// AllowedOrigins restricts CORS. Empty means same-origin only.
	AllowedOrigins []string

	Logger zerolog.Logger
}

// Server routes API requests to the translation stack.
type Server struct {
	opts   Options
	router *chi.Mux
	log    zerolog.Logger
}

// New builds the router. Options.Store must be non-nil.
func New(opts Options) *Server {
	s := &Server{
		opts: opts,
		log:  opts.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/detect", s.handleDetect)
		r.Post("/translate", s.handleTranslate)
		r.Post("/extract", s.handleExtract)
		r.Post("/render", s.handleRender)

		r.Route("/glossary", func(r chi.Router) {
			r.Get("/", s.handleGlossaryList)
			r.Post("/", s.handleGlossaryAdd)
			r.Delete("/{id}", s.handleGlossaryDelete)
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", s.handleHistoryList)
			r.Get("/stats", s.handleHistoryStats)
			r.Delete("/{id}", s.handleHistoryDelete)
			r.Delete("/", s.handleHistoryClear)
		})

		r.Route("/drafts", func(r chi.Router) {
			r.Get("/", s.handleDraftList)
			r.Get("/{name}", s.handleDraftGet)
			r.Put("/{name}", s.handleDraftPut)
			r.Delete("/{name}", s.handleDraftDelete)
		})
	})

	s.router = r
	return s
}

// Handler returns the assembled http.Handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.Info().Str("addr", addr).Msg("http server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// engineFor resolves the engine named in a request, falling back to the
// configured default.
func (s *Server) engineFor(name string) (Engine, bool) {
	if name == "" {
		name = s.opts.DefaultEngine
	}
	e, ok := s.opts.Engines[name]
	return e, ok
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
