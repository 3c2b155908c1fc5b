// Package server exposes vault notes and canvas population over HTTP so
// editor integrations can drive canvasrand without shelling out.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/canvasrand/pkg/cache"
	"github.com/matzehuels/canvasrand/pkg/populate"
	"github.com/matzehuels/canvasrand/pkg/settings"
	"github.com/matzehuels/canvasrand/pkg/vault"
)

const (
	// DefaultAddr is the listen address used by `canvasrand serve`.
	DefaultAddr = "127.0.0.1:7777"

	shutdownTimeout = 5 * time.Second
)

// Config configures a Server.
type Config struct {
	Addr  string
	Vault string

	// Settings supply defaults for fields a request leaves out.
	Settings settings.Settings

	Cache    cache.Cache
	Logger   *log.Logger
	Debounce time.Duration
}

// Server serves one vault.
type Server struct {
	addr     string
	root     string
	settings settings.Settings
	index    *vault.Index
	runner   *populate.Runner
	locks    *pathLocks
	logger   *log.Logger
}

// New creates a server and loads the vault index.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	root, err := filepath.Abs(cfg.Vault)
	if err != nil {
		return nil, err
	}

	index := vault.NewIndex(root, vault.NewScanner(cfg.Cache, cfg.Logger))
	index.SetDebounce(cfg.Debounce)
	if err := index.Refresh(ctx); err != nil {
		return nil, err
	}

	return &Server{
		addr:     cfg.Addr,
		root:     root,
		settings: cfg.Settings,
		index:    index,
		runner:   populate.NewRunner(cfg.Logger),
		locks:    newPathLocks(),
		logger:   cfg.Logger,
	}, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/notes", s.listNotes)
		r.Post("/canvas/populate", s.populate)
	})
	return r
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve handles requests on ln and keeps the index current until ctx is
// cancelled, then shuts down gracefully. It closes ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.index.Watch(ctx)
	})
	g.Go(func() error {
		s.logger.Info("serving vault", "addr", ln.Addr().String(), "root", s.root, "notes", s.index.Len())
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Debug("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// requestLogger logs each request once it completes.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).Round(time.Microsecond),
				"request_id", chimiddleware.GetReqID(r.Context()))
		})
	}
}
