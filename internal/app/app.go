package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"ariaforge/internal/cache"
	"ariaforge/internal/config"
	"ariaforge/internal/database"
	"ariaforge/internal/errors"
	"ariaforge/internal/middleware"
	transport "ariaforge/internal/transport/http"
	"ariaforge/internal/websocket"
)

// Application owns every long-lived component: the configuration, the
// database session provider, the cache client, the WebSocket hub, and
// the HTTP server with its composed router. It is built fully wired by
// New without touching the network; Start is what makes it serve.
type Application struct {
	cfg    *config.Config
	logger *slog.Logger

	db    *database.Provider
	cache *cache.Client
	hub   *websocket.Hub

	router chi.Router
	server *http.Server

	state stateHolder
}

// New builds a fully wired application from configuration. No network
// connections are made here: the database pool opens lazily and the
// cache client connects on first use, so construction succeeds even
// when dependencies are down.
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	db, err := database.NewProvider(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database provider: %w", err)
	}

	cacheClient, err := cache.New(cfg.Cache, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache client: %w", err)
	}

	app := &Application{
		cfg:    cfg,
		logger: logger,
		db:     db,
		cache:  cacheClient,
		hub:    websocket.NewHub(logger),
	}
	app.state.set(StateUninitialized)

	app.router = app.setupRouter()
	app.server = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      app.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// State returns the current lifecycle state.
func (a *Application) State() State {
	return a.state.get()
}

// Router exposes the composed router, mainly for tests.
func (a *Application) Router() chi.Router {
	return a.router
}

// setupRouter composes the middleware chain and mounts every endpoint
// group under /api/v1. Each group contributes its own sub-router via
// Routes(), so route ownership stays with the handler that serves it.
func (a *Application) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(a.logger))
	r.Use(middleware.Recoverer(a.logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.AllowedHosts(a.cfg.Security.AllowedHosts, a.logger))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   a.cfg.Security.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if a.cfg.Server.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(a.cfg.Server.RateLimit.RPS, a.cfg.Server.RateLimit.Burst, a.logger)
		r.Use(limiter.Handler)
	}

	metrics := middleware.NewHTTPMetrics()
	r.Use(metrics.Handler)

	healthHandler := transport.NewHealthHandler(a.db, a.cache, a.cfg.App.Version, a.logger)

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Check)
	r.Handle("/metrics", metrics.Exposition())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Mount("/health", healthHandler.Routes())
		r.Mount("/auth", transport.NewAuthHandler(a.logger).Routes())
		r.Mount("/projects", transport.NewProjectsHandler(a.logger).Routes())
		r.Mount("/tracks", transport.NewTracksHandler(a.logger).Routes())
		r.Mount("/sessions", transport.NewSessionsHandler(a.hub, a.cfg.Security.AllowedOrigins, a.logger).Routes())
		r.Mount("/exports", transport.NewExportsHandler(a.logger).Routes())
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		errors.WriteError(w, errors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		errors.WriteError(w, errors.ErrMethodNotAllowed)
	})

	return r
}

// Start initializes the schema and begins serving. A schema failure is
// fatal: the application transitions straight to Stopped and the error
// is returned without the listener ever opening.
func (a *Application) Start(ctx context.Context) error {
	a.state.set(StateStarting)
	a.logger.InfoContext(ctx, "starting application",
		slog.String("name", a.cfg.App.Name),
		slog.String("version", a.cfg.App.Version),
		slog.String("environment", a.cfg.App.Environment),
		slog.String("addr", a.cfg.Addr()))

	if err := a.db.InitSchema(ctx); err != nil {
		a.state.set(StateStopped)
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	a.hub.Start()
	a.state.set(StateServing)
	a.logger.InfoContext(ctx, "application serving", slog.String("addr", a.cfg.Addr()))

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		a.state.set(StateStopped)
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Stop gracefully shuts the application down: the HTTP server drains
// within the configured shutdown timeout, then the hub, database pool,
// and cache client are released in order.
func (a *Application) Stop(ctx context.Context) error {
	a.state.set(StateStopping)
	a.logger.InfoContext(ctx, "stopping application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	var firstErr error
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.ErrorContext(ctx, "server shutdown error", slog.String("error", err.Error()))
		firstErr = err
	}

	a.hub.Stop()

	if err := a.db.Close(); err != nil {
		a.logger.ErrorContext(ctx, "database close error", slog.String("error", err.Error()))
		if firstErr == nil {
			firstErr = err
		}
	}
	if err := a.cache.Close(); err != nil {
		a.logger.ErrorContext(ctx, "cache close error", slog.String("error", err.Error()))
		if firstErr == nil {
			firstErr = err
		}
	}

	a.state.set(StateStopped)
	a.logger.InfoContext(ctx, "application stopped")
	return firstErr
}

// Run starts the application and blocks until SIGINT or SIGTERM, then
// performs a graceful stop. A startup failure stops the application
// immediately and is returned to the caller.
func (a *Application) Run() error {
	ctx := context.Background()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Start(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			a.Stop(ctx)
			return err
		}
		return nil
	case sig := <-quit:
		a.logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		return a.Stop(ctx)
	}
}
