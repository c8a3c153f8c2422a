// Package server wires the gateway client, description cache and command
// dispatcher into the tradfrid HTTP API.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/tradfri-tools/tradfrid/internal/command"
	"github.com/tradfri-tools/tradfrid/internal/config"
	"github.com/tradfri-tools/tradfrid/internal/description"
	"github.com/tradfri-tools/tradfrid/internal/http/handlers"
	"github.com/tradfri-tools/tradfrid/internal/http/mw"
	"github.com/tradfri-tools/tradfrid/internal/http/routes"
	"github.com/tradfri-tools/tradfrid/pkg/tradfri"
)

// BuildInfo carries version details injected at build time.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// Server owns the HTTP API and the domain components behind it.
type Server struct {
	logger     *slog.Logger
	cfg        *config.Config
	build      BuildInfo
	client     tradfri.Client
	cache      *description.Cache
	dispatcher *command.Dispatcher
	httpServer *http.Server
	wg         sync.WaitGroup
}

// New creates a new server instance around the given gateway client.
func New(logger *slog.Logger, cfg *config.Config, client tradfri.Client, build BuildInfo) *Server {
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = description.DefaultTTL
	}

	builder := description.NewBuilder(client, logger)
	cache := description.NewCache(builder, ttl, logger)
	dispatcher := command.NewDispatcher(client, cache, logger)

	return &Server{
		logger:     logger,
		cfg:        cfg,
		build:      build,
		client:     client,
		cache:      cache,
		dispatcher: dispatcher,
	}
}

// Start begins serving the HTTP API.
func (s *Server) Start() error {
	s.logger.Info("Starting tradfrid server", "address", s.cfg.API.ListenAddress)

	s.httpServer = &http.Server{
		Addr:         s.cfg.API.ListenAddress,
		Handler:      s.router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("panic in HTTP server goroutine", "recover", r)
			}
		}()
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server failed", "error", err)
		}
		s.logger.Info("HTTP server stopped")
	}()

	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() {
	s.logger.Info("Shutting down tradfrid server")

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("HTTP server shutdown failed", "error", err)
		}
	}

	s.wg.Wait()
	s.logger.Info("Tradfrid server shut down gracefully")
}

// router builds the Chi router: global middleware, the versioned Huma API and
// the legacy flat routes the original web UI expects.
func (s *Server) router() *chi.Mux {
	router := chi.NewRouter()
	router.Use(mw.RequestLogging(s.logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	rateCfg := mw.DefaultRateLimitConfig()
	if s.cfg.API.RequestsPerMinute > 0 {
		rateCfg.RequestsPerMinute = s.cfg.API.RequestsPerMinute
	}
	router.Use(mw.RateLimitByIP(rateCfg))

	descriptionHandler := &handlers.DescriptionHandler{Cache: s.cache}
	bulbHandler := &handlers.BulbHandler{Dispatcher: s.dispatcher}
	roomHandler := &handlers.RoomHandler{Dispatcher: s.dispatcher}

	api := humachi.New(router, routes.NewHumaConfig(s.build.Version))
	routes.Register(api, &routes.Handlers{
		HealthCheck:  handlers.HealthCheck,
		VersionCheck: handlers.NewVersionCheck(s.build.Version, s.build.Commit, s.build.BuildDate),
		Description:  descriptionHandler,
		Bulb:         bulbHandler,
		Room:         roomHandler,
	})

	s.registerLegacyRoutes(router)

	return router
}
