// Package server is the composition root: it opens the database, builds
// every service and handler, mounts the routes and runs the HTTP server.
//
// Dependency flow:
//
//	config.Config → gormdb.DB (repository.Store)
//	             → services (auth, user, onboarding, profile, mission, message)
//	             → handlers → chi router
//
// Nothing below this package constructs its own dependencies.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/reconnect/internal/auth"
	"github.com/sakif/reconnect/internal/coach"
	"github.com/sakif/reconnect/internal/config"
	"github.com/sakif/reconnect/internal/handler"
	"github.com/sakif/reconnect/internal/metrics"
	"github.com/sakif/reconnect/internal/middleware"
	"github.com/sakif/reconnect/internal/repository/gormdb"
	"github.com/sakif/reconnect/internal/service"
)

const (
	shutdownTimeout     = 30 * time.Second
	limiterCleanupEvery = 10 * time.Minute
)

// Server owns the database handle and closes it on shutdown.
type Server struct {
	router  *chi.Mux
	config  config.Config
	logger  *slog.Logger
	db      *gormdb.DB
	limiter *middleware.RateLimiter
}

// Option adjusts how New wires the server.
type Option func(*options)

type options struct {
	source coach.Source
}

// WithCoachSource replaces the random source used by the message engine.
func WithCoachSource(src coach.Source) Option {
	return func(o *options) { o.source = src }
}

// New opens and migrates the database and builds the router.
func New(cfg config.Config, logger *slog.Logger, opts ...Option) (*Server, error) {
	db, err := gormdb.Open(cfg.DatabaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("server: opening database: %w", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("server: migrating database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	if err := s.setupRoutes(opts...); err != nil {
		db.Close()
		return nil, fmt.Errorf("server: setting up routes: %w", err)
	}
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes mounts:
//
//	GET    /                                  welcome
//	GET    /healthz                           database ping
//	GET    /metrics                           Prometheus (METRICS_ENABLED)
//	POST   /api/auth/signup                   rate limited
//	POST   /api/auth/login                    rate limited, form body
//	GET    /api/users/me                      ┐
//	PUT    /api/users/me                      │
//	POST   /api/onboarding/step{1,2,3}        │
//	GET    /api/onboarding                    │
//	*      /api/onboarding/profile            │ bearer token
//	PUT    /api/onboarding/step/{step}        │
//	*      /api/missions[/{id}]               │
//	GET    /api/messages/recommended-goals    │
//	POST   /api/messages/generate             │
//	GET    /api/messages[/{id}]               ┘
func (s *Server) setupRoutes(opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	tokens, err := auth.NewTokenService(s.config.SecretKey, s.config.AccessTokenTTL)
	if err != nil {
		return err
	}
	passwords := auth.NewPasswordService(s.config.BcryptCost)

	var m *metrics.Metrics
	var observer service.GenerationObserver
	if s.config.MetricsEnabled {
		m = metrics.New()
		observer = m
	}

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	userService := service.NewUserService(s.db, passwords, s.logger)
	onboardingService := service.NewOnboardingService(s.db, s.logger)
	profileService := service.NewProfileService(s.db, s.logger)
	missionService := service.NewMissionService(s.db, s.logger)
	messageService := service.NewMessageService(s.db, coach.New(o.source), observer, s.logger)

	rootHandler := handler.NewRootHandler(s.db, s.logger)
	authHandler := handler.NewAuthHandler(authService, s.logger)
	userHandler := handler.NewUserHandler(userService, s.logger)
	onboardingHandler := handler.NewOnboardingHandler(onboardingService, profileService, s.logger)
	missionHandler := handler.NewMissionHandler(missionService, s.logger)
	messageHandler := handler.NewMessageHandler(messageService, s.logger)

	// === Global middleware, outermost first ===
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	if m != nil {
		s.router.Use(m.Instrument)
	}
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.CORS(s.config.CORSAllowedOrigins))

	s.router.NotFound(handler.NotFound)
	s.router.MethodNotAllowed(handler.MethodNotAllowed)

	s.router.Get("/", rootHandler.HandleWelcome)
	s.router.Get("/healthz", rootHandler.HandleHealth)
	if m != nil {
		s.router.Handle("/metrics", m.Handler())
	}

	if s.config.LoginRatePerMinute > 0 {
		s.limiter = middleware.NewRateLimiter(s.config.LoginRatePerMinute, s.logger)
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			if s.limiter != nil {
				r.Use(s.limiter.Handler)
			}
			r.Post("/signup", authHandler.HandleSignup)
			r.Post("/login", authHandler.HandleLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens, s.db.Users(), s.logger))

			r.Get("/users/me", userHandler.HandleMe)
			r.Put("/users/me", userHandler.HandleUpdate)

			r.Route("/onboarding", func(r chi.Router) {
				r.Get("/", onboardingHandler.HandleGet)
				r.Post("/step1", onboardingHandler.HandleStep1)
				r.Post("/step2", onboardingHandler.HandleStep2)
				r.Post("/step3", onboardingHandler.HandleStep3)
				r.Put("/step/{step}", onboardingHandler.HandleSetStep)
				r.Post("/profile", onboardingHandler.HandleCreateProfile)
				r.Put("/profile", onboardingHandler.HandleUpdateProfile)
				r.Get("/profile", onboardingHandler.HandleGetProfile)
			})

			r.Route("/missions", func(r chi.Router) {
				r.Post("/", missionHandler.HandleCreate)
				r.Get("/", missionHandler.HandleList)
				r.Get("/{id}", missionHandler.HandleGet)
				r.Put("/{id}", missionHandler.HandleUpdate)
				r.Delete("/{id}", missionHandler.HandleDelete)
			})

			r.Route("/messages", func(r chi.Router) {
				r.Get("/recommended-goals", messageHandler.HandleRecommendedGoals)
				r.Post("/generate", messageHandler.HandleGenerate)
				r.Get("/", messageHandler.HandleList)
				r.Get("/{id}", messageHandler.HandleGet)
			})
		})
	})

	return nil
}

// Start serves until SIGINT or SIGTERM, then drains in-flight requests for
// up to 30 seconds and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	if s.limiter != nil {
		s.limiter.StartCleanup(limiterCleanupEvery, stopCleanup)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.Bool("postgres", gormdb.IsPostgresURL(s.config.DatabaseURL)),
			slog.Bool("metrics", s.config.MetricsEnabled),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: listening: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("server: graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
