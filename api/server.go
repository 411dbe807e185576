package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
}

// NewServer builds the HTTP server from PORT and the *_TIMEOUT_SECONDS keys.
func NewServer(deps Dependencies, c map[string]string) (Server, error) {
	if deps.Uploader == nil {
		return Server{}, errors.New("api: an uploader is required")
	}

	seconds := func(key string, def int) time.Duration {
		return time.Duration(config.GetInt(c, key, def)) * time.Second
	}

	return Server{
		Server: &http.Server{
			Addr:              net.JoinHostPort("0.0.0.0", config.GetString(c, "PORT", "8080")),
			Handler:           newRouter(deps, withConfig(c), withStartupTime(time.Now())),
			ReadTimeout:       seconds("READ_TIMEOUT_SECONDS", 60),
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      seconds("WRITE_TIMEOUT_SECONDS", 60),
			IdleTimeout:       seconds("IDLE_TIMEOUT_SECONDS", 120),
		},
	}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	router := router{startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(MetricsMiddleware)

	if config.GetString(router.config, "APP_ENV", "") == "development" {
		chiRouter.Use(HTTPLoggingMiddleware(consoleLogger()))
	} else if config.GetBool(router.config, "LOG_REQUESTS", true) {
		chiRouter.Use(HTTPLoggingMiddleware(log.Logger))
	}

	// Apply CORS middleware
	acceptedOrigins := config.GetStrings(router.config, "ACCEPTED_ORIGINS", []string{"*"})
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   acceptedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	handlers := initializeHandlers(deps, router.startupTime)
	setupRoutes(chiRouter, handlers, deps.Files, config.GetString(router.config, "METRICS_PORT", "") == "")

	return chiRouter
}

// Run serves until ctx is cancelled, then drains in-flight requests for
// at most shutdownTimeout.
func (s Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	errChannel := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.Addr).Msg("server started")
		errChannel <- s.ListenAndServe()
	}()

	select {
	case err := <-errChannel:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("gracefully shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server shut down")
	return nil
}
