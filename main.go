package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	api "github.com/rpupo63/portfolio-site-backend/api"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/services"
	"github.com/rpupo63/portfolio-site-backend/uploads"
)

const shutdownTimeout = 30 * time.Second

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	setupLogging(c)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, c); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}
	log.Info().Msg("Server stopped")
}

func run(ctx context.Context, c map[string]string) error {
	db, err := database.Open(c)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	currentDB := database.New(db)
	if err := currentDB.Ping(ctx); err != nil {
		return fmt.Errorf("test database connection: %w", err)
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		return models.GenerateModels(db)
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		models.GenerateColumnMismatchReport(db)
		return nil
	}

	if config.GetBool(c, "AUTO_MIGRATE", true) {
		if err := currentDB.Migrate(ctx); err != nil {
			return err
		}
		log.Info().Msg("Database schema is up to date")
	}

	prometheus.MustRegister(collectors.NewDBStatsCollector(sqlDB, "portfolio"))

	store, err := uploads.NewStore(ctx, c)
	if err != nil {
		return fmt.Errorf("initialize upload store: %w", err)
	}
	uploader := uploads.NewUploader(store, config.GetInt64(c, "UPLOAD_MAX_BYTES", uploads.DefaultMaxBytes))

	deps := api.NewDependencies(currentDB, uploader, store)
	if notifier := services.NewContactNotifierFromConfig(c); notifier != nil {
		deps.Notifier = notifier
	}

	server, err := api.NewServer(deps, c)
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx, shutdownTimeout)
	})

	// METRICS_PORT serves /metrics on its own listener; the API router then leaves it out
	if port := config.GetString(c, "METRICS_PORT", ""); port != "" {
		metricsServer := &http.Server{
			Addr:              fmt.Sprintf("0.0.0.0:%s", port),
			Handler:           promhttp.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			log.Info().Msgf("Metrics server started on: %s", metricsServer.Addr)
			if err := metricsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return metricsServer.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

// setupLogging configures the global zerolog logger from LOG_LEVEL and APP_ENV.
func setupLogging(c map[string]string) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(config.GetString(c, "LOG_LEVEL", "info"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetString(c, "APP_ENV", "") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}
