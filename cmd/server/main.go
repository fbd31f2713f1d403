// Command server runs the pharmacy inventory HTTP API.
//
// Startup order:
//  1. load .env (best effort) and typed config from the environment
//  2. configure the global zerolog logger
//  3. open the database (SQLite by default, PostgreSQL via DB_DRIVER) and
//     migrate the schema
//  4. set up OpenTelemetry tracing when enabled
//  5. mount the Gin router and serve with graceful shutdown
//
// @title           Pharmacy Inventory API
// @version         1.0
// @description     Pharmacy, patient, and medicine registries with per-pharmacy
// @description     stock, atomic purchases, and nearby-availability search.
// @BasePath        /api/v1
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-pharmacy-backend/internal/config"
	httpapi "github.com/tbourn/go-pharmacy-backend/internal/http"
	"github.com/tbourn/go-pharmacy-backend/internal/observability"
	"github.com/tbourn/go-pharmacy-backend/internal/repo"
	"github.com/tbourn/go-pharmacy-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=…".
var version = "dev"

func main() {
	// Local development convenience; ignore the error in containers where
	// configuration comes from real env vars.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := repo.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate schema")
	}

	ctx := context.Background()
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up tracing")
	}
	if cfg.OTEL.Enabled {
		if err := repo.UseTracing(db); err != nil {
			log.Fatal().Err(err).Msg("failed to enable gorm tracing")
		}
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Str("addr", srv.Addr).Str("base_path", cfg.APIBasePath).Msg("pharmacy backend listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("tracing shutdown failed")
	}
	log.Info().Msg("server exited")
}
