// Command seed populates the configured database with the demo dataset
// (pharmacies, patients, medicines, stock, purchases, interaction logs).
//
// Usage:
//
//	go run ./cmd/seed
//
// It reads the same DB_DRIVER/DB_DSN configuration as the server, so seeding
// targets whatever database the server would use.
package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-pharmacy-backend/internal/config"
	"github.com/tbourn/go-pharmacy-backend/internal/repo"
	"github.com/tbourn/go-pharmacy-backend/internal/seed"
	"github.com/tbourn/go-pharmacy-backend/internal/sysutil"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()
	sysutil.SetLogLevel(cfg.LogLevel)

	db, err := repo.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate schema")
	}

	if err := seed.Run(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Str("db", cfg.DBDSN).Msg("database seeded")
}
