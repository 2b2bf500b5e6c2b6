package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"engagement-backend/internal/config"
	"engagement-backend/internal/infrastructure/database"
	"engagement-backend/migrations"
	"engagement-backend/pkg/logger"
)

// Applies the embedded PostgreSQL schema. The SQLite store migrates itself
// on startup through gorm.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	if cfg.Storage.Driver != "postgres" {
		log.Info().Str("driver", cfg.Storage.Driver).Msg("Nothing to migrate")
		return
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load database config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	from, to, err := migrations.Apply(ctx, db.Pool)
	if err != nil {
		log.Fatal().Err(err).Int32("version", from).Msg("Migration failed")
	}

	log.Info().Int32("from", from).Int32("to", to).Msg("Migrations complete")
}
