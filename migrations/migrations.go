// Package migrations embeds the PostgreSQL schema applied by cmd/migrate.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog/log"
)

//go:embed *.sql
var FS embed.FS

const (
	// VersionTable is where tern records the applied version.
	VersionTable = "public.schema_version"

	// lockID is the advisory lock held while migrating so two deploys never race.
	lockID             = 0x656e67616765
	lockReleaseTimeout = 5 * time.Second
)

// Apply runs every pending migration under the advisory lock and returns
// the schema version before and after.
func Apply(ctx context.Context, pool *pgxpool.Pool) (from, to int32, err error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to acquire connection for migration: %w", err)
	}
	defer conn.Release()

	unlock, err := lock(ctx, conn.Conn())
	if err != nil {
		return 0, 0, err
	}
	defer unlock()

	return run(ctx, conn.Conn())
}

func run(ctx context.Context, conn *pgx.Conn) (int32, int32, error) {
	migrator, err := migrate.NewMigrator(ctx, conn, VersionTable)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := migrator.LoadMigrations(FS); err != nil {
		return 0, 0, fmt.Errorf("failed to load migrations: %w", err)
	}

	migrator.OnStart = func(sequence int32, name, direction, _ string) {
		log.Info().Int32("sequence", sequence).Str("name", name).Str("direction", direction).Msg("Migration started")
	}

	from, err := migrator.GetCurrentVersion(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read schema version: %w", err)
	}

	if err := migrator.Migrate(ctx); err != nil {
		return from, from, fmt.Errorf("failed to migrate database: %w", err)
	}

	to, err := migrator.GetCurrentVersion(ctx)
	if err != nil {
		return from, from, fmt.Errorf("failed to read schema version: %w", err)
	}
	return from, to, nil
}

func lock(ctx context.Context, conn *pgx.Conn) (func(), error) {
	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", lockID); err != nil {
		return nil, fmt.Errorf("failed to acquire migration lock: %w", err)
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), lockReleaseTimeout)
		defer cancel()

		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", lockID); err != nil {
			log.Error().Err(err).Msg("failed to release migration lock")
		}
	}, nil
}
