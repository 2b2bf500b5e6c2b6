package database

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteDB is the embedded store used for single-node deployments and
// repository tests. Every gorm repository shares this handle.
type SQLiteDB struct {
	DB   *gorm.DB
	Path string
}

// OpenSQLite opens (or creates) the database at path. ":memory:" gives a
// private in-memory database; the pool is pinned to one connection so every
// query sees the same memory database.
func OpenSQLite(path string) (*SQLiteDB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	log.Info().Str("path", path).Msg("[DATABASE] SQLite store opened")
	return &SQLiteDB{DB: db, Path: path}, nil
}

// AutoMigrate creates tables and indexes for the given row models.
func (s *SQLiteDB) AutoMigrate(models ...interface{}) error {
	if err := s.DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("sqlite migrate: %w", err)
	}
	return nil
}

func (s *SQLiteDB) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func (s *SQLiteDB) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
