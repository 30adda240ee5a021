package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"foodorder/internal/adapters/out/postgres/migrations"

	"github.com/cenkalti/backoff/v4"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to dsn, retrying with exponential backoff for up to connectTimeout
// so the service can start before the database accepts connections, and then
// applies the embedded migrations.
func Open(ctx context.Context, dsn string, connectTimeout time.Duration, log *slog.Logger) (*gorm.DB, error) {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = connectTimeout

	var db *gorm.DB
	connect := func() error {
		var err error
		db, err = gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return backoff.Permanent(err)
		}
		return sqlDB.PingContext(ctx)
	}
	notify := func(err error, wait time.Duration) {
		log.Warn("database is not ready", "error", err, "retry_in", wait)
	}

	if err := backoff.RetryNotify(connect, backoff.WithContext(policy, ctx), notify); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies every pending goose migration to db.
func Migrate(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := migrations.Up(sqlDB); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
