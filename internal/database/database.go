// Package database opens the SQL storage and applies schema migrations
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	sqlitedb "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Options control how Connect retries
type Options struct {
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultOptions mirror the container start-up window of the postgres service
func DefaultOptions() Options {
	return Options{MaxRetries: 30, RetryDelay: 2 * time.Second}
}

// Connect opens driver with retries until the database answers a ping
func Connect(driver, dsn string, opts Options, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}

	for i := 0; i < opts.MaxRetries; i++ {
		db, err = sql.Open(driver, dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.String("driver", driver),
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(opts.RetryDelay)
			continue
		}

		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.String("driver", driver),
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(opts.RetryDelay)
			continue
		}

		configurePool(driver, db)
		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", opts.MaxRetries, err)
}

func configurePool(driver string, db *sql.DB) {
	if driver == DriverSQLite {
		// one writer at a time
		db.SetMaxOpenConns(1)
		return
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
}

// Migrate applies the migrations found in <migrationsPath>/<driver dir>
func Migrate(db *sql.DB, driver, migrationsPath string, logger *zap.Logger) error {
	var (
		instance database.Driver
		subdir   string
		err      error
	)

	switch driver {
	case DriverPostgres:
		instance, err = postgresdb.WithInstance(db, &postgresdb.Config{})
		subdir = "postgres"
	case DriverSQLite:
		instance, err = sqlitedb.WithInstance(db, &sqlitedb.Config{})
		subdir = "sqlite"
	default:
		return fmt.Errorf("unsupported migration driver: %s", driver)
	}
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+filepath.ToSlash(filepath.Join(migrationsPath, subdir)),
		driver,
		instance,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply", zap.String("driver", driver))
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully", zap.String("driver", driver))
	}

	return nil
}
