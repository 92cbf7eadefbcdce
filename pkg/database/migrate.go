package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// MigrateUp applies every pending "up" migration found at sourceURL
// (e.g. file://migrations). It reports whether anything was applied.
func MigrateUp(databaseURL, sourceURL string, logger *slog.Logger) (bool, error) {
	m, closeDB, err := newMigrate(databaseURL, sourceURL)
	if err != nil {
		return false, err
	}
	defer closeDB()

	err = m.Up()
	applied := !errors.Is(err, migrate.ErrNoChange)
	if err != nil && applied {
		return false, fmt.Errorf("failed to apply migrations: %w", err)
	}

	// Check for dirty migrations after running Up.
	if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
		return false, fmt.Errorf("migration close: source=%v database=%v", sourceErr, dbErr)
	}

	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}
	return applied, nil
}

// MigrateDown rolls back the given number of migrations.
func MigrateDown(databaseURL, sourceURL string, steps int, logger *slog.Logger) error {
	m, closeDB, err := newMigrate(databaseURL, sourceURL)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
		return fmt.Errorf("migration close: source=%v database=%v", sourceErr, dbErr)
	}
	logger.Info("Database migrations rolled back", slog.Int("steps", steps))
	return nil
}

// MigrationVersion reports the current schema version and whether it is dirty.
func MigrationVersion(databaseURL, sourceURL string) (uint, bool, error) {
	m, closeDB, err := newMigrate(databaseURL, sourceURL)
	if err != nil {
		return 0, false, err
	}
	defer closeDB()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// newMigrate opens a standard sql.DB through the pgx stdlib driver so
// migrations share the pool's driver.
func newMigrate(databaseURL, sourceURL string) (*migrate.Migrate, func(), error) {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	closeDB := func() { _ = migrationDB.Close() }

	if err := migrationDB.Ping(); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return m, closeDB, nil
}
