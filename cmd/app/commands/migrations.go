package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/orders/internal/config"
)

// RunMigrations applies every pending migration for the configured SQL driver.
// Returns nil when the schema is already up to date.
func RunMigrations(logger *slog.Logger, dbDriver, dbConnectionString string) error {
	logger.Info("running database migrations", slog.String("driver", dbDriver))

	migrationsPath, databaseURL, err := migrationSource(dbDriver, dbConnectionString)
	if err != nil {
		return err
	}

	m, err := migrate.New(migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}

// migrationSource returns the migrations directory and the migrate database URL.
// MySQL DSNs carry no scheme, so one is added.
func migrationSource(dbDriver, dbConnectionString string) (string, string, error) {
	switch dbDriver {
	case config.DriverPostgres:
		return "file://migrations/postgresql", dbConnectionString, nil
	case config.DriverMySQL:
		if !strings.HasPrefix(dbConnectionString, "mysql://") {
			dbConnectionString = "mysql://" + dbConnectionString
		}
		return "file://migrations/mysql", dbConnectionString, nil
	default:
		return "", "", fmt.Errorf("migrations are not supported for database driver %q", dbDriver)
	}
}
