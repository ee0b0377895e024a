package config

import (
	"context"
	"fmt"
	"os"

	"ops-dashboard/internal/repository"
	"ops-dashboard/internal/repository/postgres"
	"ops-dashboard/internal/repository/sqlite"
)

// CreateRepository opens the ticket store selected by the database driver
func CreateRepository(ctx context.Context, config *Config) (repository.Repository, error) {
	switch config.Database.Driver {
	case DriverPostgres:
		repo, err := postgres.New(ctx, postgres.Options{
			DSN:          config.Database.PostgresDSN,
			MaxConns:     config.Database.MaxConns,
			QueryTimeout: config.Database.QueryTimeout,
			WriteTimeout: config.Database.WriteTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil

	case DriverSQLite, "":
		if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		repo, err := sqlite.New(ctx, sqlite.Options{
			Path:         config.GetDatabasePath(),
			QueryTimeout: config.Database.QueryTimeout,
			WriteTimeout: config.Database.WriteTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil

	default:
		return nil, &ConfigError{Field: "database.driver", Message: fmt.Sprintf("unknown driver %q", config.Database.Driver)}
	}
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository(ctx context.Context) (repository.Repository, error) {
	repo, err := sqlite.New(ctx, sqlite.Options{Path: sqlite.MemoryPath})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return repo, nil
}
