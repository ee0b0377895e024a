package main

import (
	"context"
	"fmt"
	"os"

	"ops-dashboard/internal/api"
	"ops-dashboard/internal/cli"
	"ops-dashboard/internal/config"
	"ops-dashboard/internal/services"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// APIFactory picks how the ticket store is opened for an environment
type APIFactory struct {
	env Environment
}

// NewAPIFactory creates a new factory for the given environment
func NewAPIFactory(env Environment) *APIFactory {
	return &APIFactory{env: env}
}

// Create builds the business API for cfg
func (f *APIFactory) Create(ctx context.Context, cfg *config.Config) (api.BusinessAPI, func() error, error) {
	switch f.env {
	case Testing:
		return f.createTestingAPI(ctx, cfg)
	case Development:
		// keep the database next to the working tree
		cfg.Database.Dir = "."
		return cli.NewBusinessAPIFromConfig(ctx, cfg)
	default:
		return cli.NewBusinessAPIFromConfig(ctx, cfg)
	}
}

// createTestingAPI uses an in-memory SQLite store that is discarded on exit
func (f *APIFactory) createTestingAPI(ctx context.Context, cfg *config.Config) (api.BusinessAPI, func() error, error) {
	cal, err := cfg.Calendar()
	if err != nil {
		return nil, nil, err
	}
	repo, err := config.CreateTestRepository(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize testing database: %w", err)
	}
	return api.NewBusinessAPI(services.NewServiceContainer(repo, cal, cfg.Validation)), repo.Close, nil
}

// getEnvironment determines the current environment from OPS_ENV
func getEnvironment() Environment {
	switch os.Getenv("OPS_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	default:
		return Production
	}
}
