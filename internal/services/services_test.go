package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ops-dashboard/internal/businesshours"
	"ops-dashboard/internal/config"
)

// 2024-01-05 is a Friday, 2024-01-08 a Monday.
func setupTestServices(t *testing.T) *ServiceContainer {
	t.Helper()
	repo, err := config.CreateTestRepository(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return NewServiceContainer(repo, businesshours.Default(time.UTC), config.NewConfig().Validation)
}

func strPtr(s string) *string {
	return &s
}
