package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"ops-dashboard/internal/api"
	"ops-dashboard/internal/config"
	"ops-dashboard/internal/services"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App carries what every command handler needs
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	out         io.Writer
	in          io.Reader
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		businessAPI: businessAPI,
		config:      cfg,
		out:         os.Stdout,
		in:          os.Stdin,
	}
}

// WithIO replaces the streams commands read from and write to
func (a *App) WithIO(in io.Reader, out io.Writer) *App {
	a.in = in
	a.out = out
	return a
}

// APIFactory builds the business API for a loaded configuration. The returned
// function releases what the API holds open.
type APIFactory func(ctx context.Context, cfg *config.Config) (api.BusinessAPI, func() error, error)

// NewBusinessAPIFromConfig opens the configured ticket store and wires the
// services over it
func NewBusinessAPIFromConfig(ctx context.Context, cfg *config.Config) (api.BusinessAPI, func() error, error) {
	cal, err := cfg.Calendar()
	if err != nil {
		return nil, nil, err
	}

	repo, err := config.CreateRepository(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open ticket store: %w", err)
	}

	container := services.NewServiceContainer(repo, cal, cfg.Validation)
	return api.NewBusinessAPI(container), repo.Close, nil
}

// displayTime renders a stored timestamp with the configured display format.
// Values that do not parse are shown as stored.
func (a *App) displayTime(raw string) string {
	t, ok := a.businessAPI.Calendar().ParseTimestamp(raw)
	if !ok {
		return raw
	}
	return t.Format(a.config.Display.TimeFormat)
}

func (a *App) placeholder(s string) string {
	if s == "" {
		return a.config.Display.Placeholder
	}
	return s
}
