package cli

import (
	"context"

	"github.com/rs/zerolog/log"

	"ops-dashboard/internal/httpapi"
)

// ServeCommand handles the serve command
type ServeCommand struct {
	app *App
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Execute serves the HTTP API until ctx is cancelled
func (c *ServeCommand) Execute(ctx context.Context) error {
	cfg := c.app.config
	handler := httpapi.NewHandler(c.app.businessAPI, cfg.Display.Placeholder)
	server := httpapi.NewServer(cfg.Server, httpapi.NewRouter(handler, log.Logger), log.Logger)

	log.Info().
		Str("driver", cfg.Database.Driver).
		Str("timezone", c.app.businessAPI.Calendar().Location().String()).
		Msg("starting ops dashboard API")
	return server.Run(ctx)
}
