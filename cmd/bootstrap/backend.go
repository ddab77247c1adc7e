package bootstrap

import (
	"log/slog"
	"time"

	"courtside/internal/infra/courtapi"
	"courtside/internal/pkg/config"

	"go.uber.org/fx"
)

var BackendModule = fx.Module("backend",
	fx.Provide(
		NewBackendClient,
		NewVenueLocation,
	),
)

func NewBackendClient(cfg config.Config, logger *slog.Logger) (*courtapi.Client, error) {
	return courtapi.NewClient(cfg.Backend, logger)
}

func NewVenueLocation(cfg config.Config) *time.Location {
	return cfg.Backend.VenueLocation()
}
