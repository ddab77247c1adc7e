package components

import (
	"context"

	"courtside/internal/infra/cache"
	"courtside/internal/infra/courtapi"
	"courtside/internal/usecase/commands"
	"courtside/internal/usecase/queries"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		cache.NewProjectionCache,
		cache.NewNameCache,
		fx.Annotate(
			func(c *courtapi.Client) *courtapi.Client { return c },
			fx.As(new(queries.SlotGateway)),
		),
		fx.Annotate(
			func(c *courtapi.Client) *courtapi.Client { return c },
			fx.As(new(commands.BookingGateway)),
		),
	),
	fx.Invoke(registerCacheTeardown),
)

// registerCacheTeardown empties the session caches when the app stops. They
// hold only derived state, so dropping them is always safe.
func registerCacheTeardown(lc fx.Lifecycle, projections *cache.ProjectionCache, names *cache.NameCache) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			projections.Clear()
			names.Clear()
			return nil
		},
	})
}
