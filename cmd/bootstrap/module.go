package bootstrap

import (
	"productpraat/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	components.StoreModule,
	components.MarketplaceModule,
	components.SyncModule,
	components.HandlerModule,
)
