package components

import (
	"productpraat/internal/storage"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("stores",
	fx.Provide(
		fx.Annotate(
			storage.NewPostgresProductStore,
			fx.As(new(storage.ProductStore)),
		),
		fx.Annotate(
			storage.NewPostgresDealStore,
			fx.As(new(storage.DealStore)),
		),
		fx.Annotate(
			storage.NewPostgresJobStore,
			fx.As(new(storage.JobStore)),
		),
		fx.Annotate(
			storage.NewPostgresClickStore,
			fx.As(new(storage.ClickStore)),
		),
	),
)
