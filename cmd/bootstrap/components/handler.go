package components

import (
	"productpraat/internal/handler"
	"productpraat/internal/handler/api"
	"productpraat/internal/handler/middleware"
	"productpraat/internal/pkg/config"
	"productpraat/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCatalogHandler,
		api.NewAffiliateHandler,
		api.NewReviewHandler,
		api.NewSyncHandler,
		NewAuthHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewAuthHandler(tokens *jwt.Service, cfg config.Config) *api.AuthHandler {
	return api.NewAuthHandler(tokens, cfg.Auth)
}
