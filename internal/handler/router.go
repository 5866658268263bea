package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"productpraat/internal/handler/api"
	"productpraat/internal/handler/middleware"
	"productpraat/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	catalogHandler *api.CatalogHandler,
	affiliateHandler *api.AffiliateHandler,
	reviewHandler *api.ReviewHandler,
	syncHandler *api.SyncHandler,
	authHandler *api.AuthHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, catalogHandler, affiliateHandler, reviewHandler, syncHandler, authHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	catalogHandler *api.CatalogHandler,
	affiliateHandler *api.AffiliateHandler,
	reviewHandler *api.ReviewHandler,
	syncHandler *api.SyncHandler,
	authHandler *api.AuthHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/auth/token", Handler: authHandler.Token},
		})

		products := apiGroup.Group("/products")
		{
			addRoutes(products, []route{
				{Method: http.MethodGet, Path: "/search", Handler: catalogHandler.Search},
				{Method: http.MethodGet, Path: "/popular", Handler: catalogHandler.Popular},
				{Method: http.MethodGet, Path: "/:ean", Handler: catalogHandler.Get},
				{Method: http.MethodGet, Path: "/:ean/complete", Handler: catalogHandler.GetComplete},
				{Method: http.MethodGet, Path: "/:ean/review", Handler: reviewHandler.Generate},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/categories", Handler: catalogHandler.Categories},
			{Method: http.MethodGet, Path: "/deals", Handler: catalogHandler.Deals},
		})

		affiliate := apiGroup.Group("/affiliate")
		{
			addRoutes(affiliate, []route{
				{Method: http.MethodGet, Path: "/link", Handler: affiliateHandler.Link},
				{Method: http.MethodPost, Path: "/click", Handler: affiliateHandler.Click},
			})
		}

		sync := apiGroup.Group("/sync")
		sync.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		{
			addRoutes(sync, []route{
				{Method: http.MethodGet, Path: "/jobs", Handler: syncHandler.ListJobs},
				{Method: http.MethodGet, Path: "/jobs/:id", Handler: syncHandler.GetJob},
				{Method: http.MethodPost, Path: "/:type", Handler: syncHandler.Trigger},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
