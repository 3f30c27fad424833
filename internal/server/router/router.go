// Package router assembles the Gin engine for the back-office API.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/resto/internal/server/handlers"
	"github.com/mamadbah2/resto/internal/server/middleware"
	"github.com/mamadbah2/resto/internal/service/auth"
)

// Handlers groups the per-resource HTTP adapters wired into the engine.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Inventory  *handlers.InventoryHandler
	Menu       *handlers.MenuHandler
	Sales      *handlers.SalesHandler
	Waste      *handlers.WasteHandler
	ProfitLoss *handlers.ProfitLossHandler
	Dashboard  *handlers.DashboardHandler
	Suggestion *handlers.SuggestionHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, tokens *auth.TokenManager, resolver middleware.RestaurantResolver, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/auth/register", h.Auth.Register)
	r.POST("/auth/login", h.Auth.Login)

	api := r.Group("/api")
	api.Use(middleware.RequireAuth(tokens, resolver, logger))
	{
		api.GET("/me", h.Auth.Me)

		api.GET("/inventory", h.Inventory.List)
		api.POST("/inventory", h.Inventory.Create)
		api.PUT("/inventory/:id", h.Inventory.Update)
		api.DELETE("/inventory/:id", h.Inventory.Delete)

		api.GET("/menu", h.Menu.List)
		api.POST("/menu", h.Menu.Create)
		api.PUT("/menu/:id", h.Menu.Update)
		api.DELETE("/menu/:id", h.Menu.Delete)

		api.GET("/sales", h.Sales.List)
		api.POST("/sales", h.Sales.Create)

		api.GET("/waste", h.Waste.List)
		api.POST("/waste", h.Waste.Create)

		api.GET("/profit-loss", h.ProfitLoss.List)
		api.POST("/profit-loss", h.ProfitLoss.Compute)

		api.GET("/dashboard", h.Dashboard.Get)

		api.GET("/temp-dish", h.Suggestion.Suggest)
		api.POST("/temp-dish", h.Suggestion.Publish)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}
