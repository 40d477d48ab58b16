package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"linkme/internal/middleware"
	"linkme/internal/pricing"
	"linkme/internal/store"
)

// Store is everything the HTTP surface persists through.
type Store interface {
	store.SelectionItems
	store.CatalogProducts
	store.StaffUsers
	store.Pinger
}

type Deps struct {
	Store          Store
	Engine         *pricing.Engine
	JWTSecret      string
	AccessTokenTTL time.Duration
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	r.GET("/health", Health(deps.Store))
	r.POST("/auth/login", Login(deps.Store, deps.JWTSecret, deps.AccessTokenTTL))

	api := r.Group("/api")
	api.Use(middleware.StaffAuth(deps.JWTSecret))
	{
		api.POST("/pricing/margins", ComputeMargins(deps.Engine))
		api.POST("/pricing/breakdown", ComputeBreakdown(deps.Engine))
		api.POST("/pricing/validate", ValidateCeiling(deps.Engine))

		api.GET("/selections/:selectionId/items", ListSelectionItems(deps.Store, deps.Engine))
		api.GET("/selections/:selectionId/items/:itemId", GetSelectionItem(deps.Store, deps.Engine))
		api.PUT("/selections/:selectionId/items/:itemId", UpdateSelectionItem(deps.Store, deps.Engine))
	}

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(deps.JWTSecret))
	{
		admin.GET("/catalog", ListCatalogProducts(deps.Store))
		admin.PUT("/catalog/:productId/pricing", UpdateCatalogPricing(deps.Store, deps.Engine))
	}
}
