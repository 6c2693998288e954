package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"pickup-vendor-backend/config"
	"pickup-vendor-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	// The response cache applies only to the profile route. Feed state
	// carries live drafts and must never be served stale.
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/feeds/:feed", h.GetFeed)
		api.POST("/feeds/:feed/refresh", h.RefreshFeed)
		api.POST("/feeds/:feed/load-more", h.LoadMoreFeed)
		api.POST("/feeds/:feed/sections/toggle", h.ToggleSection)
		api.POST("/feeds/:feed/rows/toggle", h.ToggleRow)

		api.PUT("/pickups/:id/items/:item_id/unit-price", h.SetUnitPrice)
		api.PUT("/pickups/:id/items/:item_id/total", h.SetTotal)
		api.PUT("/pickups/:id/discount", h.SetDiscount)
		api.POST("/pickups/:id/submit", h.SubmitPrices)

		api.GET("/vendor", caching, h.GetVendor)

		api.PUT("/token", h.PutToken)
		api.GET("/token", h.GetToken)
		api.DELETE("/token", h.DeleteToken)
	}

	return r
}
