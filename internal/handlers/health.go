package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"linkme/internal/middleware"
	"linkme/internal/store"
)

func Health(pinger store.Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := pinger.Ping(c.Request.Context()); err != nil {
			middleware.Logger(c).Error().Err(err).Str("route", "HEALTH").Msg("store unreachable")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
