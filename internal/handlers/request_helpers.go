package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"linkme/internal/middleware"
	"linkme/internal/store"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		middleware.Logger(c).Error().Str("route", route).Interface("panic", r).Msg("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	logger := middleware.Logger(c)
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("route", route).Int("status", status).Msg(message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func respondStoreError(c *gin.Context, route string, err error, notFound string) {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		respondWithError(c, http.StatusBadRequest, route, "invalid id")
	case errors.Is(err, store.ErrNotFound):
		respondWithError(c, http.StatusNotFound, route, notFound)
	default:
		middleware.Logger(c).Error().Err(err).Str("route", route).Msg("store error")
		respondWithError(c, http.StatusInternalServerError, route, "db error")
	}
}
