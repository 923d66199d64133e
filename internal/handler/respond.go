package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"scamshield/internal/apperr"
)

// respondError maps the shared error taxonomy onto HTTP status codes.
// SourceUnavailable and Transient get retryable statuses so the app can
// show a retry affordance.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrSourceUnavailable):
		logger.Warn("External source unavailable", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "External source unavailable, try again later"})
	case errors.Is(err, apperr.ErrTransient):
		logger.Warn("Transient failure", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporary conflict, try again"})
	default:
		logger.Error("Internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func currentUserID(c *gin.Context) int64 {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
