package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
	"github.com/andresuchdata/wcanalyzer/internal/storage"
)

// respondError maps service errors onto HTTP responses.
func respondError(c *gin.Context, message string, err error) {
	var inputErr *domain.InputError
	switch {
	case errors.As(err, &inputErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  message,
			"fields": inputErr.Fields,
		})
	case errors.Is(err, domain.ErrUnknownIndustry), errors.Is(err, domain.ErrMetricsRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": message, "details": err.Error()})
	case errors.Is(err, domain.ErrAnalysisNotFound),
		errors.Is(err, domain.ErrSnapshotNotFound),
		errors.Is(err, storage.ErrObjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": message, "details": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(message)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message, "details": err.Error()})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
}
