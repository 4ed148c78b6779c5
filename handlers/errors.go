package handlers

import (
	"errors"
	"net/http"

	"telecare/services/scheduling"
	"telecare/services/video"

	"github.com/gin-gonic/gin"
)

// respondError maps service-layer errors onto the HTTP error surface.
func respondError(c *gin.Context, err error) {
	var (
		notFound   *scheduling.NotFoundError
		conflict   *scheduling.ConflictError
		transition *scheduling.InvalidTransitionError
		validation *scheduling.ValidationError
		noSession  *video.NoSessionError
	)

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &noSession):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
