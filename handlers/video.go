package handlers

import (
	"net/http"

	"telecare/services/video"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VideoHandler exposes the session handle binder over HTTP.
type VideoHandler struct {
	Sessions video.SessionService
	Logger   *zap.Logger
}

// NewVideoHandler wires the session service into its HTTP surface.
func NewVideoHandler(sessions video.SessionService, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{Sessions: sessions, Logger: logger}
}

// CreateVideoRoom handles POST /api/video/create.
func (h *VideoHandler) CreateVideoRoom(c *gin.Context) {
	var req struct {
		AppointmentID string `json:"appointmentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	roomID, err := h.Sessions.OpenSession(c.Request.Context(), req.AppointmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Video room created successfully",
		"roomId":  roomID,
	})
}

// GetVideoRoom handles GET /api/video/:appointmentId.
func (h *VideoHandler) GetVideoRoom(c *gin.Context) {
	roomID, err := h.Sessions.GetSession(c.Request.Context(), c.Param("appointmentId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roomId": roomID})
}
