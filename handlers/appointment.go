package handlers

import (
	"net/http"
	"time"

	"telecare/models"
	"telecare/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes the scheduling engine over HTTP.
type AppointmentHandler struct {
	Service scheduling.SchedulingService
	Logger  *zap.Logger
}

// NewAppointmentHandler wires the scheduling service into its HTTP surface.
func NewAppointmentHandler(svc scheduling.SchedulingService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Service: svc, Logger: logger}
}

// CreateAppointment handles POST /api/appointments.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req struct {
		DoctorID     string                 `json:"doctorId" binding:"required"`
		UserID       string                 `json:"userId" binding:"required"`
		ScheduleTime time.Time              `json:"scheduleTime" binding:"required"`
		Mode         models.AppointmentMode `json:"mode"`
		Notes        string                 `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Service.Book(c.Request.Context(), scheduling.BookInput{
		DoctorID:     req.DoctorID,
		UserID:       req.UserID,
		ScheduleTime: req.ScheduleTime,
		Mode:         req.Mode,
		Notes:        req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// GetAllAppointments handles GET /api/appointments. Administrative.
func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	appts, err := h.Service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// GetAppointmentByID handles GET /api/appointments/:id, with doctor and
// user references populated.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	detail, err := h.Service.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateAppointment handles PUT /api/appointments/:id. Partial update: a
// schedule time change re-runs the conflict check, a status change goes
// through the lifecycle machine.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var req struct {
		ScheduleTime *time.Time                `json:"scheduleTime"`
		Status       *models.AppointmentStatus `json:"status"`
		Mode         *models.AppointmentMode   `json:"mode"`
		Notes        *string                   `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Service.Update(c.Request.Context(), c.Param("id"), scheduling.UpdateInput{
		ScheduleTime: req.ScheduleTime,
		Status:       req.Status,
		Mode:         req.Mode,
		Notes:        req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// DeleteAppointment handles DELETE /api/appointments/:id. Hard delete,
// administrative correction only.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}

// GetAppointmentsByDoctor handles GET /api/appointments/doctor/:doctorId,
// ascending by schedule time.
func (h *AppointmentHandler) GetAppointmentsByDoctor(c *gin.Context) {
	appts, err := h.Service.ListByDoctor(c.Request.Context(), c.Param("doctorId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// GetAppointmentsByUser handles GET /api/appointments/user/:userId,
// descending by schedule time.
func (h *AppointmentHandler) GetAppointmentsByUser(c *gin.Context) {
	appts, err := h.Service.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// CancelAppointment handles POST /api/appointments/:id/cancel. Idempotent on
// an already cancelled appointment.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	appt, err := h.Service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CompleteAppointment handles POST /api/appointments/:id/complete.
func (h *AppointmentHandler) CompleteAppointment(c *gin.Context) {
	appt, err := h.Service.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// AttachPayment handles POST /api/appointments/:id/payment, the settlement
// notification from the payment collaborator.
func (h *AppointmentHandler) AttachPayment(c *gin.Context) {
	var req struct {
		PaymentID string `json:"paymentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Service.AttachPayment(c.Request.Context(), c.Param("id"), req.PaymentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}
