package routes

import (
	"net/http"
	"time"

	"telecare/handlers"
	"telecare/middleware"
	"telecare/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers registered on the router.
type HandlerBundle struct {
	Appointments *handlers.AppointmentHandler
	Video        *handlers.VideoHandler
}

// RegisterAppointmentRoutes sets up the scheduling engine endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.POST("", hb.Appointments.CreateAppointment)
		api.GET("/:id", hb.Appointments.GetAppointmentByID)
		api.PUT("/:id", hb.Appointments.UpdateAppointment)
		api.POST("/:id/cancel", hb.Appointments.CancelAppointment)
		api.POST("/:id/complete", hb.Appointments.CompleteAppointment)
		api.POST("/:id/payment", hb.Appointments.AttachPayment)
		api.GET("/doctor/:doctorId", hb.Appointments.GetAppointmentsByDoctor)
		api.GET("/user/:userId", hb.Appointments.GetAppointmentsByUser)

		// Administrative endpoints bypass the lifecycle machine.
		admin := api.Group("")
		admin.Use(middleware.AdminAuthMiddleware())
		admin.GET("", hb.Appointments.GetAllAppointments)
		admin.DELETE("/:id", hb.Appointments.DeleteAppointment)
	}
}

// RegisterVideoRoutes sets up the session handle endpoints.
func RegisterVideoRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/video")
	{
		api.POST("/create", hb.Video.CreateVideoRoom)
		api.GET("/:appointmentId", hb.Video.GetVideoRoom)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAppointmentRoutes(r, hb)
	RegisterVideoRoutes(r, hb)
}
