// File: telecare/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telecare/config"
	"telecare/cron"
	"telecare/database"
	appointmentRepo "telecare/database/repository/appointment"
	doctorRepo "telecare/database/repository/doctor"
	userRepoPkg "telecare/database/repository/user"
	"telecare/handlers"
	"telecare/middleware"
	"telecare/routes"
	"telecare/services/notification"
	"telecare/services/scheduling"
	"telecare/services/tasks"
	"telecare/services/video"
	"telecare/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	if err := apptRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure appointment indexes: %v", err)
	}
	docRepo := doctorRepo.NewMongoDoctorRepo(utils.GetCacheClient())
	userRepo := userRepoPkg.NewMongoUserRepo()

	// reminder queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()
	reminderScheduler := &tasks.AsynqReminderScheduler{
		Client:      asynqClient,
		LeadMinutes: config.AppConfig.ReminderLeadMinutes,
	}

	// services.
	schedulingService := &scheduling.DefaultSchedulingService{
		Repo:                apptRepo,
		DoctorRepo:          docRepo,
		UserRepo:            userRepo,
		Reminders:           reminderScheduler,
		Logger:              logger,
		EnforceAvailability: config.AppConfig.EnforceAvailability,
	}
	sessionService := &video.DefaultSessionService{
		Repo:   apptRepo,
		Logger: logger,
	}
	notificationService := &notification.LogNotificationService{Logger: logger}

	// background workers.
	cron.InitReminderWorker(notificationService)
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Appointments: handlers.NewAppointmentHandler(schedulingService, logger),
		Video:        handlers.NewVideoHandler(sessionService, logger),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
