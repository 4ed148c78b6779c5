package notification

import (
	"context"

	"go.uber.org/zap"
)

// NotificationService is the boundary to the external delivery subsystem.
// Delivery transport (push, email) is owned elsewhere; the scheduling engine
// only hands events across this interface.
type NotificationService interface {
	SendUserNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

// LogNotificationService records notification events to the structured log.
// It stands in for the external delivery service in deployments without one.
type LogNotificationService struct {
	Logger *zap.Logger
}

func (s *LogNotificationService) SendUserNotification(ctx context.Context, userID, title, body string, data map[string]string) error {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("Notification event",
		zap.String("userId", userID),
		zap.String("title", title),
		zap.String("body", body),
		zap.Any("data", data))
	return nil
}
