package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks against the persistence
// store and the cache/queue backend, updating the in-memory snapshot.
func StartHealthMonitor(redisClient *redis.Client, mongoClient *mongo.Client) {
	check := func(ctx context.Context) {
		status := HealthStatus{
			Mongo:     mongoClient.Ping(ctx, nil) == nil,
			Redis:     redisClient.Ping(ctx).Err() == nil,
			CheckedAt: time.Now(),
		}
		healthMu.Lock()
		currentHealth = status
		healthMu.Unlock()
	}

	go func() {
		ctx := context.Background()
		check(ctx)

		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			check(ctx)
		}
	}()
}
