package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"telecare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the appointments collection.
// The unique partial index on (doctorId, scheduleTime) over non-cancelled
// statuses is the authoritative slot-exclusivity guard: two concurrent
// bookings for the same slot cannot both commit.
func (r *MongoAppointmentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	activeStatuses := bson.A{
		models.StatusScheduled,
		models.StatusOngoing,
		models.StatusCompleted,
	}

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "scheduleTime", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("doctor_slot_active_idx").
				SetPartialFilterExpression(bson.M{"status": bson.M{"$in": activeStatuses}}),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "scheduleTime", Value: -1}},
			Options: options.Index().SetName("user_schedule_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}
