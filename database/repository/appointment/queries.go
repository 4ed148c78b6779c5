package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"telecare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAll returns every appointment document. Administrative use.
func (r *MongoAppointmentRepo) GetAll(ctx context.Context) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

// ListByDoctor returns a doctor's appointments ascending by scheduleTime.
func (r *MongoAppointmentRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.list(ctx, bson.M{"doctorId": doctorID}, bson.D{{Key: "scheduleTime", Value: 1}})
}

// ListByUser returns a user's appointments descending by scheduleTime.
func (r *MongoAppointmentRepo) ListByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	return r.list(ctx, bson.M{"userId": userID}, bson.D{{Key: "scheduleTime", Value: -1}})
}

func (r *MongoAppointmentRepo) list(ctx context.Context, filter bson.M, sort bson.D) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

// ExistsActiveAt reports whether a non-cancelled appointment occupies the
// exact (doctorID, scheduleTime) slot. Conflict detection is exact-timestamp
// equality, not interval overlap: bookings one second apart never conflict.
func (r *MongoAppointmentRepo) ExistsActiveAt(ctx context.Context, doctorID string, scheduleTime time.Time, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"doctorId":     doctorID,
		"scheduleTime": scheduleTime,
		"status":       bson.M{"$ne": models.StatusCancelled},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}

	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("error checking slot conflict: %w", err)
	}
	return count > 0, nil
}
