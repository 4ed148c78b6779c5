package appointmentRepo

import (
	"telecare/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAppointmentRepo is the MongoDB-backed implementation of
// AppointmentRepository.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo returns a repository bound to the appointments
// collection.
func NewMongoAppointmentRepo() *MongoAppointmentRepo {
	return &MongoAppointmentRepo{coll: database.Collection("appointments")}
}
