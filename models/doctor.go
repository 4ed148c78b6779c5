package models

import "time"

// AvailabilitySlot is a recurring weekly open window published on a doctor's
// profile. StartTime and EndTime are local times encoded as "HH:MM". The
// scheduling engine reads these as advisory business-hours data.
type AvailabilitySlot struct {
	Day       string `bson:"day" json:"day"` // Mon..Sun
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
}

// Doctor is the bookable practitioner profile. Profile management is owned
// by an external service; the scheduling engine only reads it.
type Doctor struct {
	ID              string             `bson:"id" json:"id"`
	UserID          string             `bson:"userId" json:"userId"`
	Name            string             `bson:"name" json:"name"`
	Specialization  string             `bson:"specialization" json:"specialization"`
	Qualification   string             `bson:"qualification,omitempty" json:"qualification,omitempty"`
	ExperienceYears int                `bson:"experienceYears,omitempty" json:"experienceYears,omitempty"`
	Bio             string             `bson:"bio,omitempty" json:"bio,omitempty"`
	ConsultationFee float64            `bson:"consultationFee" json:"consultationFee"`
	AvailableSlots  []AvailabilitySlot `bson:"availableSlots,omitempty" json:"availableSlots,omitempty"`
	Rating          float64            `bson:"rating" json:"rating"`
	Verified        bool               `bson:"verified" json:"verified"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
