package models

// User is the patient identity owned by the external identity service.
// Only the fields needed to populate appointment reads are modeled here.
type User struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}
