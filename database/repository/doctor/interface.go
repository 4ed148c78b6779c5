package doctorRepo

import (
	"context"
	"errors"

	"telecare/models"
)

// ErrNotFound is returned when no doctor matches the given id.
var ErrNotFound = errors.New("doctor not found")

// DoctorRepository exposes read access to doctor profiles. Profile writes
// are owned by the external doctor management service.
type DoctorRepository interface {
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
}
