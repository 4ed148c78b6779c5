package scheduling

import (
	"testing"

	"telecare/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from models.AppointmentStatus
		to   models.AppointmentStatus
		want bool
	}{
		{"scheduled to ongoing", models.StatusScheduled, models.StatusOngoing, true},
		{"scheduled to cancelled", models.StatusScheduled, models.StatusCancelled, true},
		{"scheduled to completed skips ongoing", models.StatusScheduled, models.StatusCompleted, false},
		{"ongoing to completed", models.StatusOngoing, models.StatusCompleted, true},
		{"ongoing to cancelled", models.StatusOngoing, models.StatusCancelled, true},
		{"ongoing back to scheduled", models.StatusOngoing, models.StatusScheduled, false},
		{"completed is terminal", models.StatusCompleted, models.StatusOngoing, false},
		{"completed cannot cancel", models.StatusCompleted, models.StatusCancelled, false},
		{"cancelled is terminal", models.StatusCancelled, models.StatusScheduled, false},
		{"cancelled cannot restart", models.StatusCancelled, models.StatusOngoing, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.from, tc.to))
		})
	}
}

func TestTransitionRejectsInvalidMove(t *testing.T) {
	appt := &models.Appointment{Status: models.StatusCompleted}
	err := Transition(appt, models.StatusOngoing)

	var ite *InvalidTransitionError
	assert.ErrorAs(t, err, &ite)
	assert.Equal(t, models.StatusCompleted, appt.Status, "status must be untouched on rejection")
}

func TestTransitionAppliesValidMove(t *testing.T) {
	appt := &models.Appointment{Status: models.StatusOngoing}
	err := Transition(appt, models.StatusCompleted)

	assert.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, appt.Status)
}

func TestTerminal(t *testing.T) {
	assert.False(t, models.StatusScheduled.Terminal())
	assert.False(t, models.StatusOngoing.Terminal())
	assert.True(t, models.StatusCompleted.Terminal())
	assert.True(t, models.StatusCancelled.Terminal())
}
