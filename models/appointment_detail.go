package models

// DoctorSummary carries the doctor fields populated on appointment reads.
type DoctorSummary struct {
	ID              string  `json:"id"`
	Specialization  string  `json:"specialization"`
	ConsultationFee float64 `json:"consultationFee"`
}

// UserSummary carries the user fields populated on appointment reads.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AppointmentDetail is an appointment with its doctor and user references
// resolved for read responses.
type AppointmentDetail struct {
	Appointment
	Doctor *DoctorSummary `json:"doctor,omitempty"`
	User   *UserSummary   `json:"user,omitempty"`
}
