package appointment

import "errors"

var (
	ErrMissingPatientID       = errors.New("patient_id is required")
	ErrMissingDoctorName      = errors.New("doctor name is required")
	ErrMissingAppointmentDate = errors.New("appointment date is required")
	ErrInvalidDuration        = errors.New("duration_minutes must be positive")
	ErrInvalidStatus          = errors.New("invalid appointment status")
	ErrPatientNotFound        = errors.New("patient not found")
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrNoFieldsToUpdate       = errors.New("no fields to update")
)
