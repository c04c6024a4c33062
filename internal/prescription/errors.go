package prescription

import "errors"

var (
	ErrMissingPatientID      = errors.New("patient_id is required")
	ErrMissingMedicationName = errors.New("medication name is required")
	ErrMissingDosage         = errors.New("dosage is required")
	ErrMissingFrequency      = errors.New("frequency is required")
	ErrMissingDoctor         = errors.New("prescribing doctor is required")
	ErrInvalidDuration       = errors.New("duration must be a positive number of days")
	ErrInvalidRefills        = errors.New("refills must not be negative")
	ErrPatientNotFound       = errors.New("patient not found")
	ErrPrescriptionNotFound  = errors.New("prescription not found")
)
