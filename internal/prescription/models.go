package prescription

import (
	"time"

	"github.com/CareVault-Health/records-service/internal/pagination"
)

// CreatePrescriptionRequest represents the request to issue a prescription.
// The issued date is assigned by the server and the expiry date is derived
// from it; neither is accepted from the client.
type CreatePrescriptionRequest struct {
	PatientID         int64  `json:"patient_id"`
	MedicationName    string `json:"medication_name"`
	Dosage            string `json:"dosage"`
	Frequency         string `json:"frequency"`
	DurationDays      int    `json:"duration_days"`
	PrescribingDoctor string `json:"prescribing_doctor"`
	Instructions      string `json:"instructions,omitempty"`
	RefillsRemaining  *int   `json:"refills_remaining,omitempty"`
}

// PrescriptionResponse represents the prescription data returned to clients.
// Prescriptions are immutable once issued, so there is no update request type.
type PrescriptionResponse struct {
	ID                int64     `json:"id"`
	PatientID         int64     `json:"patient_id"`
	MedicationName    string    `json:"medication_name"`
	Dosage            string    `json:"dosage"`
	Frequency         string    `json:"frequency"`
	DurationDays      int       `json:"duration_days"`
	PrescribingDoctor string    `json:"prescribing_doctor"`
	Instructions      string    `json:"instructions,omitempty"`
	IssuedDate        time.Time `json:"issued_date"`
	ExpiryDate        time.Time `json:"expiry_date"`
	RefillsRemaining  int       `json:"refills_remaining"`
	CreatedAt         time.Time `json:"created_at"`
}

// ListFilter narrows prescription listings; a zero PatientID means no filtering
type ListFilter struct {
	PatientID int64
}

// PaginatedPrescriptionListResponse is the envelope for paginated prescription listings
type PaginatedPrescriptionListResponse struct {
	Success       bool                   `json:"success"`
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	Pagination    pagination.Meta        `json:"pagination"`
}
