package patient

import (
	"time"

	"github.com/CareVault-Health/records-service/internal/pagination"
)

// CreatePatientRequest represents the request to create a new patient
type CreatePatientRequest struct {
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Address        string     `json:"address,omitempty"`
	MedicalHistory string     `json:"medical_history,omitempty"`
	BloodType      string     `json:"blood_type,omitempty"`
}

// UpdatePatientRequest represents a partial update; nil fields are left unchanged
type UpdatePatientRequest struct {
	FirstName      *string    `json:"first_name,omitempty"`
	LastName       *string    `json:"last_name,omitempty"`
	Email          *string    `json:"email,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	Address        *string    `json:"address,omitempty"`
	MedicalHistory *string    `json:"medical_history,omitempty"`
	BloodType      *string    `json:"blood_type,omitempty"`
}

// PatientResponse represents the patient data returned to clients
type PatientResponse struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	Address        string    `json:"address,omitempty"`
	MedicalHistory string    `json:"medical_history,omitempty"`
	BloodType      string    `json:"blood_type,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PaginatedPatientListResponse is the envelope for paginated patient listings
type PaginatedPatientListResponse struct {
	Success    bool              `json:"success"`
	Patients   []PatientResponse `json:"patients"`
	Pagination pagination.Meta   `json:"pagination"`
}
