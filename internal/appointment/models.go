package appointment

import (
	"time"

	"github.com/CareVault-Health/records-service/internal/pagination"
)

// Status values for appointments. The lifecycle is conceptually
// scheduled -> completed | cancelled, but overwrites are accepted at any
// time: any of the three values may be written in an update. This mirrors
// the documented permissive policy rather than a strict state machine.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// DefaultDurationMinutes is used when a create request omits the duration
const DefaultDurationMinutes = 30

// CreateAppointmentRequest represents the request to schedule an appointment
type CreateAppointmentRequest struct {
	PatientID       int64      `json:"patient_id"`
	DoctorName      string     `json:"doctor_name"`
	AppointmentDate *time.Time `json:"appointment_date"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Status          string     `json:"status,omitempty"`
	Reason          string     `json:"reason,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

// UpdateAppointmentRequest represents a partial update; nil fields are left unchanged
type UpdateAppointmentRequest struct {
	DoctorName      *string    `json:"doctor_name,omitempty"`
	AppointmentDate *time.Time `json:"appointment_date,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Status          *string    `json:"status,omitempty"`
	Reason          *string    `json:"reason,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

// AppointmentResponse represents the appointment data returned to clients
type AppointmentResponse struct {
	ID              int64     `json:"id"`
	PatientID       int64     `json:"patient_id"`
	DoctorName      string    `json:"doctor_name"`
	AppointmentDate time.Time `json:"appointment_date"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Reason          string    `json:"reason,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ListFilter narrows appointment listings; zero values mean no filtering
type ListFilter struct {
	PatientID int64
	Status    string
}

// PaginatedAppointmentListResponse is the envelope for paginated appointment listings
type PaginatedAppointmentListResponse struct {
	Success      bool                  `json:"success"`
	Appointments []AppointmentResponse `json:"appointments"`
	Pagination   pagination.Meta       `json:"pagination"`
}
