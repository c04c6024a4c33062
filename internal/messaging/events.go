package messaging

import (
	"time"

	"github.com/google/uuid"
)

// Event routing keys as constants
const (
	// Patient events
	EventPatientCreated = "patient.created"
	EventPatientUpdated = "patient.updated"
	EventPatientDeleted = "patient.deleted"

	// Appointment events
	EventAppointmentCreated       = "appointment.created"
	EventAppointmentUpdated       = "appointment.updated"
	EventAppointmentStatusChanged = "appointment.status_changed"
	EventAppointmentDeleted       = "appointment.deleted"

	// Prescription events
	EventPrescriptionIssued  = "prescription.issued"
	EventPrescriptionDeleted = "prescription.deleted"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// PatientEvent carries patient lifecycle notifications
type PatientEvent struct {
	BaseEvent
	Data PatientEventData `json:"data"`
}

type PatientEventData struct {
	PatientID int64  `json:"patient_id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
}

// AppointmentEvent carries appointment lifecycle notifications
type AppointmentEvent struct {
	BaseEvent
	Data AppointmentEventData `json:"data"`
}

type AppointmentEventData struct {
	AppointmentID   int64     `json:"appointment_id"`
	PatientID       int64     `json:"patient_id"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	AppointmentDate time.Time `json:"appointment_date,omitempty"`
	OldStatus       string    `json:"old_status,omitempty"`
	NewStatus       string    `json:"new_status,omitempty"`
}

// PrescriptionEvent carries prescription lifecycle notifications
type PrescriptionEvent struct {
	BaseEvent
	Data PrescriptionEventData `json:"data"`
}

type PrescriptionEventData struct {
	PrescriptionID int64     `json:"prescription_id"`
	PatientID      int64     `json:"patient_id"`
	MedicationName string    `json:"medication_name,omitempty"`
	IssuedDate     time.Time `json:"issued_date,omitempty"`
	ExpiryDate     time.Time `json:"expiry_date,omitempty"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		ServiceName: "records-service",
	}
}
