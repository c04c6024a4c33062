package http

import (
	"database/sql"
	"net/http"

	"github.com/CareVault-Health/records-service/internal/appointment"
	"github.com/CareVault-Health/records-service/internal/messaging"
	"github.com/CareVault-Health/records-service/internal/patient"
	"github.com/CareVault-Health/records-service/internal/prescription"
	"github.com/CareVault-Health/records-service/internal/telemetry"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// SetupRouter initializes all routes for the application
func SetupRouter(db *sql.DB, publisher messaging.PublisherInterface, metrics *telemetry.Metrics) *mux.Router {
	// Initialize patient components
	patientRepo := patient.NewRepository(db)
	patientService := patient.NewService(patientRepo, publisher)
	patientHandler := patient.NewHandler(patientService)

	// Initialize appointment components
	appointmentRepo := appointment.NewRepository(db)
	appointmentService := appointment.NewService(appointmentRepo, publisher)
	appointmentHandler := appointment.NewHandler(appointmentService)

	// Initialize prescription components
	prescriptionRepo := prescription.NewRepository(db)
	prescriptionService := prescription.NewService(prescriptionRepo, publisher)
	prescriptionHandler := prescription.NewHandler(prescriptionService)

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("records-service"))
	if metrics != nil {
		r.Use(MetricsMiddleware(metrics))
	}

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","service":"records-service","version":"1.0.0"}`))
	}).Methods("GET")

	// Patient routes
	r.HandleFunc("/api/patients", patientHandler.CreatePatient).Methods("POST")
	r.HandleFunc("/api/patients", patientHandler.ListPatients).Methods("GET")
	r.HandleFunc("/api/patients/{id}", patientHandler.GetPatient).Methods("GET")
	r.HandleFunc("/api/patients/{id}", patientHandler.UpdatePatient).Methods("PUT")
	r.HandleFunc("/api/patients/{id}", patientHandler.DeletePatient).Methods("DELETE")

	// Appointment routes
	r.HandleFunc("/api/appointments", appointmentHandler.CreateAppointment).Methods("POST")
	r.HandleFunc("/api/appointments", appointmentHandler.ListAppointments).Methods("GET")
	r.HandleFunc("/api/appointments/{id}", appointmentHandler.GetAppointment).Methods("GET")
	r.HandleFunc("/api/appointments/{id}", appointmentHandler.UpdateAppointment).Methods("PUT")
	r.HandleFunc("/api/appointments/{id}", appointmentHandler.DeleteAppointment).Methods("DELETE")

	// Prescription routes (immutable once issued, so no PUT)
	r.HandleFunc("/api/prescriptions", prescriptionHandler.IssuePrescription).Methods("POST")
	r.HandleFunc("/api/prescriptions", prescriptionHandler.ListPrescriptions).Methods("GET")
	r.HandleFunc("/api/prescriptions/{id}", prescriptionHandler.GetPrescription).Methods("GET")
	r.HandleFunc("/api/prescriptions/{id}", prescriptionHandler.DeletePrescription).Methods("DELETE")

	return r
}
