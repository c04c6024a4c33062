package appointment

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/CareVault-Health/records-service/internal/pagination"
	"github.com/gorilla/mux"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success     bool                 `json:"success"`
	Message     string               `json:"message,omitempty"`
	Appointment *AppointmentResponse `json:"appointment,omitempty"`
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	appt, err := h.service.CreateAppointment(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, SuccessResponse{
		Success:     true,
		Message:     "Appointment created successfully",
		Appointment: appt,
	})
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	appt, err := h.service.GetAppointment(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{
		Success:     true,
		Appointment: appt,
	})
}

func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r)

	var filter ListFilter
	if s := r.URL.Query().Get("patient_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "validation_error", "patient_id must be an integer")
			return
		}
		filter.PatientID = id
	}
	filter.Status = r.URL.Query().Get("status")

	resp, err := h.service.ListAppointments(r.Context(), params, filter)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	appt, err := h.service.UpdateAppointment(r.Context(), id, req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{
		Success:     true,
		Message:     "Appointment updated successfully",
		Appointment: appt,
	})
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteAppointment(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingPatientID),
		errors.Is(err, ErrMissingDoctorName),
		errors.Is(err, ErrMissingAppointmentDate),
		errors.Is(err, ErrInvalidDuration),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrNoFieldsToUpdate):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, ErrPatientNotFound),
		errors.Is(err, ErrAppointmentNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		log.Printf("Appointment request failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "Appointment ID must be an integer")
		return 0, false
	}
	return id, true
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: code, Message: message})
}
