package appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CareVault-Health/records-service/internal/pagination"
	"github.com/gorilla/mux"
)

// mockService implements ServiceInterface for testing
type mockService struct {
	createAppointmentFunc func(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error)
	getAppointmentFunc    func(ctx context.Context, id int64) (*AppointmentResponse, error)
	listAppointmentsFunc  func(ctx context.Context, params pagination.Params, filter ListFilter) (*PaginatedAppointmentListResponse, error)
	updateAppointmentFunc func(ctx context.Context, id int64, req UpdateAppointmentRequest) (*AppointmentResponse, error)
	deleteAppointmentFunc func(ctx context.Context, id int64) error
}

func (m *mockService) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error) {
	if m.createAppointmentFunc != nil {
		return m.createAppointmentFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) GetAppointment(ctx context.Context, id int64) (*AppointmentResponse, error) {
	if m.getAppointmentFunc != nil {
		return m.getAppointmentFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) ListAppointments(ctx context.Context, params pagination.Params, filter ListFilter) (*PaginatedAppointmentListResponse, error) {
	if m.listAppointmentsFunc != nil {
		return m.listAppointmentsFunc(ctx, params, filter)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) UpdateAppointment(ctx context.Context, id int64, req UpdateAppointmentRequest) (*AppointmentResponse, error) {
	if m.updateAppointmentFunc != nil {
		return m.updateAppointmentFunc(ctx, id, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) DeleteAppointment(ctx context.Context, id int64) error {
	if m.deleteAppointmentFunc != nil {
		return m.deleteAppointmentFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func newTestRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/appointments", h.CreateAppointment).Methods("POST")
	router.HandleFunc("/api/appointments", h.ListAppointments).Methods("GET")
	router.HandleFunc("/api/appointments/{id}", h.GetAppointment).Methods("GET")
	router.HandleFunc("/api/appointments/{id}", h.UpdateAppointment).Methods("PUT")
	router.HandleFunc("/api/appointments/{id}", h.DeleteAppointment).Methods("DELETE")
	return router
}

func TestCreateAppointmentHandler_Success(t *testing.T) {
	mock := &mockService{
		createAppointmentFunc: func(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error) {
			return &AppointmentResponse{
				ID:              1,
				PatientID:       req.PatientID,
				DoctorName:      req.DoctorName,
				AppointmentDate: *req.AppointmentDate,
				DurationMinutes: DefaultDurationMinutes,
				Status:          StatusScheduled,
			}, nil
		},
	}
	router := newTestRouter(NewHandler(mock))

	body, _ := json.Marshal(map[string]interface{}{
		"patient_id":       1,
		"doctor_name":      "Dr. House",
		"appointment_date": time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
	})
	req := httptest.NewRequest("POST", "/api/appointments", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp SuccessResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success || resp.Appointment == nil || resp.Appointment.ID != 1 {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

func TestCreateAppointmentHandler_InvalidJSON(t *testing.T) {
	router := newTestRouter(NewHandler(&mockService{}))

	req := httptest.NewRequest("POST", "/api/appointments", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateAppointmentHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"missing doctor name", ErrMissingDoctorName, http.StatusBadRequest},
		{"invalid duration", ErrInvalidDuration, http.StatusBadRequest},
		{"invalid status", ErrInvalidStatus, http.StatusBadRequest},
		{"unknown patient", ErrPatientNotFound, http.StatusNotFound},
		{"storage failure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockService{
				createAppointmentFunc: func(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error) {
					return nil, tt.serviceErr
				},
			}
			router := newTestRouter(NewHandler(mock))

			req := httptest.NewRequest("POST", "/api/appointments", bytes.NewReader([]byte("{}")))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestGetAppointmentHandler_BadID(t *testing.T) {
	router := newTestRouter(NewHandler(&mockService{}))

	req := httptest.NewRequest("GET", "/api/appointments/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestListAppointmentsHandler_Filters(t *testing.T) {
	var gotParams pagination.Params
	var gotFilter ListFilter
	mock := &mockService{
		listAppointmentsFunc: func(ctx context.Context, params pagination.Params, filter ListFilter) (*PaginatedAppointmentListResponse, error) {
			gotParams = params
			gotFilter = filter
			return &PaginatedAppointmentListResponse{
				Success:      true,
				Appointments: []AppointmentResponse{},
				Pagination:   params.CalculateMeta(0),
			}, nil
		},
	}
	router := newTestRouter(NewHandler(mock))

	req := httptest.NewRequest("GET", "/api/appointments?page=2&page_size=10&patient_id=7&status=scheduled", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if gotParams.Page != 2 || gotParams.PageSize != 10 {
		t.Errorf("Expected page=2 page_size=10, got %+v", gotParams)
	}
	if gotFilter.PatientID != 7 || gotFilter.Status != StatusScheduled {
		t.Errorf("Expected patient_id=7 status=scheduled, got %+v", gotFilter)
	}
}

func TestListAppointmentsHandler_BadPatientID(t *testing.T) {
	router := newTestRouter(NewHandler(&mockService{}))

	req := httptest.NewRequest("GET", "/api/appointments?patient_id=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestUpdateAppointmentHandler_PartialBody(t *testing.T) {
	var gotReq UpdateAppointmentRequest
	mock := &mockService{
		updateAppointmentFunc: func(ctx context.Context, id int64, req UpdateAppointmentRequest) (*AppointmentResponse, error) {
			gotReq = req
			return &AppointmentResponse{ID: id, Status: StatusCompleted}, nil
		},
	}
	router := newTestRouter(NewHandler(mock))

	req := httptest.NewRequest("PUT", "/api/appointments/5", bytes.NewReader([]byte(`{"status":"completed"}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotReq.Status == nil || *gotReq.Status != StatusCompleted {
		t.Errorf("Expected status field set, got %+v", gotReq)
	}
	if gotReq.DoctorName != nil || gotReq.Notes != nil {
		t.Errorf("Expected omitted fields to stay nil, got %+v", gotReq)
	}
}

func TestDeleteAppointmentHandler(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"success", nil, http.StatusNoContent},
		{"not found", ErrAppointmentNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockService{
				deleteAppointmentFunc: func(ctx context.Context, id int64) error {
					return tt.serviceErr
				},
			}
			router := newTestRouter(NewHandler(mock))

			req := httptest.NewRequest("DELETE", "/api/appointments/5", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}
