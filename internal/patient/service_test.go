package patient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/CareVault-Health/records-service/internal/pagination"
	"github.com/CareVault-Health/records-service/internal/testutil"
)

// mockRepository implements RepositoryInterface for testing
type mockRepository struct {
	createPatientFunc func(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error)
	getPatientFunc    func(ctx context.Context, id int64) (*PatientResponse, error)
	listPatientsFunc  func(ctx context.Context, limit, offset int) ([]PatientResponse, int, error)
	updatePatientFunc func(ctx context.Context, id int64, req UpdatePatientRequest) (*PatientResponse, error)
	deletePatientFunc func(ctx context.Context, id int64) error
}

func (m *mockRepository) CreatePatient(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error) {
	if m.createPatientFunc != nil {
		return m.createPatientFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) GetPatient(ctx context.Context, id int64) (*PatientResponse, error) {
	if m.getPatientFunc != nil {
		return m.getPatientFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ListPatients(ctx context.Context, limit, offset int) ([]PatientResponse, int, error) {
	if m.listPatientsFunc != nil {
		return m.listPatientsFunc(ctx, limit, offset)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockRepository) UpdatePatient(ctx context.Context, id int64, req UpdatePatientRequest) (*PatientResponse, error) {
	if m.updatePatientFunc != nil {
		return m.updatePatientFunc(ctx, id, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) DeletePatient(ctx context.Context, id int64) error {
	if m.deletePatientFunc != nil {
		return m.deletePatientFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func validCreateRequest() CreatePatientRequest {
	dob := time.Date(1980, 1, 15, 0, 0, 0, 0, time.UTC)
	return CreatePatientRequest{
		FirstName:   "John",
		LastName:    "Doe",
		Email:       "john.doe@example.com",
		Phone:       "+31612345678",
		DateOfBirth: &dob,
		BloodType:   "O+",
	}
}

func TestCreatePatient_Success(t *testing.T) {
	mockRepo := &mockRepository{
		createPatientFunc: func(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error) {
			return &PatientResponse{
				ID:          42,
				FirstName:   req.FirstName,
				LastName:    req.LastName,
				Email:       req.Email,
				Phone:       req.Phone,
				DateOfBirth: *req.DateOfBirth,
				BloodType:   req.BloodType,
				CreatedAt:   time.Now(),
				UpdatedAt:   time.Now(),
			}, nil
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, publisher)

	patient, err := service.CreatePatient(context.Background(), validCreateRequest())

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if patient.ID != 42 {
		t.Errorf("Expected ID 42, got %d", patient.ID)
	}
	publisher.AssertEventCount(t, "patient.created", 1)
}

func TestCreatePatient_ValidationErrors(t *testing.T) {
	service := NewService(&mockRepository{}, nil)

	tests := []struct {
		name    string
		mutate  func(*CreatePatientRequest)
		wantErr error
	}{
		{"missing first name", func(r *CreatePatientRequest) { r.FirstName = "" }, ErrMissingFirstName},
		{"missing last name", func(r *CreatePatientRequest) { r.LastName = "" }, ErrMissingLastName},
		{"missing email", func(r *CreatePatientRequest) { r.Email = "" }, ErrMissingEmail},
		{"invalid email", func(r *CreatePatientRequest) { r.Email = "not-an-email" }, ErrInvalidEmail},
		{"missing phone", func(r *CreatePatientRequest) { r.Phone = "" }, ErrMissingPhone},
		{"missing date of birth", func(r *CreatePatientRequest) { r.DateOfBirth = nil }, ErrMissingDateOfBirth},
		{"invalid blood type", func(r *CreatePatientRequest) { r.BloodType = "Z+" }, ErrInvalidBloodType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)

			_, err := service.CreatePatient(context.Background(), req)

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreatePatient_DuplicateEmail(t *testing.T) {
	mockRepo := &mockRepository{
		createPatientFunc: func(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error) {
			return nil, ErrEmailTaken
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, publisher)

	_, err := service.CreatePatient(context.Background(), validCreateRequest())

	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
	publisher.AssertEventNotPublished(t, "patient.created")
}

func TestListPatients_NormalizesParams(t *testing.T) {
	var gotLimit, gotOffset int
	mockRepo := &mockRepository{
		listPatientsFunc: func(ctx context.Context, limit, offset int) ([]PatientResponse, int, error) {
			gotLimit, gotOffset = limit, offset
			return []PatientResponse{}, 0, nil
		},
	}
	service := NewService(mockRepo, nil)

	resp, err := service.ListPatients(context.Background(), pagination.Params{Page: -1, PageSize: 9999})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gotLimit != pagination.DefaultPageSize {
		t.Errorf("Expected limit %d, got %d", pagination.DefaultPageSize, gotLimit)
	}
	if gotOffset != 0 {
		t.Errorf("Expected offset 0, got %d", gotOffset)
	}
	if len(resp.Patients) != 0 {
		t.Errorf("Expected empty slice for out-of-range page, got %d entries", len(resp.Patients))
	}
}

func TestListPatients_Meta(t *testing.T) {
	mockRepo := &mockRepository{
		listPatientsFunc: func(ctx context.Context, limit, offset int) ([]PatientResponse, int, error) {
			page := make([]PatientResponse, 5)
			return page, 25, nil
		},
	}
	service := NewService(mockRepo, nil)

	resp, err := service.ListPatients(context.Background(), pagination.Params{Page: 3, PageSize: 10})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.Pagination.TotalRecords != 25 {
		t.Errorf("Expected 25 total records, got %d", resp.Pagination.TotalRecords)
	}
	if resp.Pagination.TotalPages != 3 {
		t.Errorf("Expected 3 total pages, got %d", resp.Pagination.TotalPages)
	}
	if resp.Pagination.HasNext {
		t.Error("Expected no next page on the last page")
	}
}

func TestUpdatePatient_InvalidEmail(t *testing.T) {
	service := NewService(&mockRepository{}, nil)

	bad := "still-not-an-email"
	_, err := service.UpdatePatient(context.Background(), 1, UpdatePatientRequest{Email: &bad})

	if !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("Expected ErrInvalidEmail, got %v", err)
	}
}

func TestUpdatePatient_NotFound(t *testing.T) {
	mockRepo := &mockRepository{
		updatePatientFunc: func(ctx context.Context, id int64, req UpdatePatientRequest) (*PatientResponse, error) {
			return nil, ErrPatientNotFound
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, publisher)

	phone := "+31687654321"
	_, err := service.UpdatePatient(context.Background(), 999, UpdatePatientRequest{Phone: &phone})

	if !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("Expected ErrPatientNotFound, got %v", err)
	}
	publisher.AssertEventNotPublished(t, "patient.updated")
}

func TestDeletePatient_PublishesEvent(t *testing.T) {
	mockRepo := &mockRepository{
		deletePatientFunc: func(ctx context.Context, id int64) error {
			return nil
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, publisher)

	if err := service.DeletePatient(context.Background(), 7); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	publisher.AssertEventCount(t, "patient.deleted", 1)
}

func TestDeletePatient_NotFound(t *testing.T) {
	mockRepo := &mockRepository{
		deletePatientFunc: func(ctx context.Context, id int64) error {
			return ErrPatientNotFound
		},
	}
	service := NewService(mockRepo, nil)

	err := service.DeletePatient(context.Background(), 999)

	if !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("Expected ErrPatientNotFound, got %v", err)
	}
}
