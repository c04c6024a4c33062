package patient

import (
	"context"
	"log"

	"github.com/CareVault-Health/records-service/internal/messaging"
	"github.com/CareVault-Health/records-service/internal/pagination"
	"github.com/CareVault-Health/records-service/internal/validate"
)

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{repo: repo, publisher: publisher}
}

func (s *Service) CreatePatient(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	patient, err := s.repo.CreatePatient(ctx, req)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, messaging.EventPatientCreated, messaging.PatientEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPatientCreated),
		Data: messaging.PatientEventData{
			PatientID: patient.ID,
			FirstName: patient.FirstName,
			LastName:  patient.LastName,
			Email:     patient.Email,
		},
	})

	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*PatientResponse, error) {
	return s.repo.GetPatient(ctx, id)
}

// ListPatients retrieves one page of patients ordered by id
func (s *Service) ListPatients(ctx context.Context, params pagination.Params) (*PaginatedPatientListResponse, error) {
	params.Normalize()

	patients, total, err := s.repo.ListPatients(ctx, params.PageSize, params.Offset())
	if err != nil {
		return nil, err
	}

	return &PaginatedPatientListResponse{
		Success:    true,
		Patients:   patients,
		Pagination: params.CalculateMeta(total),
	}, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id int64, req UpdatePatientRequest) (*PatientResponse, error) {
	if err := validateUpdate(req); err != nil {
		return nil, err
	}

	patient, err := s.repo.UpdatePatient(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, messaging.EventPatientUpdated, messaging.PatientEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPatientUpdated),
		Data: messaging.PatientEventData{
			PatientID: patient.ID,
			Email:     patient.Email,
		},
	})

	return patient, nil
}

// DeletePatient removes the patient and, through the storage engine's
// cascade constraints, every appointment and prescription that belongs
// to it.
func (s *Service) DeletePatient(ctx context.Context, id int64) error {
	if err := s.repo.DeletePatient(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, messaging.EventPatientDeleted, messaging.PatientEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPatientDeleted),
		Data:      messaging.PatientEventData{PatientID: id},
	})

	return nil
}

func validateCreate(req CreatePatientRequest) error {
	if req.FirstName == "" {
		return ErrMissingFirstName
	}
	if req.LastName == "" {
		return ErrMissingLastName
	}
	if req.Email == "" {
		return ErrMissingEmail
	}
	if !validate.Email(req.Email) {
		return ErrInvalidEmail
	}
	if req.Phone == "" {
		return ErrMissingPhone
	}
	if req.DateOfBirth == nil {
		return ErrMissingDateOfBirth
	}
	if req.BloodType != "" && !validate.BloodType(req.BloodType) {
		return ErrInvalidBloodType
	}
	return nil
}

func validateUpdate(req UpdatePatientRequest) error {
	if req.Email != nil && !validate.Email(*req.Email) {
		return ErrInvalidEmail
	}
	if req.BloodType != nil && *req.BloodType != "" && !validate.BloodType(*req.BloodType) {
		return ErrInvalidBloodType
	}
	return nil
}

// publish sends an event and logs failures; a broker outage must not
// fail the request that already committed.
func (s *Service) publish(ctx context.Context, routingKey string, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		log.Printf("Failed to publish %s event: %v", routingKey, err)
	}
}
