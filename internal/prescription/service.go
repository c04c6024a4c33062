package prescription

import (
	"context"
	"log"
	"time"

	"github.com/CareVault-Health/records-service/internal/messaging"
	"github.com/CareVault-Health/records-service/internal/pagination"
)

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
	now       func() time.Time
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{repo: repo, publisher: publisher, now: time.Now}
}

// IssuePrescription validates and stores a new prescription. The issued date
// is the current server time and the expiry date is the issued date plus the
// treatment duration in days.
func (s *Service) IssuePrescription(ctx context.Context, req CreatePrescriptionRequest) (*PrescriptionResponse, error) {
	if req.PatientID == 0 {
		return nil, ErrMissingPatientID
	}
	if req.MedicationName == "" {
		return nil, ErrMissingMedicationName
	}
	if req.Dosage == "" {
		return nil, ErrMissingDosage
	}
	if req.Frequency == "" {
		return nil, ErrMissingFrequency
	}
	if req.PrescribingDoctor == "" {
		return nil, ErrMissingDoctor
	}
	if req.DurationDays <= 0 {
		return nil, ErrInvalidDuration
	}
	if req.RefillsRemaining != nil && *req.RefillsRemaining < 0 {
		return nil, ErrInvalidRefills
	}

	issuedDate := s.now().UTC()
	expiryDate := issuedDate.AddDate(0, 0, req.DurationDays)

	prescription, err := s.repo.CreatePrescription(ctx, req, issuedDate, expiryDate)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, messaging.EventPrescriptionIssued, messaging.PrescriptionEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPrescriptionIssued),
		Data: messaging.PrescriptionEventData{
			PrescriptionID: prescription.ID,
			PatientID:      prescription.PatientID,
			MedicationName: prescription.MedicationName,
			IssuedDate:     prescription.IssuedDate,
			ExpiryDate:     prescription.ExpiryDate,
		},
	})

	return prescription, nil
}

func (s *Service) GetPrescription(ctx context.Context, id int64) (*PrescriptionResponse, error) {
	return s.repo.GetPrescription(ctx, id)
}

// ListPrescriptions retrieves one page, optionally filtered by patient
func (s *Service) ListPrescriptions(ctx context.Context, params pagination.Params, filter ListFilter) (*PaginatedPrescriptionListResponse, error) {
	params.Normalize()

	prescriptions, total, err := s.repo.ListPrescriptions(ctx, params.PageSize, params.Offset(), filter)
	if err != nil {
		return nil, err
	}

	return &PaginatedPrescriptionListResponse{
		Success:       true,
		Prescriptions: prescriptions,
		Pagination:    params.CalculateMeta(total),
	}, nil
}

func (s *Service) DeletePrescription(ctx context.Context, id int64) error {
	if err := s.repo.DeletePrescription(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, messaging.EventPrescriptionDeleted, messaging.PrescriptionEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPrescriptionDeleted),
		Data:      messaging.PrescriptionEventData{PrescriptionID: id},
	})

	return nil
}

func (s *Service) publish(ctx context.Context, routingKey string, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		log.Printf("Failed to publish %s event: %v", routingKey, err)
	}
}
