package appointment

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

func (s *Service) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error) {
	if req.PatientID == 0 {
		return nil, ErrMissingPatientID
	}
	if req.DoctorName == "" {
		return nil, ErrMissingDoctorName
	}
	if req.AppointmentDate == nil {
		return nil, ErrMissingAppointmentDate
	}
	if req.DurationMinutes != nil && *req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if req.Status != "" && !validate.AppointmentStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	appt, err := s.repo.CreateAppointment(ctx, req)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, messaging.EventAppointmentCreated, messaging.AppointmentEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentCreated),
		Data: messaging.AppointmentEventData{
			AppointmentID:   appt.ID,
			PatientID:       appt.PatientID,
			DoctorName:      appt.DoctorName,
			AppointmentDate: appt.AppointmentDate,
			NewStatus:       appt.Status,
		},
	})

	return appt, nil
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*AppointmentResponse, error) {
	return s.repo.GetAppointment(ctx, id)
}

// ListAppointments retrieves one page, optionally filtered by patient
// and status
func (s *Service) ListAppointments(ctx context.Context, params pagination.Params, filter ListFilter) (*PaginatedAppointmentListResponse, error) {
	if filter.Status != "" && !validate.AppointmentStatus(filter.Status) {
		return nil, ErrInvalidStatus
	}

	params.Normalize()

	appointments, total, err := s.repo.ListAppointments(ctx, params.PageSize, params.Offset(), filter)
	if err != nil {
		return nil, err
	}

	return &PaginatedAppointmentListResponse{
		Success:      true,
		Appointments: appointments,
		Pagination:   params.CalculateMeta(total),
	}, nil
}

// UpdateAppointment applies a partial update. Status overwrites are
// deliberately permissive: any of the enumerated values is accepted at
// any time, including reverting a terminal status.
func (s *Service) UpdateAppointment(ctx context.Context, id int64, req UpdateAppointmentRequest) (*AppointmentResponse, error) {
	if req.DurationMinutes != nil && *req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if req.Status != nil && !validate.AppointmentStatus(*req.Status) {
		return nil, ErrInvalidStatus
	}

	// Capture the previous status so the status_changed event can carry both
	var oldStatus string
	if req.Status != nil {
		current, err := s.repo.GetAppointment(ctx, id)
		if err != nil {
			return nil, err
		}
		oldStatus = current.Status
	}

	appt, err := s.repo.UpdateAppointment(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, messaging.EventAppointmentUpdated, messaging.AppointmentEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentUpdated),
		Data: messaging.AppointmentEventData{
			AppointmentID: appt.ID,
			PatientID:     appt.PatientID,
		},
	})

	if req.Status != nil && oldStatus != appt.Status {
		s.publish(ctx, messaging.EventAppointmentStatusChanged, messaging.AppointmentEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentStatusChanged),
			Data: messaging.AppointmentEventData{
				AppointmentID: appt.ID,
				PatientID:     appt.PatientID,
				OldStatus:     oldStatus,
				NewStatus:     appt.Status,
			},
		})
	}

	return appt, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id int64) error {
	if err := s.repo.DeleteAppointment(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, messaging.EventAppointmentDeleted, messaging.AppointmentEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentDeleted),
		Data:      messaging.AppointmentEventData{AppointmentID: id},
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
