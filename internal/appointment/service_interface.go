package appointment

import (
	"context"

	"github.com/CareVault-Health/records-service/internal/pagination"
)

// ServiceInterface defines the contract for appointment business logic operations
type ServiceInterface interface {
	CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error)
	GetAppointment(ctx context.Context, id int64) (*AppointmentResponse, error)
	ListAppointments(ctx context.Context, params pagination.Params, filter ListFilter) (*PaginatedAppointmentListResponse, error)
	UpdateAppointment(ctx context.Context, id int64, req UpdateAppointmentRequest) (*AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id int64) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
