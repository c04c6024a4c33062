package appointment

import "context"

// RepositoryInterface defines the contract for appointment data access
type RepositoryInterface interface {
	CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error)
	GetAppointment(ctx context.Context, id int64) (*AppointmentResponse, error)
	ListAppointments(ctx context.Context, limit, offset int, filter ListFilter) ([]AppointmentResponse, int, error)
	UpdateAppointment(ctx context.Context, id int64, req UpdateAppointmentRequest) (*AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id int64) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
