package prescription

import (
	"context"

	"github.com/CareVault-Health/records-service/internal/pagination"
)

// ServiceInterface defines the contract for prescription business logic
type ServiceInterface interface {
	IssuePrescription(ctx context.Context, req CreatePrescriptionRequest) (*PrescriptionResponse, error)
	GetPrescription(ctx context.Context, id int64) (*PrescriptionResponse, error)
	ListPrescriptions(ctx context.Context, params pagination.Params, filter ListFilter) (*PaginatedPrescriptionListResponse, error)
	DeletePrescription(ctx context.Context, id int64) error
}

var _ ServiceInterface = (*Service)(nil)
