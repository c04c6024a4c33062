package prescription

import (
	"context"
	"time"
)

// RepositoryInterface defines the contract for prescription data access
type RepositoryInterface interface {
	CreatePrescription(ctx context.Context, req CreatePrescriptionRequest, issuedDate, expiryDate time.Time) (*PrescriptionResponse, error)
	GetPrescription(ctx context.Context, id int64) (*PrescriptionResponse, error)
	ListPrescriptions(ctx context.Context, limit, offset int, filter ListFilter) ([]PrescriptionResponse, int, error)
	DeletePrescription(ctx context.Context, id int64) error
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

var _ RepositoryInterface = (*Repository)(nil)
