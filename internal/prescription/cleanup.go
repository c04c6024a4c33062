package prescription

import (
	"context"
	"fmt"
	"log"
	"time"
)

// RetentionPeriod defines how long expired prescriptions are retained (1 year)
const RetentionPeriod = 365 * 24 * time.Hour

// CleanupService handles permanent deletion of long-expired prescriptions
type CleanupService struct {
	repo RepositoryInterface
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(repo RepositoryInterface) *CleanupService {
	return &CleanupService{repo: repo}
}

// CleanupExpiredPrescriptions permanently deletes prescriptions whose expiry
// date is older than the retention period
func (s *CleanupService) CleanupExpiredPrescriptions(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-RetentionPeriod)
	log.Printf("Starting cleanup of prescriptions expired before %s", cutoff.Format(time.RFC3339))

	deleted, err := s.repo.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup failed: %w", err)
	}

	if deleted == 0 {
		log.Println("No expired prescriptions found for cleanup")
		return 0, nil
	}

	log.Printf("Successfully cleaned up %d expired prescriptions", deleted)
	return deleted, nil
}
