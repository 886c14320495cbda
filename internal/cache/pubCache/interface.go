package pubCache

import (
	"context"
	"time"

	"mediapack/internal/models"
)

// Service defines the interface for synced-publication cache operations
type Service interface {
	Get(ctx context.Context, publicationID string) (*models.Publication, error)
	Set(ctx context.Context, publicationID string, pub *models.Publication, ttl time.Duration) error
	Delete(ctx context.Context, publicationID string) error
}
