package quote

import (
	"context"

	"mediapack/internal/models"
)

// QuoteService defines the interface for package quoting operations
// External packages should use this interface, not the concrete implementations
type QuoteService interface {
	GetPublication(ctx context.Context, publicationID string) (*models.Publication, error)
	QuotePackage(ctx context.Context, req *models.QuoteRequest) (*models.PackageQuote, error)
	QuoteScenarios(ctx context.Context, scenarios []models.QuoteRequest) (*models.BatchQuoteResponse, error)
}
