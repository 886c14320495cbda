package catalog

import (
	"context"

	"mediapack/internal/models"
)

// Fetcher retrieves raw publication snapshots from the inventory store.
// External packages should use this interface, not the concrete implementations
type Fetcher interface {
	Fetch(ctx context.Context, publicationID string) ([]byte, error)
}

// Parser turns a raw snapshot document into a typed publication.
// External packages should use this interface, not the concrete implementations
type Parser interface {
	ParseSnapshot(data []byte) (*models.Publication, error)
}
