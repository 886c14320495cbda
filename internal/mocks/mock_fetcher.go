package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockFetcher is a mock implementation of catalog.Fetcher
type MockFetcher struct {
	mock.Mock
}

// Fetch mocks the Fetch method of catalog.Fetcher
func (m *MockFetcher) Fetch(ctx context.Context, publicationID string) ([]byte, error) {
	args := m.Called(ctx, publicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
