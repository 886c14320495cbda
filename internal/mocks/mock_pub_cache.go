package mocks

import (
	"context"
	"time"

	"mediapack/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockPubCache is a mock implementation of pubCache.Service
type MockPubCache struct {
	mock.Mock
}

// Get mocks the Get method of pubCache.Service
func (m *MockPubCache) Get(ctx context.Context, publicationID string) (*models.Publication, error) {
	args := m.Called(ctx, publicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Publication), args.Error(1)
}

// Set mocks the Set method of pubCache.Service
func (m *MockPubCache) Set(ctx context.Context, publicationID string, pub *models.Publication, ttl time.Duration) error {
	args := m.Called(ctx, publicationID, pub, ttl)
	return args.Error(0)
}

// Delete mocks the Delete method of pubCache.Service
func (m *MockPubCache) Delete(ctx context.Context, publicationID string) error {
	args := m.Called(ctx, publicationID)
	return args.Error(0)
}
