package mocks

import (
	"context"

	"mediapack/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockQuoteService is a mock implementation of quote.QuoteService
type MockQuoteService struct {
	mock.Mock
}

// GetPublication mocks the GetPublication method of quote.QuoteService
func (m *MockQuoteService) GetPublication(ctx context.Context, publicationID string) (*models.Publication, error) {
	args := m.Called(ctx, publicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Publication), args.Error(1)
}

// QuotePackage mocks the QuotePackage method of quote.QuoteService
func (m *MockQuoteService) QuotePackage(ctx context.Context, req *models.QuoteRequest) (*models.PackageQuote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PackageQuote), args.Error(1)
}

// QuoteScenarios mocks the QuoteScenarios method of quote.QuoteService
func (m *MockQuoteService) QuoteScenarios(ctx context.Context, scenarios []models.QuoteRequest) (*models.BatchQuoteResponse, error) {
	args := m.Called(ctx, scenarios)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BatchQuoteResponse), args.Error(1)
}
