package mocks

import (
	"mediapack/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockParser is a mock implementation of catalog.Parser
type MockParser struct {
	mock.Mock
}

// ParseSnapshot mocks the ParseSnapshot method of catalog.Parser
func (m *MockParser) ParseSnapshot(data []byte) (*models.Publication, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Publication), args.Error(1)
}
