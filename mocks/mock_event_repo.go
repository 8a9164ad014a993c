package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invex/internal/domain"
)

// MockExtractionEventRepo is a mock implementation of
// port.ExtractionEventRepository.
type MockExtractionEventRepo struct {
	mock.Mock
}

func (m *MockExtractionEventRepo) CreateBatch(ctx context.Context, events []domain.ExtractionEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockExtractionEventRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.ExtractionEvent, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExtractionEvent), args.Error(1)
}

func (m *MockExtractionEventRepo) DeleteByDocument(ctx context.Context, documentID uuid.UUID) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}
