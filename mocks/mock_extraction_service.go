package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invex/internal/domain"
	"invex/internal/service"
)

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) Submit(ctx context.Context, input service.SubmitExtractionInput) (*domain.InvoiceDocument, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceDocument), args.Error(1)
}

func (m *MockExtractionService) ExtractDocument(ctx context.Context, doc *domain.InvoiceDocument, maxRetries int) {
	m.Called(ctx, doc, maxRetries)
}

func (m *MockExtractionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.InvoiceDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceDocument), args.Error(1)
}

func (m *MockExtractionService) List(ctx context.Context, offset, limit int) ([]domain.InvoiceDocument, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.InvoiceDocument), args.Int(1), args.Error(2)
}

func (m *MockExtractionService) ListEvents(ctx context.Context, id uuid.UUID) ([]domain.ExtractionEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExtractionEvent), args.Error(1)
}

func (m *MockExtractionService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
