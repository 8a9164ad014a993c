package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invex/internal/domain"
)

// MockInvoiceDocumentRepo is a mock implementation of
// port.InvoiceDocumentRepository.
type MockInvoiceDocumentRepo struct {
	mock.Mock
}

func (m *MockInvoiceDocumentRepo) Create(ctx context.Context, doc *domain.InvoiceDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockInvoiceDocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.InvoiceDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceDocument), args.Error(1)
}

func (m *MockInvoiceDocumentRepo) List(ctx context.Context, offset, limit int) ([]domain.InvoiceDocument, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.InvoiceDocument), args.Int(1), args.Error(2)
}

func (m *MockInvoiceDocumentRepo) ListByStatus(ctx context.Context, status domain.ExtractionStatus, offset, limit int) ([]domain.InvoiceDocument, int, error) {
	args := m.Called(ctx, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.InvoiceDocument), args.Int(1), args.Error(2)
}

func (m *MockInvoiceDocumentRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.InvoiceDocument, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceDocument), args.Error(1)
}

func (m *MockInvoiceDocumentRepo) UpdateExtractionResult(ctx context.Context, doc *domain.InvoiceDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockInvoiceDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
