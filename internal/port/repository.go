package port

import (
	"context"

	"github.com/google/uuid"

	"invex/internal/domain"
)

// InvoiceDocumentRepository defines the contract for invoice document
// persistence.
type InvoiceDocumentRepository interface {
	Create(ctx context.Context, doc *domain.InvoiceDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InvoiceDocument, error)
	List(ctx context.Context, offset, limit int) ([]domain.InvoiceDocument, int, error)
	ListByStatus(ctx context.Context, status domain.ExtractionStatus, offset, limit int) ([]domain.InvoiceDocument, int, error)
	// ClaimQueued atomically moves up to limit queued documents to the
	// processing status and returns them. Concurrent callers never receive
	// the same document.
	ClaimQueued(ctx context.Context, limit int) ([]domain.InvoiceDocument, error)
	UpdateExtractionResult(ctx context.Context, doc *domain.InvoiceDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExtractionEventRepository defines the contract for extraction audit event
// persistence.
type ExtractionEventRepository interface {
	CreateBatch(ctx context.Context, events []domain.ExtractionEvent) error
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.ExtractionEvent, error)
	DeleteByDocument(ctx context.Context, documentID uuid.UUID) error
}

// ProductRepository defines the contract for product catalog persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetByCode(ctx context.Context, code string) (*domain.Product, error)
	ListActive(ctx context.Context) ([]domain.Product, error)
	ListDescriptions(ctx context.Context) ([]domain.ProductDescription, error)
	AddDescription(ctx context.Context, desc *domain.ProductDescription) error
	CreateFeedback(ctx context.Context, feedback *domain.MatchFeedback) error
}
