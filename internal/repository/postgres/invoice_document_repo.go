package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invex/internal/domain"
	"invex/internal/port"
)

type invoiceDocumentRepo struct {
	db *sqlx.DB
}

// NewInvoiceDocumentRepo creates a new PostgreSQL-backed InvoiceDocumentRepository.
func NewInvoiceDocumentRepo(db *sqlx.DB) port.InvoiceDocumentRepository {
	return &invoiceDocumentRepo{db: db}
}

func (r *invoiceDocumentRepo) Create(ctx context.Context, doc *domain.InvoiceDocument) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `INSERT INTO invoice_documents (
		id, source_name, format, raw_text,
		structured_data, confidence_scores,
		extraction_status, extraction_error, extract_attempts, extracted_at,
		result_bucket, result_key,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4,
		$5, $6,
		$7, $8, $9, $10,
		$11, $12,
		$13, $14
	)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.SourceName, doc.Format, doc.RawText,
		doc.StructuredData, doc.ConfidenceScores,
		doc.ExtractionStatus, doc.ExtractionError, doc.ExtractAttempts, doc.ExtractedAt,
		doc.ResultBucket, doc.ResultKey,
		doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceDocumentRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceDocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.InvoiceDocument, error) {
	var doc domain.InvoiceDocument
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM invoice_documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("invoiceDocumentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *invoiceDocumentRepo) List(ctx context.Context, offset, limit int) ([]domain.InvoiceDocument, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoice_documents")
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceDocumentRepo.List count: %w", err)
	}

	var docs []domain.InvoiceDocument
	err = r.db.SelectContext(ctx, &docs,
		`SELECT * FROM invoice_documents
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceDocumentRepo.List: %w", err)
	}
	return docs, total, nil
}

func (r *invoiceDocumentRepo) ListByStatus(ctx context.Context, status domain.ExtractionStatus, offset, limit int) ([]domain.InvoiceDocument, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM invoice_documents WHERE extraction_status = $1", status)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceDocumentRepo.ListByStatus count: %w", err)
	}

	var docs []domain.InvoiceDocument
	err = r.db.SelectContext(ctx, &docs,
		`SELECT * FROM invoice_documents WHERE extraction_status = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceDocumentRepo.ListByStatus: %w", err)
	}
	return docs, total, nil
}

func (r *invoiceDocumentRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.InvoiceDocument, error) {
	if limit <= 0 {
		return nil, nil
	}

	// Atomically flips queued documents to processing so concurrent workers
	// never claim the same document twice.
	query := `UPDATE invoice_documents SET
		extraction_status = 'processing', updated_at = $1
	 WHERE id IN (
		SELECT id FROM invoice_documents
		WHERE extraction_status = 'queued'
		ORDER BY created_at
		LIMIT $2
		FOR UPDATE SKIP LOCKED
	 )
	 RETURNING *`

	var docs []domain.InvoiceDocument
	err := r.db.SelectContext(ctx, &docs, query, time.Now().UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("invoiceDocumentRepo.ClaimQueued: %w", err)
	}
	return docs, nil
}

func (r *invoiceDocumentRepo) UpdateExtractionResult(ctx context.Context, doc *domain.InvoiceDocument) error {
	doc.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoice_documents SET
			structured_data = $1, confidence_scores = $2,
			extraction_status = $3, extraction_error = $4,
			extract_attempts = $5, extracted_at = $6,
			result_bucket = $7, result_key = $8, updated_at = $9
		 WHERE id = $10`,
		doc.StructuredData, doc.ConfidenceScores,
		doc.ExtractionStatus, doc.ExtractionError,
		doc.ExtractAttempts, doc.ExtractedAt,
		doc.ResultBucket, doc.ResultKey, doc.UpdatedAt,
		doc.ID)
	if err != nil {
		return fmt.Errorf("invoiceDocumentRepo.UpdateExtractionResult: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *invoiceDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM invoice_documents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("invoiceDocumentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
