package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invex/internal/domain"
	"invex/internal/port"
)

type extractionEventRepo struct {
	db *sqlx.DB
}

// NewExtractionEventRepo creates a new PostgreSQL-backed ExtractionEventRepository.
func NewExtractionEventRepo(db *sqlx.DB) port.ExtractionEventRepository {
	return &extractionEventRepo{db: db}
}

func (r *extractionEventRepo) CreateBatch(ctx context.Context, events []domain.ExtractionEvent) error {
	if len(events) == 0 {
		return nil
	}
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO extraction_events (id, document_id, field, raw_text, confidence, line_number, pattern, created_at)
		 VALUES (:id, :document_id, :field, :raw_text, :confidence, :line_number, :pattern, :created_at)`,
		events)
	if err != nil {
		return fmt.Errorf("extractionEventRepo.CreateBatch: %w", err)
	}
	return nil
}

func (r *extractionEventRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.ExtractionEvent, error) {
	var events []domain.ExtractionEvent
	err := r.db.SelectContext(ctx, &events,
		`SELECT * FROM extraction_events
		 WHERE document_id = $1
		 ORDER BY line_number, created_at`,
		documentID)
	if err != nil {
		return nil, fmt.Errorf("extractionEventRepo.ListByDocument: %w", err)
	}
	return events, nil
}

func (r *extractionEventRepo) DeleteByDocument(ctx context.Context, documentID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM extraction_events WHERE document_id = $1", documentID)
	if err != nil {
		return fmt.Errorf("extractionEventRepo.DeleteByDocument: %w", err)
	}
	return nil
}
