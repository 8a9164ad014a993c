package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// InvoiceDocument represents one submitted invoice text and its extraction
// lifecycle. StructuredData and ConfidenceScores hold the serialized
// extraction result once the document reaches the completed status.
type InvoiceDocument struct {
	ID               uuid.UUID        `db:"id" json:"id"`
	SourceName       string           `db:"source_name" json:"source_name"`
	Format           string           `db:"format" json:"format"`
	RawText          string           `db:"raw_text" json:"-"`
	StructuredData   json.RawMessage  `db:"structured_data" json:"structured_data"`
	ConfidenceScores json.RawMessage  `db:"confidence_scores" json:"confidence_scores"`
	ExtractionStatus ExtractionStatus `db:"extraction_status" json:"extraction_status"`
	ExtractionError  string           `db:"extraction_error" json:"extraction_error"`
	ExtractAttempts  int              `db:"extract_attempts" json:"extract_attempts"`
	ExtractedAt      *time.Time       `db:"extracted_at" json:"extracted_at"`
	ResultBucket     string           `db:"result_bucket" json:"result_bucket"`
	ResultKey        string           `db:"result_key" json:"result_key"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// ExtractionEvent records a single field assignment made while extracting a
// document: which field, the raw line it came from, the confidence and the
// pattern or synonym that matched. Kept for the audit trail.
type ExtractionEvent struct {
	ID         uuid.UUID `db:"id" json:"id"`
	DocumentID uuid.UUID `db:"document_id" json:"document_id"`
	Field      string    `db:"field" json:"field"`
	RawText    string    `db:"raw_text" json:"raw_text"`
	Confidence float64   `db:"confidence" json:"confidence"`
	LineNumber int       `db:"line_number" json:"line_number"`
	Pattern    string    `db:"pattern" json:"pattern"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Product is a catalog entry that extracted line-item descriptions are
// matched against.
type Product struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	Unit      string    `db:"unit" json:"unit"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ProductDescription is an alternative wording for a product as it appears on
// supplier invoices. Stored normalized (see extractor.CleanDescription).
type ProductDescription struct {
	ID          uuid.UUID         `db:"id" json:"id"`
	ProductID   uuid.UUID         `db:"product_id" json:"product_id"`
	Description string            `db:"description" json:"description"`
	Source      DescriptionSource `db:"source" json:"source"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
}

// MatchFeedback records a reviewer decision on a catalog match, used to grow
// the alternative-description set over time.
type MatchFeedback struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	DocumentID         *uuid.UUID `db:"document_id" json:"document_id"`
	RawDescription     string     `db:"raw_description" json:"raw_description"`
	CleanedDescription string     `db:"cleaned_description" json:"cleaned_description"`
	ProductID          *uuid.UUID `db:"product_id" json:"product_id"`
	Accepted           bool       `db:"accepted" json:"accepted"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
}
