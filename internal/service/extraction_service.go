package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"invex/internal/domain"
	"invex/internal/extractor"
	"invex/internal/port"
)

const defaultMaxExtractAttempts = 3

// SubmitExtractionInput is the DTO for submitting invoice text for
// extraction. Text is used when set; otherwise SourceKey names a stored
// text object to fetch (SourceBucket falls back to the service bucket).
type SubmitExtractionInput struct {
	SourceName   string
	Text         string
	SourceBucket string
	SourceKey    string
	// Async queues the document for the background worker instead of
	// extracting inline.
	Async bool
}

// ExtractionService defines the invoice extraction workflow contract.
type ExtractionService interface {
	Submit(ctx context.Context, input SubmitExtractionInput) (*domain.InvoiceDocument, error)
	// ExtractDocument runs the extractor over a claimed document and persists
	// the outcome. maxRetries bounds how often persistence failures requeue
	// the document.
	ExtractDocument(ctx context.Context, doc *domain.InvoiceDocument, maxRetries int)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InvoiceDocument, error)
	List(ctx context.Context, offset, limit int) ([]domain.InvoiceDocument, int, error)
	ListEvents(ctx context.Context, id uuid.UUID) ([]domain.ExtractionEvent, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type extractionService struct {
	docRepo      port.InvoiceDocumentRepository
	eventRepo    port.ExtractionEventRepository
	storage      port.ObjectStorage
	ext          *extractor.Extractor
	bucket       string
	resultPrefix string
	maxTextBytes int64
}

// NewExtractionService creates a new ExtractionService implementation.
// storage may be nil, in which case result JSON upload is skipped.
func NewExtractionService(
	docRepo port.InvoiceDocumentRepository,
	eventRepo port.ExtractionEventRepository,
	storage port.ObjectStorage,
	ext *extractor.Extractor,
	bucket, resultPrefix string,
	maxTextBytes int64,
) ExtractionService {
	return &extractionService{
		docRepo:      docRepo,
		eventRepo:    eventRepo,
		storage:      storage,
		ext:          ext,
		bucket:       bucket,
		resultPrefix: resultPrefix,
		maxTextBytes: maxTextBytes,
	}
}

func (s *extractionService) Submit(ctx context.Context, input SubmitExtractionInput) (*domain.InvoiceDocument, error) {
	if strings.TrimSpace(input.Text) == "" && input.SourceKey != "" {
		text, err := s.fetchSourceText(ctx, input.SourceBucket, input.SourceKey)
		if err != nil {
			return nil, err
		}
		input.Text = text
		if input.SourceName == "" {
			input.SourceName = path.Base(input.SourceKey)
		}
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, domain.ErrEmptyText
	}
	if s.maxTextBytes > 0 && int64(len(input.Text)) > s.maxTextBytes {
		return nil, domain.ErrTextTooLarge
	}

	sourceName := input.SourceName
	if sourceName == "" {
		sourceName = "inline"
	}

	// Synchronous submissions start in processing so the queue worker never
	// claims them.
	status := domain.ExtractionStatusQueued
	if !input.Async {
		status = domain.ExtractionStatusProcessing
	}

	doc := &domain.InvoiceDocument{
		ID:               uuid.New(),
		SourceName:       sourceName,
		Format:           extractor.DetectFormat(sourceName),
		RawText:          input.Text,
		ExtractionStatus: status,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("extraction.Submit: %w", err)
	}
	log.Printf("extractionService.Submit: created document %s (source=%s, format=%s, async=%t)",
		doc.ID, doc.SourceName, doc.Format, input.Async)

	if input.Async {
		return doc, nil
	}

	doc.ExtractAttempts++
	s.ExtractDocument(ctx, doc, defaultMaxExtractAttempts)
	return doc, nil
}

// fetchSourceText reads a submitted text object from storage, bounded by the
// same size limit as inline text.
func (s *extractionService) fetchSourceText(ctx context.Context, bucket, key string) (string, error) {
	if s.storage == nil {
		return "", domain.ErrDownloadFailed
	}
	if bucket == "" {
		bucket = s.bucket
	}
	body, err := s.storage.Download(ctx, bucket, key)
	if err != nil {
		log.Printf("extractionService.fetchSourceText: download failed for %s/%s: %v", bucket, key, err)
		return "", domain.ErrDownloadFailed
	}
	defer body.Close()

	r := io.Reader(body)
	if s.maxTextBytes > 0 {
		r = io.LimitReader(body, s.maxTextBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		log.Printf("extractionService.fetchSourceText: read failed for %s/%s: %v", bucket, key, err)
		return "", domain.ErrDownloadFailed
	}
	if s.maxTextBytes > 0 && int64(len(data)) > s.maxTextBytes {
		return "", domain.ErrTextTooLarge
	}
	return string(data), nil
}

// ExtractDocument runs the three extraction passes, persists the structured
// result plus per-field audit events, and uploads the result JSON to object
// storage. The extractor itself never fails; only persistence errors can
// requeue or fail the document.
func (s *extractionService) ExtractDocument(ctx context.Context, doc *domain.InvoiceDocument, maxRetries int) {
	inv, audit := s.ext.ExtractWithAudit(doc.RawText)

	structured, err := json.Marshal(inv)
	if err != nil {
		s.handleExtractError(ctx, doc, maxRetries, fmt.Errorf("marshal result: %w", err))
		return
	}
	confidence, err := json.Marshal(inv.Confidence)
	if err != nil {
		s.handleExtractError(ctx, doc, maxRetries, fmt.Errorf("marshal confidence: %w", err))
		return
	}

	now := time.Now().UTC()
	doc.StructuredData = structured
	doc.ConfidenceScores = confidence
	doc.ExtractionStatus = domain.ExtractionStatusCompleted
	doc.ExtractionError = ""
	doc.ExtractedAt = &now

	s.uploadResult(ctx, doc, structured)

	if err := s.docRepo.UpdateExtractionResult(ctx, doc); err != nil {
		s.handleExtractError(ctx, doc, maxRetries, fmt.Errorf("save result: %w", err))
		return
	}
	log.Printf("extractionService.ExtractDocument: document %s extracted (%d fields, %d items)",
		doc.ID, len(inv.Confidence), len(inv.Items))

	s.saveEvents(ctx, doc.ID, audit)
}

// uploadResult writes the result JSON next to the source objects. Upload
// failure is logged but never fails extraction.
func (s *extractionService) uploadResult(ctx context.Context, doc *domain.InvoiceDocument, structured []byte) {
	if s.storage == nil || s.bucket == "" {
		return
	}
	key := fmt.Sprintf("%s/%s.json", s.resultPrefix, doc.ID)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(structured),
		ContentType: "application/json",
		Size:        int64(len(structured)),
	})
	if err != nil {
		log.Printf("extractionService.uploadResult: upload failed for %s: %v", doc.ID, err)
		return
	}
	doc.ResultBucket = s.bucket
	doc.ResultKey = key
}

// saveEvents records the audit trail. Failures are logged but never block the
// extraction outcome.
func (s *extractionService) saveEvents(ctx context.Context, docID uuid.UUID, audit []extractor.ExtractedField) {
	if len(audit) == 0 {
		return
	}
	events := make([]domain.ExtractionEvent, 0, len(audit))
	for _, f := range audit {
		events = append(events, domain.ExtractionEvent{
			ID:         uuid.New(),
			DocumentID: docID,
			Field:      f.Field,
			RawText:    f.RawText,
			Confidence: f.Confidence,
			LineNumber: f.Line,
			Pattern:    f.Pattern,
		})
	}
	if err := s.eventRepo.CreateBatch(ctx, events); err != nil {
		log.Printf("extractionService.saveEvents: failed to write %d events for %s: %v", len(events), docID, err)
	}
}

func (s *extractionService) handleExtractError(ctx context.Context, doc *domain.InvoiceDocument, maxRetries int, cause error) {
	doc.StructuredData = nil
	doc.ConfidenceScores = nil
	doc.ExtractedAt = nil
	doc.ExtractionError = cause.Error()

	if doc.ExtractAttempts < maxRetries {
		doc.ExtractionStatus = domain.ExtractionStatusQueued
		log.Printf("extractionService.handleExtractError: document %s requeued (attempt %d/%d): %v",
			doc.ID, doc.ExtractAttempts, maxRetries, cause)
	} else {
		doc.ExtractionStatus = domain.ExtractionStatusFailed
		log.Printf("extractionService.handleExtractError: document %s failed after %d attempts: %v",
			doc.ID, doc.ExtractAttempts, cause)
	}

	if err := s.docRepo.UpdateExtractionResult(ctx, doc); err != nil {
		log.Printf("extractionService.handleExtractError: failed to persist status for %s: %v", doc.ID, err)
	}
}

func (s *extractionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.InvoiceDocument, error) {
	return s.docRepo.GetByID(ctx, id)
}

func (s *extractionService) List(ctx context.Context, offset, limit int) ([]domain.InvoiceDocument, int, error) {
	return s.docRepo.List(ctx, offset, limit)
}

func (s *extractionService) ListEvents(ctx context.Context, id uuid.UUID) ([]domain.ExtractionEvent, error) {
	if _, err := s.docRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.eventRepo.ListByDocument(ctx, id)
}

func (s *extractionService) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.eventRepo.DeleteByDocument(ctx, id); err != nil {
		return fmt.Errorf("extraction.Delete: %w", err)
	}
	if err := s.docRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("extraction.Delete: %w", err)
	}
	if s.storage != nil && doc.ResultBucket != "" && doc.ResultKey != "" {
		if err := s.storage.Delete(ctx, doc.ResultBucket, doc.ResultKey); err != nil {
			log.Printf("extractionService.Delete: failed to delete result object %s/%s: %v",
				doc.ResultBucket, doc.ResultKey, err)
		}
	}
	return nil
}
