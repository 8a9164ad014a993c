package catalog

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"invex/internal/domain"
	"invex/internal/extractor"
	"invex/internal/port"
)

// FeedbackInput is the DTO for recording a reviewer decision on a match.
type FeedbackInput struct {
	DocumentID     *uuid.UUID
	RawDescription string
	ProductID      *uuid.UUID
	Accepted       bool
}

// Service matches invoice descriptions against the product catalog and
// records reviewer feedback. The matcher is built lazily from the repository
// and rebuilt after feedback that grows the description set.
type Service struct {
	repo port.ProductRepository

	mu      sync.RWMutex
	matcher *Matcher
}

// NewService creates a catalog service backed by the given repository.
func NewService(repo port.ProductRepository) *Service {
	return &Service{repo: repo}
}

// Refresh reloads products and alternative descriptions and rebuilds the
// matcher.
func (s *Service) Refresh(ctx context.Context) error {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active products: %w", err)
	}
	descriptions, err := s.repo.ListDescriptions(ctx)
	if err != nil {
		return fmt.Errorf("list product descriptions: %w", err)
	}

	m := NewMatcher(products, descriptions)
	s.mu.Lock()
	s.matcher = m
	s.mu.Unlock()
	log.Printf("catalogService.Refresh: loaded %d products, %d descriptions", len(products), len(descriptions))
	return nil
}

// Match scores a raw line-item description against the catalog.
func (s *Service) Match(ctx context.Context, rawDescription string) (Match, error) {
	m, err := s.currentMatcher(ctx)
	if err != nil {
		return Match{}, err
	}
	return m.Match(rawDescription), nil
}

// RecordFeedback persists the reviewer decision. An accepted match with a
// product adds the cleaned description as a feedback-sourced alternative, so
// the same wording matches directly next time.
func (s *Service) RecordFeedback(ctx context.Context, in FeedbackInput) error {
	cleaned := extractor.CleanDescription(in.RawDescription)
	if cleaned == "" {
		return domain.ErrEmptyText
	}
	if in.ProductID != nil {
		if _, err := s.repo.GetByID(ctx, *in.ProductID); err != nil {
			return err
		}
	}

	fb := &domain.MatchFeedback{
		ID:                 uuid.New(),
		DocumentID:         in.DocumentID,
		RawDescription:     in.RawDescription,
		CleanedDescription: cleaned,
		ProductID:          in.ProductID,
		Accepted:           in.Accepted,
	}
	if err := s.repo.CreateFeedback(ctx, fb); err != nil {
		return fmt.Errorf("create match feedback: %w", err)
	}

	if !in.Accepted || in.ProductID == nil {
		return nil
	}
	desc := &domain.ProductDescription{
		ID:          uuid.New(),
		ProductID:   *in.ProductID,
		Description: cleaned,
		Source:      domain.DescriptionSourceFeedback,
	}
	if err := s.repo.AddDescription(ctx, desc); err != nil {
		return fmt.Errorf("add product description: %w", err)
	}
	if err := s.Refresh(ctx); err != nil {
		log.Printf("catalogService.RecordFeedback: matcher refresh failed: %v", err)
	}
	return nil
}

func (s *Service) currentMatcher(ctx context.Context) (*Matcher, error) {
	s.mu.RLock()
	m := s.matcher
	s.mu.RUnlock()
	if m != nil {
		return m, nil
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matcher, nil
}
