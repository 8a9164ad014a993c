package catalog

import (
	"github.com/google/uuid"

	"invex/internal/domain"
	"invex/internal/extractor"
)

// Match confidence cutoffs. At or above accept the product is assigned
// directly; between review and accept a human should confirm; below review the
// description is treated as unmatched.
const (
	acceptThreshold = 0.9
	reviewThreshold = 0.7
)

// Match is the outcome of scoring one line-item description against the
// product catalog.
type Match struct {
	Status  domain.MatchStatus `json:"status"`
	Product *domain.Product    `json:"product,omitempty"`
	Score   float64            `json:"score"`
	Cleaned string             `json:"cleaned"`
}

type candidate struct {
	text      string
	productID uuid.UUID
}

// Matcher scores cleaned invoice descriptions against catalog product names
// and their known alternative descriptions. It is immutable after
// construction; rebuild it to pick up catalog changes.
type Matcher struct {
	products   map[uuid.UUID]domain.Product
	candidates []candidate
	texts      []string
}

// NewMatcher builds a matcher over the given products and alternative
// descriptions. Candidate order is product names first, then alternative
// descriptions, both in input order; the first candidate wins score ties.
func NewMatcher(products []domain.Product, descriptions []domain.ProductDescription) *Matcher {
	m := &Matcher{products: make(map[uuid.UUID]domain.Product, len(products))}
	for _, p := range products {
		m.products[p.ID] = p
		m.addCandidate(extractor.CleanDescription(p.Name), p.ID)
	}
	for _, d := range descriptions {
		if _, ok := m.products[d.ProductID]; !ok {
			continue
		}
		m.addCandidate(extractor.CleanDescription(d.Description), d.ProductID)
	}
	return m
}

func (m *Matcher) addCandidate(text string, productID uuid.UUID) {
	if text == "" {
		return
	}
	m.candidates = append(m.candidates, candidate{text: text, productID: productID})
	m.texts = append(m.texts, text)
}

// Match cleans the raw description and returns the best-scoring catalog
// product with a status derived from the score thresholds. An empty or
// unmatchable description yields a no-match result with score 0.
func (m *Matcher) Match(rawDescription string) Match {
	cleaned := extractor.CleanDescription(rawDescription)
	result := Match{Status: domain.MatchStatusNoMatch, Cleaned: cleaned}
	if cleaned == "" || len(m.candidates) == 0 {
		return result
	}

	score, text := extractor.FindBestMatch(cleaned, m.texts)
	result.Score = score
	if score < reviewThreshold {
		return result
	}

	for _, c := range m.candidates {
		if c.text != text {
			continue
		}
		p := m.products[c.productID]
		result.Product = &p
		break
	}
	if result.Product == nil {
		return result
	}

	if score >= acceptThreshold {
		result.Status = domain.MatchStatusAccepted
	} else {
		result.Status = domain.MatchStatusNeedsReview
	}
	return result
}
