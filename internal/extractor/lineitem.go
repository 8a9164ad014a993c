package extractor

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Per-field confidence for line item assignments.
const (
	codeConfidence        = 0.8
	quantityConfidence    = 0.9
	unitCostConfidence    = 0.8
	descriptionConfidence = 0.7
)

var quantityMax = decimal.NewFromInt(10000)

// ParseLine tokenizes a candidate item line and assigns tokens to item
// sub-fields. It returns nil when the line has fewer than three tokens or
// when neither an item code nor a description could be assigned. Each token
// is consumed by at most one sub-field.
func (e *Extractor) ParseLine(line string) *LineItem {
	tokens := strings.Fields(line)
	if len(tokens) < 3 {
		return nil
	}

	item := &LineItem{Confidence: make(map[string]float64)}
	used := make([]bool, len(tokens))
	codePatterns := e.registry.Patterns(FieldItemCode)

	// Item code: first token shaped like a code.
	for i, tok := range tokens {
		if len(codePatterns) > 0 && codePatterns[0].MatchString(tok) {
			code := tok
			item.Code = &code
			item.Confidence[ItemFieldCode] = codeConfidence
			used[i] = true
			break
		}
	}

	// Quantity: first unconsumed token parseable as a decimal strictly
	// between 0 and 10000.
	for i, tok := range tokens {
		if used[i] {
			continue
		}
		d, err := decimal.NewFromString(tok)
		if err != nil || !d.IsPositive() || !d.LessThan(quantityMax) {
			continue
		}
		item.Quantity = &d
		item.Confidence[ItemFieldQuantity] = quantityConfidence
		used[i] = true
		break
	}

	// Unit cost: first unconsumed token yielding a monetary value.
	for i, tok := range tokens {
		if used[i] {
			continue
		}
		v, ok := e.registry.MoneyValue(tok)
		if !ok {
			continue
		}
		item.UnitCost = &v
		item.Confidence[ItemFieldUnitCost] = unitCostConfidence
		used[i] = true
		break
	}

	// Description: the unconsumed non-numeric tokens, joined in document
	// order, provided the longest of them exceeds 3 characters.
	var descTokens []string
	longest := 0
	for i, tok := range tokens {
		if used[i] {
			continue
		}
		if _, err := decimal.NewFromString(tok); err == nil {
			continue
		}
		descTokens = append(descTokens, tok)
		if len(tok) > longest {
			longest = len(tok)
		}
	}
	if longest > 3 {
		desc := strings.Join(descTokens, " ")
		item.Description = &desc
		item.Confidence[ItemFieldDescription] = descriptionConfidence
	}

	if item.Code == nil && item.Description == nil {
		return nil
	}
	return item
}
