package extractor

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Scan windows and acceptance thresholds. These mirror the behavior of the
// extraction heuristics the service was built around; changing them changes
// observable extraction results, so they are deliberately not configurable.
const (
	headerScanLines     = 20
	totalsScanLines     = 10
	supplierThreshold   = 0.6
	itemHeaderThreshold = 0.7
	totalsThreshold     = 0.7
	dateConfidence      = 0.9
)

// itemHeaderKeywords are the column labels whose presence marks an item-table
// header line. The header score is matches divided by len(itemHeaderKeywords).
var itemHeaderKeywords = []string{"description", "qty", "price", "amount", "item", "product"}

// totalsStopKeywords end the item section when found in a line.
var totalsStopKeywords = []string{"total", "subtotal", "grand total", "amount due"}

// totalsFields are checked independently per line during the totals pass, in
// this order.
var totalsFields = []string{FieldInvoiceTotal, FieldInvoiceTotalIncGST, FieldDiscountTotal, FieldTaxGST}

// Extractor pulls structured invoice fields out of raw document text using
// the pattern registry. It holds no per-invocation state; a single Extractor
// is safe for concurrent use.
type Extractor struct {
	registry *Registry
}

// New creates an Extractor backed by the given registry.
func New(registry *Registry) *Extractor {
	return &Extractor{registry: registry}
}

// Extract runs the header, line-item, and totals passes over text and returns
// the populated invoice. It never fails: fields without a match stay unset,
// and empty input yields an invoice with no fields and no items.
func (e *Extractor) Extract(text string) *ExtractedInvoice {
	inv, _ := e.ExtractWithAudit(text)
	return inv
}

// ExtractWithAudit is Extract plus a flat list of per-field extraction events
// (field, raw line, confidence, line number, pattern label) for audit logging.
func (e *Extractor) ExtractWithAudit(text string) (*ExtractedInvoice, []ExtractedField) {
	lines := splitLines(text)
	inv := &ExtractedInvoice{
		Items:      []LineItem{},
		Confidence: make(map[string]float64),
	}
	var audit []ExtractedField
	audit = e.headerPass(lines, inv, audit)
	audit = e.itemPass(lines, inv, audit)
	audit = e.totalsPass(lines, inv, audit)
	return inv, audit
}

// headerPass scans at most the first headerScanLines lines for the supplier
// label and an invoice date. First match wins per field; a set field is never
// overwritten.
func (e *Extractor) headerPass(lines []string, inv *ExtractedInvoice, audit []ExtractedField) []ExtractedField {
	limit := len(lines)
	if limit > headerScanLines {
		limit = headerScanLines
	}
	for i := 0; i < limit; i++ {
		line := lines[i]
		if inv.Supplier == nil {
			score, syn := FindBestMatch(line, e.registry.Synonyms(FieldSupplier))
			if score > supplierThreshold {
				if v := stripLabel(line, syn); v != "" {
					inv.Supplier = &v
					inv.Confidence[FieldSupplier] = score
					audit = append(audit, ExtractedField{
						Field: FieldSupplier, RawText: line, Confidence: score, Line: i + 1, Pattern: syn,
					})
				}
			}
		}
		if inv.InvoiceDate == nil {
			if t, label, ok := e.registry.DateValue(line); ok {
				inv.InvoiceDate = &t
				inv.Confidence[FieldInvoiceDate] = dateConfidence
				audit = append(audit, ExtractedField{
					Field: FieldInvoiceDate, RawText: line, Confidence: dateConfidence, Line: i + 1, Pattern: label,
				})
			}
		}
		if inv.Supplier != nil && inv.InvoiceDate != nil {
			break
		}
	}
	return audit
}

// itemPass locates the item-table header, then feeds every following line to
// the line-item parser until a totals keyword ends the section. Lines that
// fail to parse are skipped; parsed items keep document order.
func (e *Extractor) itemPass(lines []string, inv *ExtractedInvoice, audit []ExtractedField) []ExtractedField {
	inSection := false
	for i, line := range lines {
		if !inSection {
			if itemHeaderScore(line) > itemHeaderThreshold {
				inSection = true
			}
			continue
		}
		if containsAnyFold(line, totalsStopKeywords) {
			break
		}
		item := e.ParseLine(line)
		if item == nil {
			continue
		}
		inv.Items = append(inv.Items, *item)
		audit = append(audit, ExtractedField{
			Field:      "items",
			RawText:    line,
			Confidence: maxConfidence(item.Confidence),
			Line:       i + 1,
			Pattern:    "line_item",
		})
	}
	return audit
}

// totalsPass scans the last totalsScanLines lines for the four totals fields.
// Each field is matched independently, so one line may populate several
// fields from the same extracted monetary value.
func (e *Extractor) totalsPass(lines []string, inv *ExtractedInvoice, audit []ExtractedField) []ExtractedField {
	start := len(lines) - totalsScanLines
	if start < 0 {
		start = 0
	}
	for i := start; i < len(lines); i++ {
		line := lines[i]
		for _, field := range totalsFields {
			if totalSet(inv, field) {
				continue
			}
			score, syn := FindBestMatch(line, e.registry.Synonyms(field))
			if score <= totalsThreshold {
				continue
			}
			v, ok := e.registry.MoneyValue(line)
			if !ok {
				continue
			}
			setTotal(inv, field, v)
			inv.Confidence[field] = score
			audit = append(audit, ExtractedField{
				Field: field, RawText: line, Confidence: score, Line: i + 1, Pattern: syn,
			})
		}
	}
	return audit
}

// itemHeaderScore is the fraction of item-table keywords found in the line.
func itemHeaderScore(line string) float64 {
	lower := strings.ToLower(line)
	found := 0
	for _, kw := range itemHeaderKeywords {
		if strings.Contains(lower, kw) {
			found++
		}
	}
	return float64(found) / float64(len(itemHeaderKeywords))
}

func containsAnyFold(line string, keywords []string) bool {
	lower := strings.ToLower(line)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// stripLabel removes the matched synonym text and surrounding separator
// characters from the line, leaving the field value. When the synonym matched
// only fuzzily and is not a literal substring, the whole line is trimmed of
// separators instead.
func stripLabel(line, synonym string) string {
	const cutset = " \t:-"
	idx := strings.Index(strings.ToLower(line), strings.ToLower(synonym))
	if idx < 0 {
		return strings.Trim(line, cutset)
	}
	return strings.Trim(line[:idx]+line[idx+len(synonym):], cutset)
}

func totalSet(inv *ExtractedInvoice, field string) bool {
	switch field {
	case FieldInvoiceTotal:
		return inv.InvoiceTotal != nil
	case FieldInvoiceTotalIncGST:
		return inv.InvoiceTotalIncGST != nil
	case FieldDiscountTotal:
		return inv.DiscountTotal != nil
	case FieldTaxGST:
		return inv.TaxGST != nil
	}
	return true
}

func setTotal(inv *ExtractedInvoice, field string, v decimal.Decimal) {
	switch field {
	case FieldInvoiceTotal:
		inv.InvoiceTotal = &v
	case FieldInvoiceTotalIncGST:
		inv.InvoiceTotalIncGST = &v
	case FieldDiscountTotal:
		inv.DiscountTotal = &v
	case FieldTaxGST:
		inv.TaxGST = &v
	}
}

func maxConfidence(m map[string]float64) float64 {
	var max float64
	for _, v := range m {
		if v > max {
			max = v
		}
	}
	return max
}

// splitLines returns the non-empty trimmed lines of text.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
