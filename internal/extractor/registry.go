package extractor

import "regexp"

// Pattern name for structurally matched values that are not tied to a single
// invoice field (monetary amounts appear in totals lines and item lines alike).
const (
	FieldMoney    = "money"
	FieldItemCode = "item_code"
)

// datePattern pairs a structural regexp with the time layouts used to parse
// its matches.
type datePattern struct {
	re      *regexp.Regexp
	layouts []string
	label   string
}

// Registry maps logical field names to label synonyms (for fuzzy matching) and
// compiled regular expressions (for structural matching). It is immutable
// after construction; concurrent readers need no synchronization.
type Registry struct {
	synonyms map[string][]string
	patterns map[string][]*regexp.Regexp
	dates    []datePattern
}

// NewRegistry builds the default pattern registry. The synonym and regex sets
// are fixed: English labels, AU/US-style dates, $/£/€ amounts.
func NewRegistry() *Registry {
	moneyPatterns := []*regexp.Regexp{
		// currency-symbol-prefixed amount, optionally thousands-separated
		regexp.MustCompile(`[$£€]\s*\d{1,3}(?:,\d{3})*(?:\.\d+)?`),
		// plain decimal amount
		regexp.MustCompile(`\b\d+\.\d{1,2}\b`),
		// thousands-separated amount without symbol
		regexp.MustCompile(`\b\d{1,3}(?:,\d{3})+(?:\.\d+)?\b`),
	}

	dates := []datePattern{
		{
			re:      regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
			layouts: []string{"2006-01-02"},
			label:   "date_iso",
		},
		{
			re:      regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),
			layouts: []string{"2/1/2006"},
			label:   "date_dmy_slash",
		},
		{
			re:      regexp.MustCompile(`\b\d{1,2}-\d{1,2}-\d{4}\b`),
			layouts: []string{"2-1-2006"},
			label:   "date_dmy_dash",
		},
		{
			re:      regexp.MustCompile(`(?i)\b\d{1,2} (?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]* \d{4}\b`),
			layouts: []string{"2 Jan 2006", "2 January 2006"},
			label:   "date_textual",
		},
	}

	datePatterns := make([]*regexp.Regexp, 0, len(dates))
	for _, d := range dates {
		datePatterns = append(datePatterns, d.re)
	}

	return &Registry{
		synonyms: map[string][]string{
			FieldSupplier: {
				"supplier", "supplier name", "vendor", "vendor name", "sold by",
			},
			FieldInvoiceTotal: {
				"invoice total", "subtotal", "sub total", "total ex gst", "net total",
			},
			FieldInvoiceTotalIncGST: {
				"grand total", "total inc gst", "total including gst", "amount due", "total amount",
			},
			FieldDiscountTotal: {
				"discount", "total discount", "less discount",
			},
			FieldTaxGST: {
				"gst", "total gst", "gst amount", "tax", "total tax",
			},
		},
		patterns: map[string][]*regexp.Regexp{
			FieldInvoiceDate: datePatterns,
			FieldMoney:       moneyPatterns,
			FieldItemCode:    {regexp.MustCompile(`(?i)^[A-Z0-9]{3,}$`)},
		},
		dates: dates,
	}
}

// Synonyms returns the ordered label synonyms for a field. Unknown fields
// yield an empty set, never an error.
func (r *Registry) Synonyms(field string) []string {
	return r.synonyms[field]
}

// Patterns returns the ordered compiled regexps for a field. Unknown fields
// yield an empty set, never an error.
func (r *Registry) Patterns(field string) []*regexp.Regexp {
	return r.patterns[field]
}
