package extractor

import "strings"

// FormatGeneric is returned when no supplier-specific format is recognized.
const FormatGeneric = "generic_invoice"

// formatKeyword maps a filename keyword to an invoice format. Order matters:
// supplier-specific formats are checked before the generic document-kind
// fallbacks, so "katoomba_tax_invoice.pdf" resolves to katoomba.
type formatKeyword struct {
	format   string
	keywords []string
}

var formatKeywords = []formatKeyword{
	{"katoomba", []string{"katoomba", "sbonfacp", "jobrpt"}},
	{"woolworths", []string{"woolworths", "wwl", "safeway"}},
	{"coles", []string{"coles", "supermarket"}},
	{"aldi", []string{"aldi"}},
	{"bunnings", []string{"bunnings", "warehouse"}},
	{"officeworks", []string{"officeworks", "stationery"}},
	{"mitre10", []string{"mitre10", "hardware"}},
	{"telstra", []string{"telstra", "telecom"}},
	{"optus", []string{"optus", "mobile"}},
	{"origin", []string{"origin", "energy"}},
	{"agl", []string{"agl"}},
	{"sydney_water", []string{"sydneywater", "water"}},
	{"council", []string{"council", "rates", "municipal"}},
	{"standard_tax_invoice", []string{"tax_invoice", "invoice", "inv"}},
	{"receipt", []string{"receipt", "rcpt"}},
	{"statement", []string{"statement", "stmt"}},
	{"bill", []string{"bill", "billing"}},
	{"purchase_order", []string{"purchase_order", "po_"}},
	{"credit_note", []string{"credit_note", "cn_"}},
}

// DetectFormat guesses the invoice format from the source filename. Every
// document is an invoice of some kind; the format only selects downstream
// handling and is recorded on the stored document.
func DetectFormat(filename string) string {
	lower := strings.ToLower(filename)
	for _, fk := range formatKeywords {
		for _, kw := range fk.keywords {
			if strings.Contains(lower, kw) {
				return fk.format
			}
		}
	}
	return FormatGeneric
}
