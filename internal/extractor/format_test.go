package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"katoomba_jobrpt_2045.pdf", "katoomba"},
		{"WWL_20250101_store44.pdf", "woolworths"},
		{"tax_invoice_778.pdf", "standard_tax_invoice"},
		{"rcpt-20250310.pdf", "receipt"},
		{"po_8841.pdf", "purchase_order"},
		{"randomfile.pdf", FormatGeneric},
		{"", FormatGeneric},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectFormat(tc.filename), "filename %q", tc.filename)
	}
}

func TestDetectFormat_SupplierBeatsDocumentKind(t *testing.T) {
	assert.Equal(t, "katoomba", DetectFormat("katoomba_tax_invoice.pdf"))
	assert.Equal(t, "bunnings", DetectFormat("bunnings_receipt_19.pdf"))
}
