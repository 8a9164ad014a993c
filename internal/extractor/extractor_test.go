package extractor

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInvoice = `TAX INVOICE
Supplier: Acme Corp
Invoice Date: 2025-11-06
Item Description Qty Price Amount Product
SKU123 5 12.50 Wood Screw Pack
BOLT99 2 3.75 Galv Hex Bolt
Subtotal: $100.00
GST: $10.00
Grand Total: $110.00`

func newTestExtractor() *Extractor {
	return New(NewRegistry())
}

func TestExtract_FullInvoice(t *testing.T) {
	inv := newTestExtractor().Extract(sampleInvoice)

	require.NotNil(t, inv.Supplier)
	assert.Equal(t, "Acme Corp", *inv.Supplier)
	assert.Equal(t, 1.0, inv.Confidence[FieldSupplier])

	require.NotNil(t, inv.InvoiceDate)
	assert.Equal(t, time.Date(2025, 11, 6, 0, 0, 0, 0, time.UTC), *inv.InvoiceDate)
	assert.Equal(t, 0.9, inv.Confidence[FieldInvoiceDate])

	require.Len(t, inv.Items, 2)
	require.NotNil(t, inv.Items[0].Code)
	assert.Equal(t, "SKU123", *inv.Items[0].Code)
	require.NotNil(t, inv.Items[1].Code)
	assert.Equal(t, "BOLT99", *inv.Items[1].Code)

	require.NotNil(t, inv.InvoiceTotal)
	assert.Equal(t, "100", inv.InvoiceTotal.String())
	require.NotNil(t, inv.TaxGST)
	assert.Equal(t, "10", inv.TaxGST.String())
	require.NotNil(t, inv.InvoiceTotalIncGST)
	assert.Equal(t, "110", inv.InvoiceTotalIncGST.String())
	assert.Nil(t, inv.DiscountTotal)
}

func TestExtract_Idempotent(t *testing.T) {
	e := newTestExtractor()
	first := e.Extract(sampleInvoice)
	second := e.Extract(sampleInvoice)
	assert.Equal(t, first, second)
}

func TestExtract_ConfidenceInRange(t *testing.T) {
	inv := newTestExtractor().Extract(sampleInvoice)
	for field, score := range inv.Confidence {
		assert.GreaterOrEqual(t, score, 0.0, "field %s", field)
		assert.LessOrEqual(t, score, 1.0, "field %s", field)
	}
	for i, item := range inv.Items {
		for field, score := range item.Confidence {
			assert.GreaterOrEqual(t, score, 0.0, "item %d field %s", i, field)
			assert.LessOrEqual(t, score, 1.0, "item %d field %s", i, field)
		}
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "\n  \n\t\n"} {
		inv := newTestExtractor().Extract(text)
		assert.Nil(t, inv.Supplier)
		assert.Nil(t, inv.InvoiceDate)
		assert.Nil(t, inv.InvoiceTotal)
		assert.Nil(t, inv.InvoiceTotalIncGST)
		assert.Nil(t, inv.DiscountTotal)
		assert.Nil(t, inv.TaxGST)
		assert.Empty(t, inv.Items)
		assert.Empty(t, inv.Confidence)
	}
}

func TestExtract_NoMatchesLeavesFieldsUnset(t *testing.T) {
	inv := newTestExtractor().Extract("zzzz yyyy xxxx\nwwww vvvv uuuu")
	assert.Nil(t, inv.Supplier)
	assert.Nil(t, inv.InvoiceDate)
	assert.Empty(t, inv.Items)
	assert.Empty(t, inv.Confidence)
}

func TestExtract_InvoiceDateLine(t *testing.T) {
	inv := newTestExtractor().Extract("Invoice Date: 2025-11-06")
	require.NotNil(t, inv.InvoiceDate)
	assert.Equal(t, time.Date(2025, 11, 6, 0, 0, 0, 0, time.UTC), *inv.InvoiceDate)
	assert.Equal(t, 0.9, inv.Confidence[FieldInvoiceDate])
	assert.Len(t, inv.Confidence, 1)
}

func TestExtract_HeaderPassLimitedToFirst20Lines(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString("zzzz zzzz zzzz\n")
	}
	b.WriteString("Supplier: Acme Corp\n")

	inv := newTestExtractor().Extract(b.String())
	assert.Nil(t, inv.Supplier)
	assert.NotContains(t, inv.Confidence, FieldSupplier)
}

func TestExtract_TotalsPassLimitedToLast10Lines(t *testing.T) {
	var b strings.Builder
	b.WriteString("Grand Total: $9.99\n")
	for i := 0; i < 10; i++ {
		b.WriteString("zzzz zzzz zzzz\n")
	}

	inv := newTestExtractor().Extract(b.String())
	assert.Nil(t, inv.InvoiceTotalIncGST)
	assert.NotContains(t, inv.Confidence, FieldInvoiceTotalIncGST)
}

func TestExtract_ItemHeaderThresholdBoundary(t *testing.T) {
	// 4 of 6 keywords scores 0.67, below the 0.7 cutoff.
	below := "Description Qty Price Amount\nSKU123 5 12.50 Wood Screw Pack"
	inv := newTestExtractor().Extract(below)
	assert.Empty(t, inv.Items)

	// All 6 keywords present triggers the item section.
	above := "Item Description Qty Price Amount Product\nSKU123 5 12.50 Wood Screw Pack"
	inv = newTestExtractor().Extract(above)
	require.Len(t, inv.Items, 1)
	require.NotNil(t, inv.Items[0].Code)
	assert.Equal(t, "SKU123", *inv.Items[0].Code)
}

func TestExtract_ItemSectionStopsAtTotals(t *testing.T) {
	text := `Item Description Qty Price Amount Product
SKU123 5 12.50 Wood Screw Pack
Subtotal: $62.50
NAIL01 3 4.20 Bullet Head Nails`
	inv := newTestExtractor().Extract(text)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "SKU123", *inv.Items[0].Code)
}

func TestExtract_TotalsGrandTotal(t *testing.T) {
	inv := newTestExtractor().Extract("Grand Total: $1,234.56")
	require.NotNil(t, inv.InvoiceTotalIncGST)
	assert.Equal(t, "1234.56", inv.InvoiceTotalIncGST.String())
	assert.Greater(t, inv.Confidence[FieldInvoiceTotalIncGST], 0.7)
}

func TestExtract_TotalsLineWithoutMoneyIsSkipped(t *testing.T) {
	inv := newTestExtractor().Extract("Grand Total: pending")
	assert.Nil(t, inv.InvoiceTotalIncGST)
	assert.NotContains(t, inv.Confidence, FieldInvoiceTotalIncGST)
}

func TestExtract_FirstMatchWins(t *testing.T) {
	text := "Supplier: First Corp\nSupplier: Second Corp"
	inv := newTestExtractor().Extract(text)
	require.NotNil(t, inv.Supplier)
	assert.Equal(t, "First Corp", *inv.Supplier)
}

func TestExtractWithAudit_RecordsEvents(t *testing.T) {
	inv, audit := newTestExtractor().ExtractWithAudit(sampleInvoice)
	require.NotNil(t, inv.Supplier)
	require.NotEmpty(t, audit)

	byField := make(map[string][]ExtractedField)
	for _, f := range audit {
		byField[f.Field] = append(byField[f.Field], f)
		assert.GreaterOrEqual(t, f.Confidence, 0.0)
		assert.LessOrEqual(t, f.Confidence, 1.0)
		assert.Greater(t, f.Line, 0)
	}

	require.Len(t, byField[FieldSupplier], 1)
	assert.Equal(t, 2, byField[FieldSupplier][0].Line)
	assert.Equal(t, "Supplier: Acme Corp", byField[FieldSupplier][0].RawText)
	require.Len(t, byField[FieldInvoiceDate], 1)
	assert.Equal(t, "date_iso", byField[FieldInvoiceDate][0].Pattern)
	assert.Len(t, byField["items"], 2)
}

func TestSplitLines(t *testing.T) {
	lines := splitLines("  a  \n\n\tb\nc\r\n")
	assert.Equal(t, []string{"a", "b", "c"}, lines)
}
