package csvexport

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invex/internal/domain"
	"invex/internal/extractor"
)

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 13)
	assert.Equal(t, "Source Name", row[0])
	assert.Equal(t, "Extraction Status", row[2])
	assert.Equal(t, "Created At", row[12])
}

func TestWriteDocuments_Completed(t *testing.T) {
	invDate := time.Date(2025, 11, 6, 0, 0, 0, 0, time.UTC)
	inv := extractor.ExtractedInvoice{
		Supplier:    strPtr("Acme Corp"),
		InvoiceDate: &invDate,
		Items: []extractor.LineItem{
			{Description: strPtr("Wood Screw Pack")},
			{Description: strPtr("Hex Bolt")},
		},
		InvoiceTotal:       decPtr("100"),
		TaxGST:             decPtr("10"),
		InvoiceTotalIncGST: decPtr("110"),
		Confidence: map[string]float64{
			extractor.FieldSupplier: 1.0,
		},
	}

	structuredData, err := json.Marshal(inv)
	require.NoError(t, err)

	extractedAt := time.Date(2025, 11, 7, 10, 30, 0, 0, time.UTC)
	createdAt := time.Date(2025, 11, 7, 8, 0, 0, 0, time.UTC)

	doc := domain.InvoiceDocument{
		ID:               uuid.New(),
		SourceName:       "acme_invoice.txt",
		Format:           "standard_tax_invoice",
		ExtractionStatus: domain.ExtractionStatusCompleted,
		StructuredData:   structuredData,
		ExtractedAt:      &extractedAt,
		CreatedAt:        createdAt,
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteDocuments([]domain.InvoiceDocument{doc}))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 13)
	assert.Equal(t, "acme_invoice.txt", row[0])
	assert.Equal(t, "standard_tax_invoice", row[1])
	assert.Equal(t, "completed", row[2])
	assert.Equal(t, "Acme Corp", row[3])
	assert.Equal(t, "2025-11-06", row[4])
	assert.Equal(t, "100", row[5])
	assert.Equal(t, "10", row[6])
	assert.Equal(t, "", row[7])
	assert.Equal(t, "110", row[8])
	assert.Equal(t, "2", row[9])
	assert.Equal(t, "1.00", row[10])
	assert.Equal(t, "2025-11-07T10:30:00Z", row[11])
	assert.Equal(t, "2025-11-07T08:00:00Z", row[12])
}

func TestWriteDocuments_NotExtracted(t *testing.T) {
	createdAt := time.Date(2025, 11, 7, 8, 0, 0, 0, time.UTC)
	doc := domain.InvoiceDocument{
		ID:               uuid.New(),
		SourceName:       "pending.txt",
		Format:           "generic",
		ExtractionStatus: domain.ExtractionStatusQueued,
		CreatedAt:        createdAt,
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteDocuments([]domain.InvoiceDocument{doc}))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 13)
	assert.Equal(t, "pending.txt", row[0])
	assert.Equal(t, "queued", row[2])
	// Extraction columns should be empty
	for i := 3; i <= 10; i++ {
		assert.Empty(t, row[i], "column %d should be empty for unextracted doc", i)
	}
	assert.Equal(t, "", row[11]) // extracted_at empty
	assert.Equal(t, "2025-11-07T08:00:00Z", row[12])
}

func TestWriteDocuments_MalformedJSON(t *testing.T) {
	doc := domain.InvoiceDocument{
		ID:               uuid.New(),
		SourceName:       "bad.txt",
		ExtractionStatus: domain.ExtractionStatusCompleted,
		StructuredData:   json.RawMessage(`{invalid json`),
		CreatedAt:        time.Now(),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteDocuments([]domain.InvoiceDocument{doc}))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 13)
	assert.Equal(t, "bad.txt", row[0])
	assert.Equal(t, "completed", row[2])
	// Extraction columns should be empty due to unmarshal failure
	for i := 3; i <= 10; i++ {
		assert.Empty(t, row[i], "column %d should be empty for malformed JSON", i)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "November Invoices", "November_Invoices"},
		{"special chars", "FY 2024-25 / Q3 (Oct–Dec)", "FY_2024-25_Q3_Oct_Dec"},
		{"hyphens and underscores preserved", "my-export_2025", "my-export_2025"},
		{"consecutive underscores collapsed", "test___export", "test_export"},
		{"leading/trailing cleaned", "  hello  ", "hello"},
		{
			"long name truncated",
			"abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-extra",
			"abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrs",
		},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	filename := BuildFilename("November Invoices")
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, "November_Invoices_"+today+".csv", filename)
}
