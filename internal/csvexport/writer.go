package csvexport

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"invex/internal/domain"
	"invex/internal/extractor"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Source Name",
	"Format",
	"Extraction Status",
	"Supplier",
	"Invoice Date",
	"Subtotal",
	"GST",
	"Discount",
	"Total Inc GST",
	"Line Item Count",
	"Supplier Confidence",
	"Extracted At",
	"Created At",
}

// Writer wraps csv.Writer for exporting invoice documents as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteDocuments converts a batch of documents to CSV rows and writes them.
func (w *Writer) WriteDocuments(docs []domain.InvoiceDocument) error {
	for i := range docs {
		row := documentToRow(&docs[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// documentToRow converts a single document to a string slice matching columns.
// If extraction has not completed or StructuredData is invalid, metadata
// columns are filled and extraction columns are left empty.
func documentToRow(doc *domain.InvoiceDocument) []string {
	row := make([]string, len(columns))

	// Metadata columns (always filled)
	row[0] = doc.SourceName
	row[1] = doc.Format
	row[2] = string(doc.ExtractionStatus)
	row[11] = formatTime(doc.ExtractedAt)
	row[12] = doc.CreatedAt.Format(time.RFC3339)

	if doc.ExtractionStatus != domain.ExtractionStatusCompleted || len(doc.StructuredData) == 0 {
		return row
	}

	var inv extractor.ExtractedInvoice
	if err := json.Unmarshal(doc.StructuredData, &inv); err != nil {
		return row
	}

	row[3] = formatString(inv.Supplier)
	row[4] = formatDate(inv.InvoiceDate)
	row[5] = formatDecimal(inv.InvoiceTotal)
	row[6] = formatDecimal(inv.TaxGST)
	row[7] = formatDecimal(inv.DiscountTotal)
	row[8] = formatDecimal(inv.InvoiceTotalIncGST)
	row[9] = strconv.Itoa(len(inv.Items))
	if conf, ok := inv.Confidence[extractor.FieldSupplier]; ok {
		row[10] = strconv.FormatFloat(conf, 'f', 2, 64)
	}

	return row
}

func formatString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func formatDecimal(v *decimal.Decimal) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
