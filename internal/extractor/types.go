package extractor

import (
	"time"

	"github.com/shopspring/decimal"
)

// Field names used as keys in confidence maps and pattern lookups.
const (
	FieldSupplier           = "supplier"
	FieldInvoiceDate        = "invoice_date"
	FieldInvoiceTotal       = "invoice_total"
	FieldInvoiceTotalIncGST = "invoice_total_inc_gst"
	FieldDiscountTotal      = "discount_total"
	FieldTaxGST             = "tax_gst"
)

// Line item field names.
const (
	ItemFieldCode            = "code"
	ItemFieldDescription     = "description"
	ItemFieldQuantity        = "quantity"
	ItemFieldUnit            = "unit"
	ItemFieldUnitCost        = "unit_cost"
	ItemFieldDiscountAmount  = "discount_amount"
	ItemFieldDiscountPercent = "discount_percent"
)

// ExtractedInvoice is the structured result of one extraction run. Fields that
// were not found in the text stay nil and have no entry in Confidence.
type ExtractedInvoice struct {
	Supplier            *string            `json:"supplier,omitempty"`
	InvoiceDate         *time.Time         `json:"invoice_date,omitempty"`
	Items               []LineItem         `json:"items"`
	InvoiceTotal        *decimal.Decimal   `json:"invoice_total,omitempty"`
	InvoiceTotalIncGST  *decimal.Decimal   `json:"invoice_total_inc_gst,omitempty"`
	DiscountTotal       *decimal.Decimal   `json:"discount_total,omitempty"`
	TaxGST              *decimal.Decimal   `json:"tax_gst,omitempty"`
	Confidence          map[string]float64 `json:"confidence"`
}

// LineItem is a single recognized item line.
type LineItem struct {
	Code            *string            `json:"code,omitempty"`
	Description     *string            `json:"description,omitempty"`
	Quantity        *decimal.Decimal   `json:"quantity,omitempty"`
	Unit            *string            `json:"unit,omitempty"`
	DiscountAmount  *decimal.Decimal   `json:"discount_amount,omitempty"`
	DiscountPercent *decimal.Decimal   `json:"discount_percent,omitempty"`
	UnitCost        *decimal.Decimal   `json:"unit_cost,omitempty"`
	Confidence      map[string]float64 `json:"confidence"`
}

// ExtractedField is a diagnostic record of a single field assignment, kept for
// the audit trail. Not required for extraction correctness.
type ExtractedField struct {
	Field      string  `json:"field"`
	RawText    string  `json:"raw_text"`
	Confidence float64 `json:"confidence"`
	Line       int     `json:"line"`
	Pattern    string  `json:"pattern"`
}
