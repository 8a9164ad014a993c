package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"invex/internal/csvexport"
	"invex/internal/domain"
	"invex/internal/port"
	"invex/internal/service"
)

// exportBatchSize is how many documents are loaded per page while streaming
// the CSV export.
const exportBatchSize = 500

// ExtractionHandler handles invoice extraction endpoints.
type ExtractionHandler struct {
	extractionService service.ExtractionService
	docRepo           port.InvoiceDocumentRepository
}

// NewExtractionHandler creates a new ExtractionHandler.
func NewExtractionHandler(extractionService service.ExtractionService, docRepo port.InvoiceDocumentRepository) *ExtractionHandler {
	return &ExtractionHandler{extractionService: extractionService, docRepo: docRepo}
}

// Submit handles POST /api/v1/extractions
func (h *ExtractionHandler) Submit(c *gin.Context) {
	var req struct {
		SourceName   string `json:"source_name"`
		Text         string `json:"text"`
		SourceBucket string `json:"source_bucket"`
		SourceKey    string `json:"source_key"`
		Async        bool   `json:"async"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	if req.Text == "" && req.SourceKey == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "text or source_key is required")
		return
	}

	doc, err := h.extractionService.Submit(c.Request.Context(), service.SubmitExtractionInput{
		SourceName:   req.SourceName,
		Text:         req.Text,
		SourceBucket: req.SourceBucket,
		SourceKey:    req.SourceKey,
		Async:        req.Async,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// GetByID handles GET /api/v1/invoices/:id
func (h *ExtractionHandler) GetByID(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	doc, err := h.extractionService.GetByID(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// List handles GET /api/v1/invoices
func (h *ExtractionHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	if status := c.Query("status"); status != "" {
		if !domain.ValidExtractionStatuses[domain.ExtractionStatus(status)] {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status must be one of queued, processing, completed, failed")
			return
		}
		docs, total, err := h.docRepo.ListByStatus(c.Request.Context(), domain.ExtractionStatus(status), offset, limit)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
		return
	}

	docs, total, err := h.extractionService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ListEvents handles GET /api/v1/invoices/:id/events
func (h *ExtractionHandler) ListEvents(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	events, err := h.extractionService.ListEvents(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, events)
}

// Delete handles DELETE /api/v1/invoices/:id
func (h *ExtractionHandler) Delete(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	if err := h.extractionService.Delete(c.Request.Context(), docID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "document deleted"})
}

// ExportCSV handles GET /api/v1/invoices/export
func (h *ExtractionHandler) ExportCSV(c *gin.Context) {
	filename := csvexport.BuildFilename("invoices")

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Writer.WriteHeader(http.StatusOK)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}

	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}

	// Page through documents so large exports never load everything at once.
	for offset := 0; ; offset += exportBatchSize {
		docs, total, err := h.docRepo.List(c.Request.Context(), offset, exportBatchSize)
		if err != nil {
			return
		}
		if err := w.WriteDocuments(docs); err != nil {
			return
		}
		if offset+len(docs) >= total || len(docs) == 0 {
			break
		}
	}

	w.Flush()
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
