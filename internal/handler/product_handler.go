package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"invex/internal/catalog"
)

// ProductHandler handles product catalog matching endpoints.
type ProductHandler struct {
	catalogService *catalog.Service
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalogService *catalog.Service) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// Match handles POST /api/v1/products/match
func (h *ProductHandler) Match(c *gin.Context) {
	var req struct {
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "description is required")
		return
	}

	match, err := h.catalogService.Match(c.Request.Context(), req.Description)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, match)
}

// Feedback handles POST /api/v1/products/feedback
func (h *ProductHandler) Feedback(c *gin.Context) {
	var req struct {
		DocumentID     *uuid.UUID `json:"document_id"`
		RawDescription string     `json:"raw_description" binding:"required"`
		ProductID      *uuid.UUID `json:"product_id"`
		Accepted       bool       `json:"accepted"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "raw_description is required")
		return
	}

	err := h.catalogService.RecordFeedback(c.Request.Context(), catalog.FeedbackInput{
		DocumentID:     req.DocumentID,
		RawDescription: req.RawDescription,
		ProductID:      req.ProductID,
		Accepted:       req.Accepted,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "feedback recorded"})
}
