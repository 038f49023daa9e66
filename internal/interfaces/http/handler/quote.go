package handler

import (
	quoteapp "github.com/bizerp/backend/internal/application/quote"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QuoteHandler handles quote tax adjustment API endpoints
type QuoteHandler struct {
	BaseHandler
	quoteService *quoteapp.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService *quoteapp.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// CreateTaxAdjustments godoc
// @Summary      Compute sales tax adjustments for a quote item
// @Description  Resolves the store's VAT authority and stores one adjustment per applicable sales tax rate. A store without an active tax registration yields an empty set.
// @Tags         quotes
// @Produce      json
// @Param        id path string true "Quote ID"
// @Param        itemSeqId path string true "Quote item sequence ID"
// @Success      201 {object} dto.Response{data=[]quoteapp.AdjustmentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /quotes/{id}/items/{itemSeqId}/tax-adjustments [post]
func (h *QuoteHandler) CreateTaxAdjustments(c *gin.Context) {
	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quote ID")
		return
	}
	itemSeqID := c.Param("itemSeqId")
	if itemSeqID == "" {
		h.BadRequest(c, "Item sequence ID is required")
		return
	}

	result, err := h.quoteService.CreateTaxAdjustments(c.Request.Context(), quoteID, itemSeqID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListAdjustments godoc
// @Summary      List a quote's adjustments
// @Description  Returns every adjustment on the quote plus the read-time total
// @Tags         quotes
// @Produce      json
// @Param        id path string true "Quote ID"
// @Success      200 {object} dto.Response{data=quoteapp.AdjustmentListResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /quotes/{id}/adjustments [get]
func (h *QuoteHandler) ListAdjustments(c *gin.Context) {
	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quote ID")
		return
	}

	result, err := h.quoteService.ListQuoteAdjustments(c.Request.Context(), quoteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListItemAdjustments godoc
// @Summary      List one quote item's adjustments
// @Tags         quotes
// @Produce      json
// @Param        id path string true "Quote ID"
// @Param        itemSeqId path string true "Quote item sequence ID"
// @Success      200 {object} dto.Response{data=[]quoteapp.AdjustmentResponse}
// @Router       /quotes/{id}/items/{itemSeqId}/adjustments [get]
func (h *QuoteHandler) ListItemAdjustments(c *gin.Context) {
	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quote ID")
		return
	}
	itemSeqID := c.Param("itemSeqId")

	result, err := h.quoteService.ListItemAdjustments(c.Request.Context(), quoteID, itemSeqID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RegisterRoutes registers quote routes
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	{
		quotes.POST("/:id/items/:itemSeqId/tax-adjustments", h.CreateTaxAdjustments)
		quotes.GET("/:id/items/:itemSeqId/adjustments", h.ListItemAdjustments)
		quotes.GET("/:id/adjustments", h.ListAdjustments)
	}
}
