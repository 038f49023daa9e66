package handler

import (
	accountingapp "github.com/bizerp/backend/internal/application/accounting"
	"github.com/bizerp/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler handles payment posting API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *accountingapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *accountingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// SetStatusRequest represents a request to change a payment's status
type SetStatusRequest struct {
	StatusID string `json:"status_id" binding:"required" example:"PMNT_RECEIVED"`
}

// Create godoc
// @Summary      Post a new payment
// @Description  Create a payment; an account-linked payment method also posts the matching financial account transaction
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body accountingapp.CreatePaymentRequest true "Payment creation request"
// @Success      201 {object} dto.Response{data=accountingapp.PaymentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /accounting/payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var req accountingapp.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.paymentService.CreatePayment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Get godoc
// @Summary      Get a payment
// @Description  Look up a payment by UUID or by its formatted payment number
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID or payment number"
// @Success      200 {object} dto.Response{data=accountingapp.PaymentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /accounting/payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	param := c.Param("id")
	id, err := uuid.Parse(param)
	if err != nil {
		// not a UUID, treat the path segment as a payment number
		result, err := h.paymentService.GetPaymentByNumber(c.Request.Context(), param)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, result)
		return
	}

	result, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List godoc
// @Summary      List payments
// @Description  List payments with status, type, party and date filters
// @Tags         payments
// @Produce      json
// @Param        status query string false "Payment status filter"
// @Param        payment_type query string false "Payment type filter"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]accountingapp.PaymentResponse}
// @Router       /accounting/payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	var filter accountingapp.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	results, total, err := h.paymentService.ListPayments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = dto.DefaultListRequest().PageSize
	}
	h.SuccessWithMeta(c, results, total, page, pageSize)
}

// Update godoc
// @Summary      Update a payment
// @Description  Replace the mutable fields of a payment; its financial account posting is repriced, created or removed to match the new method
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment ID"
// @Param        request body accountingapp.UpdatePaymentRequest true "Payment update request"
// @Success      200 {object} dto.Response{data=accountingapp.PaymentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /accounting/payments/{id} [put]
func (h *PaymentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	var req accountingapp.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.paymentService.UpdatePayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SetStatus godoc
// @Summary      Change a payment's status
// @Description  Move the payment along the status graph
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment ID"
// @Param        request body SetStatusRequest true "Target status"
// @Success      200 {object} dto.Response{data=accountingapp.PaymentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /accounting/payments/{id}/status [put]
func (h *PaymentHandler) SetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.paymentService.SetPaymentStatus(c.Request.Context(), id, req.StatusID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/accounting/payments")
	{
		payments.POST("", h.Create)
		payments.GET("", h.List)
		payments.GET("/:id", h.Get)
		payments.PUT("/:id", h.Update)
		payments.PUT("/:id/status", h.SetStatus)
	}
}
