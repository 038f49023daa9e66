package handler

import (
	orderapp "github.com/bizerp/backend/internal/application/order"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderPaymentHandler handles order payment plan API endpoints
type OrderPaymentHandler struct {
	BaseHandler
	orderPaymentService *orderapp.OrderPaymentService
}

// NewOrderPaymentHandler creates a new OrderPaymentHandler
func NewOrderPaymentHandler(orderPaymentService *orderapp.OrderPaymentService) *OrderPaymentHandler {
	return &OrderPaymentHandler{orderPaymentService: orderPaymentService}
}

// Reconcile godoc
// @Summary      Reconcile an order's payment plan
// @Description  Apply the desired payment set: deleted lines remove their payment and snapshots, edited lines get a fresh snapshot, new lines mint a payment. An empty set with max_amount bumps the current snapshot's cap.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body orderapp.ReconcileRequest true "Desired payment set"
// @Success      200 {object} dto.Response{data=orderapp.PaymentPlanResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{id}/payments [put]
func (h *OrderPaymentHandler) Reconcile(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderapp.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.orderPaymentService.Reconcile(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetPlan godoc
// @Summary      Get an order's payment plan
// @Description  Returns the current preference snapshot, the snapshot history and the status trail
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response{data=orderapp.PaymentPlanResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{id}/payments [get]
func (h *OrderPaymentHandler) GetPlan(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	result, err := h.orderPaymentService.GetOrderPaymentPlan(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RegisterRoutes registers order payment routes
func (h *OrderPaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.PUT("/:id/payments", h.Reconcile)
		orders.GET("/:id/payments", h.GetPlan)
	}
}
