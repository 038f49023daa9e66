package order

import (
	"time"

	"github.com/bizerp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderStatus is a dated status row attached to an order. A fresh
// "payment not received" row accompanies every preference snapshot, and
// carries a reference to it so removing a payment can take its status
// history along.
type OrderStatus struct {
	shared.BaseEntity
	OrderID        uuid.UUID
	PreferenceID   *uuid.UUID
	StatusID       string
	StatusDatetime time.Time
}

// Order status codes recorded by the payment workflows
const (
	OrderStatusCreated            = "ORDER_CREATED"
	OrderStatusPaymentNotReceived = "ORDER_PAYMENT_NOT_RECEIVED"
	OrderStatusPaymentReceived    = "ORDER_PAYMENT_RECEIVED"
)

// NewOrderStatus creates a dated status row for an order
func NewOrderStatus(orderID uuid.UUID, statusID string) (*OrderStatus, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order is required")
	}
	if statusID == "" {
		return nil, shared.NewDomainError("INVALID_STATUS", "Status is required")
	}
	return &OrderStatus{
		BaseEntity:     shared.NewBaseEntity(),
		OrderID:        orderID,
		StatusID:       statusID,
		StatusDatetime: time.Now(),
	}, nil
}

// AttachPreference ties the status row to a preference snapshot
func (s *OrderStatus) AttachPreference(preferenceID uuid.UUID) {
	id := preferenceID
	s.PreferenceID = &id
	s.Touch()
}
