package order

import (
	"github.com/bizerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PreferenceStatus is the lifecycle status of a payment preference
type PreferenceStatus string

// Preference status codes
const (
	PreferenceNotReceived PreferenceStatus = "PAYMENT_NOT_RECEIVED"
	PreferenceReceived    PreferenceStatus = "PAYMENT_RECEIVED"
	PreferenceSettled     PreferenceStatus = "PAYMENT_SETTLED"
	PreferenceCancelled   PreferenceStatus = "PAYMENT_CANCELLED"
)

// PaymentPreference is a snapshot of how an order intends to be paid at
// a point in time. Preferences are append-only: an edit never mutates a
// snapshot in place, it retires the order's prior snapshots and inserts
// a fresh one under a new sequence value, keeping an audit trail of
// every change of terms.
type PaymentPreference struct {
	shared.BaseEntity
	OrderID             uuid.UUID
	PaymentID           uuid.UUID
	PaymentMethodTypeID string
	StatusID            PreferenceStatus
	MaxAmount           decimal.Decimal
	SnapshotSeq         int64
}

// NewPaymentPreference creates a preference snapshot for a payment
// attached to an order. SnapshotSeq is issued by the store when the
// snapshot is persisted.
func NewPaymentPreference(
	orderID, paymentID uuid.UUID,
	paymentMethodTypeID string,
	maxAmount decimal.Decimal,
) (*PaymentPreference, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order is required")
	}
	if paymentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT", "Payment is required")
	}
	if maxAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Max amount cannot be negative")
	}
	return &PaymentPreference{
		BaseEntity:          shared.NewBaseEntity(),
		OrderID:             orderID,
		PaymentID:           paymentID,
		PaymentMethodTypeID: paymentMethodTypeID,
		StatusID:            PreferenceNotReceived,
		MaxAmount:           maxAmount,
	}, nil
}

// AdjustMaxAmount updates the cap on the current snapshot. Used only
// when an order's total changes without any payment line changing; every
// other modification goes through a fresh snapshot.
func (p *PaymentPreference) AdjustMaxAmount(maxAmount decimal.Decimal) error {
	if maxAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Max amount cannot be negative")
	}
	p.MaxAmount = maxAmount
	p.Touch()
	return nil
}
