package order

import (
	"context"

	"github.com/bizerp/backend/internal/domain/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentAttachment groups the rows inserted when a payment joins an
// order: the payment itself, its preference snapshot and the status row.
type PaymentAttachment struct {
	Payment    *accounting.Payment
	Preference *PaymentPreference
	Status     *OrderStatus
}

// ReconciliationPlan is the full set of row changes one reconciliation
// applies. The store executes it in a single transaction.
type ReconciliationPlan struct {
	OrderID uuid.UUID

	// DeletePaymentIDs lists payments flagged removed; their preference
	// and status rows go with them.
	DeletePaymentIDs []uuid.UUID

	// Replacements carries edited payments. Applying one wipes the
	// order's prior preference and payment status rows, inserts the
	// fresh snapshot and status, and saves the updated payment.
	Replacements []PaymentAttachment

	// Additions carries payments new to the order.
	Additions []PaymentAttachment

	// MaxAmount, when set, bumps the current snapshot's cap. Used only
	// for an empty incoming payment set.
	MaxAmount *decimal.Decimal
}

// IsEmpty reports whether the plan changes nothing
func (p ReconciliationPlan) IsEmpty() bool {
	return len(p.DeletePaymentIDs) == 0 && len(p.Replacements) == 0 &&
		len(p.Additions) == 0 && p.MaxAmount == nil
}

// PaymentPlanRepository persists an order's payment plan: preference
// snapshots, status rows and the payments they reference. Apply is
// atomic across every row the plan names.
type PaymentPlanRepository interface {
	FindPreferencesByOrder(ctx context.Context, orderID uuid.UUID) ([]PaymentPreference, error)
	FindCurrentPreference(ctx context.Context, orderID uuid.UUID) (*PaymentPreference, error)
	FindStatusesByOrder(ctx context.Context, orderID uuid.UUID) ([]OrderStatus, error)
	FindPaymentsByOrder(ctx context.Context, orderID uuid.UUID) ([]accounting.Payment, error)

	// Apply executes the plan in one transaction. Sequence values for
	// payment numbers and snapshot sequences are issued inside that
	// transaction.
	Apply(ctx context.Context, plan ReconciliationPlan) error
}
