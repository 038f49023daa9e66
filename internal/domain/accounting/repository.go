package accounting

import (
	"context"

	"github.com/bizerp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PostingPlan describes the financial-account side effect an update
// posting must apply atomically with the payment row. At most one field
// is set; an empty plan means the payment updates alone.
type PostingPlan struct {
	CreateTran   *FinAccountTran
	UpdateTran   *FinAccountTran
	DeleteTranID *uuid.UUID
}

// IsEmpty reports whether the plan has no financial-account side effect
func (p PostingPlan) IsEmpty() bool {
	return p.CreateTran == nil && p.UpdateTran == nil && p.DeleteTranID == nil
}

// PaymentRepository persists payments and their financial-account
// postings. The multi-row methods are atomic: either every row lands or
// none does.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByNumber(ctx context.Context, paymentNumber string) (*Payment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CreatePosted persists the payment together with its optional
	// financial-account transaction in one transaction. The transaction
	// row is inserted first and its PaymentID back-filled once the
	// payment row exists. The payment number is issued from the payment
	// sequence inside the same transaction.
	CreatePosted(ctx context.Context, payment *Payment, tran *FinAccountTran) error

	// SavePosted persists an updated payment and applies the posting
	// plan in one transaction.
	SavePosted(ctx context.Context, payment *Payment, plan PostingPlan) error

	Save(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FinAccountTranRepository reads financial-account transactions
type FinAccountTranRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FinAccountTran, error)
	FindByPaymentID(ctx context.Context, paymentID uuid.UUID) (*FinAccountTran, error)
}

// PaymentMethodRepository reads stored payment methods
type PaymentMethodRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentMethod, error)
	Save(ctx context.Context, method *PaymentMethod) error
}
