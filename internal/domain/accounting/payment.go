package accounting

import (
	"fmt"
	"time"

	"github.com/bizerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment represents a single money movement between two parties.
// A payment whose method is linked to a financial account carries a
// back-reference to the FinAccountTran posted alongside it.
type Payment struct {
	shared.BaseEntity
	PaymentNumber       string
	PaymentTypeID       PaymentType
	StatusID            PaymentStatus
	PartyIDFrom         uuid.UUID
	PartyIDTo           uuid.UUID
	Amount              decimal.Decimal
	PaymentMethodID     *uuid.UUID
	PaymentMethodTypeID string
	PaymentRefNum       string
	Comments            string
	FinAccountTransID   *uuid.UUID
	EffectiveDate       time.Time
}

// NewPayment creates a payment in the PMNT_NOT_PAID status. The payment
// number is assigned by the store when the payment is first persisted.
func NewPayment(
	paymentType PaymentType,
	partyIDFrom, partyIDTo uuid.UUID,
	amount decimal.Decimal,
	effectiveDate time.Time,
) (*Payment, error) {
	if paymentType == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "Payment type is required")
	}
	if partyIDFrom == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTY", "Paying party is required")
	}
	if partyIDTo == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTY", "Receiving party is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount cannot be negative")
	}
	if effectiveDate.IsZero() {
		effectiveDate = time.Now()
	}

	return &Payment{
		BaseEntity:    shared.NewBaseEntity(),
		PaymentTypeID: paymentType,
		StatusID:      PaymentStatusNotPaid,
		PartyIDFrom:   partyIDFrom,
		PartyIDTo:     partyIDTo,
		Amount:        amount,
		EffectiveDate: effectiveDate,
	}, nil
}

// SetPaymentMethod attaches a payment method reference
func (p *Payment) SetPaymentMethod(methodID uuid.UUID, methodTypeID string) {
	id := methodID
	p.PaymentMethodID = &id
	p.PaymentMethodTypeID = methodTypeID
	p.Touch()
}

// ClearPaymentMethod detaches the payment method reference
func (p *Payment) ClearPaymentMethod() {
	p.PaymentMethodID = nil
	p.PaymentMethodTypeID = ""
	p.Touch()
}

// LinkFinAccountTrans records the back-reference to the posted
// financial-account transaction
func (p *Payment) LinkFinAccountTrans(tranID uuid.UUID) {
	id := tranID
	p.FinAccountTransID = &id
	p.Touch()
}

// UnlinkFinAccountTrans clears the back-reference after a stale
// transaction is removed
func (p *Payment) UnlinkFinAccountTrans() {
	p.FinAccountTransID = nil
	p.Touch()
}

// UpdateDetails replaces the mutable fields of the payment
func (p *Payment) UpdateDetails(
	paymentType PaymentType,
	amount decimal.Decimal,
	effectiveDate time.Time,
	refNum, comments string,
) error {
	if paymentType == "" {
		return shared.NewDomainError("INVALID_PAYMENT_TYPE", "Payment type is required")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount cannot be negative")
	}
	p.PaymentTypeID = paymentType
	p.Amount = amount
	if !effectiveDate.IsZero() {
		p.EffectiveDate = effectiveDate
	}
	p.PaymentRefNum = refNum
	p.Comments = comments
	p.Touch()
	return nil
}

// ChangeStatus moves the payment along the status graph
func (p *Payment) ChangeStatus(target PaymentStatus) error {
	if target == p.StatusID {
		return nil
	}
	if !p.StatusID.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot change payment status from %s to %s", p.StatusID, target))
	}
	p.StatusID = target
	p.Touch()
	return nil
}

// IsNotPaid reports whether the payment is still in its initial status
func (p *Payment) IsNotPaid() bool {
	return p.StatusID == PaymentStatusNotPaid
}
