package accounting

import (
	"time"

	"github.com/bizerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinAccountTranType classifies a financial-account transaction
type FinAccountTranType string

// Financial-account transaction types
const (
	FinAccountTranDeposit    FinAccountTranType = "DEPOSIT"
	FinAccountTranWithdrawal FinAccountTranType = "WITHDRAWAL"
)

// FinAccountTranStatus is the lifecycle status of a financial-account
// transaction
type FinAccountTranStatus string

// Financial-account transaction status codes
const (
	FinAccountTranCreated  FinAccountTranStatus = "FINACT_TRNS_CREATED"
	FinAccountTranApproved FinAccountTranStatus = "FINACT_TRNS_APPROVED"
	FinAccountTranCanceled FinAccountTranStatus = "FINACT_TRNS_CANCELED"
)

// FinAccountTran is a posted movement against a financial account,
// linked to exactly one payment. PaymentID is nil until the owning
// payment row exists and the store back-fills the reference.
type FinAccountTran struct {
	shared.BaseEntity
	FinAccountID    uuid.UUID
	TranTypeID      FinAccountTranType
	StatusID        FinAccountTranStatus
	PartyID         uuid.UUID
	Amount          decimal.Decimal
	PaymentID       *uuid.UUID
	TransactionDate time.Time
}

// NewFinAccountTran builds the transaction implied by a payment against
// an account-linked method. An incoming payment deposits from the paying
// party; an outgoing payment withdraws toward the receiving party.
func NewFinAccountTran(
	finAccountID uuid.UUID,
	direction TranDirection,
	partyIDFrom, partyIDTo uuid.UUID,
	amount decimal.Decimal,
	transactionDate time.Time,
) (*FinAccountTran, error) {
	if finAccountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FIN_ACCOUNT", "Financial account is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount cannot be negative")
	}

	var tranType FinAccountTranType
	var partyID uuid.UUID
	switch direction {
	case DirectionIncoming:
		tranType = FinAccountTranDeposit
		partyID = partyIDFrom
	case DirectionOutgoing:
		tranType = FinAccountTranWithdrawal
		partyID = partyIDTo
	default:
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Unknown transaction direction")
	}

	if transactionDate.IsZero() {
		transactionDate = time.Now()
	}

	return &FinAccountTran{
		BaseEntity:      shared.NewBaseEntity(),
		FinAccountID:    finAccountID,
		TranTypeID:      tranType,
		StatusID:        FinAccountTranCreated,
		PartyID:         partyID,
		Amount:          amount,
		TransactionDate: transactionDate,
	}, nil
}

// AttachPayment back-fills the owning payment reference
func (t *FinAccountTran) AttachPayment(paymentID uuid.UUID) {
	id := paymentID
	t.PaymentID = &id
	t.Touch()
}

// Reprice updates the transaction in place when its payment changes
// terms; the transaction keeps its identity.
func (t *FinAccountTran) Reprice(amount decimal.Decimal, partyID uuid.UUID, transactionDate time.Time) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Transaction amount cannot be negative")
	}
	t.Amount = amount
	if partyID != uuid.Nil {
		t.PartyID = partyID
	}
	if !transactionDate.IsZero() {
		t.TransactionDate = transactionDate
	}
	t.Touch()
	return nil
}
