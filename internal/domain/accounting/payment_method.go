package accounting

import (
	"github.com/bizerp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentMethod is a stored way of paying (bank account, company check,
// gift certificate...). A method tied to a financial account causes
// payments through it to post a FinAccountTran.
type PaymentMethod struct {
	shared.BaseEntity
	PaymentMethodTypeID string
	PartyID             uuid.UUID
	Description         string
	FinAccountID        *uuid.UUID
}

// NewPaymentMethod creates a payment method owned by a party
func NewPaymentMethod(methodTypeID string, partyID uuid.UUID, description string) (*PaymentMethod, error) {
	if methodTypeID == "" {
		return nil, shared.NewDomainError("INVALID_METHOD_TYPE", "Payment method type is required")
	}
	if partyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTY", "Owning party is required")
	}
	return &PaymentMethod{
		BaseEntity:          shared.NewBaseEntity(),
		PaymentMethodTypeID: methodTypeID,
		PartyID:             partyID,
		Description:         description,
	}, nil
}

// LinkFinAccount ties the method to a financial account
func (m *PaymentMethod) LinkFinAccount(finAccountID uuid.UUID) {
	id := finAccountID
	m.FinAccountID = &id
	m.Touch()
}

// IsAccountLinked reports whether payments through this method post
// against a financial account
func (m *PaymentMethod) IsAccountLinked() bool {
	return m.FinAccountID != nil
}
