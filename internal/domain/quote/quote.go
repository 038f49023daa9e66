package quote

import (
	"time"

	"github.com/bizerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteStatus is the lifecycle status of a quote
type QuoteStatus string

// Quote status codes
const (
	QuoteStatusCreated  QuoteStatus = "QUO_CREATED"
	QuoteStatusApproved QuoteStatus = "QUO_APPROVED"
	QuoteStatusOrdered  QuoteStatus = "QUO_ORDERED"
	QuoteStatusRejected QuoteStatus = "QUO_REJECTED"
)

// Quote is a priced offer to a party, carrying items and monetary
// adjustments (taxes, discounts)
type Quote struct {
	shared.BaseEntity
	QuoteNumber    string
	PartyID        uuid.UUID
	ProductStoreID uuid.UUID
	StatusID       QuoteStatus
	IssueDate      time.Time
	Items          []QuoteItem
}

// QuoteItem is one priced product line on a quote, keyed by the quote
// and a per-quote sequence id
type QuoteItem struct {
	QuoteID       uuid.UUID
	SeqID         string
	ProductID     uuid.UUID
	Quantity      decimal.Decimal
	UnitListPrice decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewQuote creates a quote in the created status
func NewQuote(quoteNumber string, partyID, productStoreID uuid.UUID, issueDate time.Time) (*Quote, error) {
	if quoteNumber == "" {
		return nil, shared.NewDomainError("INVALID_QUOTE_NUMBER", "Quote number is required")
	}
	if partyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTY", "Party is required")
	}
	if productStoreID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_STORE", "Product store is required")
	}
	if issueDate.IsZero() {
		issueDate = time.Now()
	}
	return &Quote{
		BaseEntity:     shared.NewBaseEntity(),
		QuoteNumber:    quoteNumber,
		PartyID:        partyID,
		ProductStoreID: productStoreID,
		StatusID:       QuoteStatusCreated,
		IssueDate:      issueDate,
		Items:          make([]QuoteItem, 0),
	}, nil
}

// AddItem appends a product line; the sequence id must be unique within
// the quote
func (q *Quote) AddItem(seqID string, productID uuid.UUID, quantity, unitListPrice decimal.Decimal) (*QuoteItem, error) {
	if seqID == "" || seqID == ItemSeqQuoteLevel {
		return nil, shared.NewDomainError("INVALID_ITEM_SEQ", "Item sequence id is invalid")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitListPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit list price cannot be negative")
	}
	for _, item := range q.Items {
		if item.SeqID == seqID {
			return nil, shared.NewDomainError("DUPLICATE_ITEM_SEQ", "Item sequence id already used")
		}
	}

	now := time.Now()
	q.Items = append(q.Items, QuoteItem{
		QuoteID:       q.ID,
		SeqID:         seqID,
		ProductID:     productID,
		Quantity:      quantity,
		UnitListPrice: unitListPrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	q.Touch()
	return &q.Items[len(q.Items)-1], nil
}

// GetItem returns the item with the given sequence id, or nil
func (q *Quote) GetItem(seqID string) *QuoteItem {
	for i := range q.Items {
		if q.Items[i].SeqID == seqID {
			return &q.Items[i]
		}
	}
	return nil
}
