package quote

import (
	"github.com/bizerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemSeqQuoteLevel marks an adjustment attached to the quote as a
// whole rather than to one item
const ItemSeqQuoteLevel = "_NA_"

// AdjustmentType classifies a quote adjustment
type AdjustmentType string

// Adjustment type codes
const (
	AdjustmentSalesTax  AdjustmentType = "SALES_TAX"
	AdjustmentDiscount  AdjustmentType = "DISCOUNT_ADJUSTMENT"
	AdjustmentPromotion AdjustmentType = "PROMOTION_ADJUSTMENT"
	AdjustmentShipping  AdjustmentType = "SHIPPING_CHARGES"
)

// QuoteAdjustment is a monetary modifier attached to a quote item, or to
// the quote itself when QuoteItemSeqID is the quote-level sentinel.
// Amounts are never summed on write; list queries aggregate at read
// time.
type QuoteAdjustment struct {
	shared.BaseEntity
	// AdjustmentNumber is issued from the quote_adjustment sequence when
	// the row is persisted; it is empty on a freshly computed adjustment.
	AdjustmentNumber string
	QuoteID          uuid.UUID
	QuoteItemSeqID   string
	AdjustmentTypeID AdjustmentType
	Amount           decimal.Decimal
	SourcePercentage decimal.Decimal
	Description      string
	IsManual         string
}

// NewQuoteAdjustment creates an adjustment row. itemSeqID may be the
// quote-level sentinel.
func NewQuoteAdjustment(
	quoteID uuid.UUID,
	itemSeqID string,
	adjustmentType AdjustmentType,
	amount, sourcePercentage decimal.Decimal,
	description string,
	manual bool,
) (*QuoteAdjustment, error) {
	if quoteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_QUOTE", "Quote is required")
	}
	if itemSeqID == "" {
		itemSeqID = ItemSeqQuoteLevel
	}
	if adjustmentType == "" {
		return nil, shared.NewDomainError("INVALID_ADJUSTMENT_TYPE", "Adjustment type is required")
	}

	isManual := "N"
	if manual {
		isManual = "Y"
	}

	return &QuoteAdjustment{
		BaseEntity:       shared.NewBaseEntity(),
		QuoteID:          quoteID,
		QuoteItemSeqID:   itemSeqID,
		AdjustmentTypeID: adjustmentType,
		Amount:           amount,
		SourcePercentage: sourcePercentage,
		Description:      description,
		IsManual:         isManual,
	}, nil
}

// IsQuoteLevel reports whether the adjustment applies to the quote as a
// whole
func (a *QuoteAdjustment) IsQuoteLevel() bool {
	return a.QuoteItemSeqID == ItemSeqQuoteLevel
}
