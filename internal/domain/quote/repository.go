package quote

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteRepository persists quotes, their items and adjustments
type QuoteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Quote, error)
	Save(ctx context.Context, quote *Quote) error

	FindAdjustments(ctx context.Context, quoteID uuid.UUID) ([]QuoteAdjustment, error)
	FindItemAdjustments(ctx context.Context, quoteID uuid.UUID, itemSeqID string) ([]QuoteAdjustment, error)

	// SaveAdjustments inserts the adjustment rows in one transaction,
	// after removing the item's prior auto-computed (IsManual = "N")
	// adjustments of the same type.
	SaveAdjustments(ctx context.Context, quoteID uuid.UUID, itemSeqID string, adjustments []QuoteAdjustment) error

	// SumAdjustments aggregates adjustment amounts at read time
	SumAdjustments(ctx context.Context, quoteID uuid.UUID) (decimal.Decimal, error)
}

// TaxConfigRepository reads the store tax configuration
type TaxConfigRepository interface {
	FindProductStore(ctx context.Context, id uuid.UUID) (*ProductStore, error)
	// FindActiveTaxAuthority returns the current (ThruDate nil)
	// registration for the geo/party pair, or nil when none is active.
	FindActiveTaxAuthority(ctx context.Context, geoID string, partyID uuid.UUID) (*PartyTaxAuthority, error)
	FindRateProducts(ctx context.Context, geoID string, partyID uuid.UUID) ([]TaxAuthorityRateProduct, error)
}
