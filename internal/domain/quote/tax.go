package quote

import (
	"fmt"
	"time"

	"github.com/bizerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStore carries the store-level tax configuration: which tax
// authority's VAT rules price this store's quotes
type ProductStore struct {
	shared.BaseEntity
	StoreName         string
	VatTaxAuthGeoID   string
	VatTaxAuthPartyID uuid.UUID
}

// PartyTaxAuthority is a party's registration with a tax authority.
// A record is active while ThruDate is nil.
type PartyTaxAuthority struct {
	TaxAuthGeoID   string
	TaxAuthPartyID uuid.UUID
	FromDate       time.Time
	ThruDate       *time.Time
}

// IsActive reports whether the registration is currently in force
func (a *PartyTaxAuthority) IsActive() bool {
	return a.ThruDate == nil
}

// TaxAuthorityRateProduct is one rate a tax authority levies on
// products
type TaxAuthorityRateProduct struct {
	shared.BaseEntity
	TaxAuthGeoID   string
	TaxAuthPartyID uuid.UUID
	RateTypeID     AdjustmentType
	Description    string
	TaxPercentage  decimal.Decimal
}

// ComputeSalesTaxAdjustments emits one SALES_TAX adjustment per
// applicable rate for a quote item: quantity x unit list price x
// rate / 100. Rates of other types are skipped; adjustments are not
// summed here.
func ComputeSalesTaxAdjustments(item *QuoteItem, rates []TaxAuthorityRateProduct) ([]QuoteAdjustment, error) {
	if item == nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Quote item is required")
	}

	hundred := decimal.NewFromInt(100)
	adjustments := make([]QuoteAdjustment, 0, len(rates))
	for _, rate := range rates {
		if rate.RateTypeID != AdjustmentSalesTax {
			continue
		}
		amount := item.Quantity.Mul(item.UnitListPrice).Mul(rate.TaxPercentage).Div(hundred)
		adj, err := NewQuoteAdjustment(
			item.QuoteID,
			item.SeqID,
			AdjustmentSalesTax,
			amount,
			rate.TaxPercentage,
			fmt.Sprintf("Sales tax %s%%", rate.TaxPercentage.String()),
			false,
		)
		if err != nil {
			return nil, err
		}
		adjustments = append(adjustments, *adj)
	}
	return adjustments, nil
}
