package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizerp/backend/internal/domain/quote"
	"github.com/bizerp/backend/internal/domain/shared"
	"github.com/bizerp/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormQuoteRepository implements quote.QuoteRepository using GORM
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GormQuoteRepository
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// FindByID finds a quote with its items
func (r *GormQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*quote.Quote, error) {
	var model models.QuoteModel
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a quote and its items
func (r *GormQuoteRepository) Save(ctx context.Context, q *quote.Quote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.QuoteModelFromDomain(q)
		items := model.Items
		model.Items = nil
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		for i := range items {
			if err := tx.Save(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindAdjustments returns every adjustment row for the quote
func (r *GormQuoteRepository) FindAdjustments(ctx context.Context, quoteID uuid.UUID) ([]quote.QuoteAdjustment, error) {
	var rows []models.QuoteAdjustmentModel
	if err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("created_at asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainAdjustments(rows), nil
}

// FindItemAdjustments returns the adjustment rows for one quote item
func (r *GormQuoteRepository) FindItemAdjustments(ctx context.Context, quoteID uuid.UUID, itemSeqID string) ([]quote.QuoteAdjustment, error) {
	var rows []models.QuoteAdjustmentModel
	if err := r.db.WithContext(ctx).
		Where("quote_id = ? AND quote_item_seq_id = ?", quoteID, itemSeqID).
		Order("created_at asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainAdjustments(rows), nil
}

// SaveAdjustments replaces the item's auto-computed adjustments of the
// types being written. Manually entered rows (IsManual = "Y") survive a
// recompute; only prior IsManual = "N" rows of the same type go. Rows
// without an adjustment number get one from the quote_adjustment
// sequence inside the same transaction.
func (r *GormQuoteRepository) SaveAdjustments(ctx context.Context, quoteID uuid.UUID, itemSeqID string, adjustments []quote.QuoteAdjustment) error {
	if len(adjustments) == 0 {
		return nil
	}
	types := make([]quote.AdjustmentType, 0, len(adjustments))
	seen := make(map[quote.AdjustmentType]bool)
	for i := range adjustments {
		if t := adjustments[i].AdjustmentTypeID; !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(
			"quote_id = ? AND quote_item_seq_id = ? AND adjustment_type_id IN ? AND is_manual = ?",
			quoteID, itemSeqID, types, "N",
		).Delete(&models.QuoteAdjustmentModel{}).Error; err != nil {
			return err
		}
		for i := range adjustments {
			if adjustments[i].AdjustmentNumber == "" {
				seq, err := nextSequenceValue(tx, shared.SequenceQuoteAdjustment)
				if err != nil {
					return err
				}
				adjustments[i].AdjustmentNumber = fmt.Sprintf("QA%06d", seq)
			}
			if err := tx.Create(models.QuoteAdjustmentModelFromDomain(&adjustments[i])).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SumAdjustments aggregates the quote's adjustment amounts. Totals are
// never stored; this is the read-time aggregate.
func (r *GormQuoteRepository) SumAdjustments(ctx context.Context, quoteID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.QuoteAdjustmentModel{}).
		Where("quote_id = ?", quoteID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func toDomainAdjustments(rows []models.QuoteAdjustmentModel) []quote.QuoteAdjustment {
	adjustments := make([]quote.QuoteAdjustment, len(rows))
	for i := range rows {
		adjustments[i] = *rows[i].ToDomain()
	}
	return adjustments
}

// Ensure GormQuoteRepository implements the interface
var _ quote.QuoteRepository = (*GormQuoteRepository)(nil)

// GormTaxConfigRepository implements quote.TaxConfigRepository
type GormTaxConfigRepository struct {
	db *gorm.DB
}

// NewGormTaxConfigRepository creates a new GormTaxConfigRepository
func NewGormTaxConfigRepository(db *gorm.DB) *GormTaxConfigRepository {
	return &GormTaxConfigRepository{db: db}
}

// FindProductStore finds a product store by ID
func (r *GormTaxConfigRepository) FindProductStore(ctx context.Context, id uuid.UUID) (*quote.ProductStore, error) {
	var model models.ProductStoreModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveTaxAuthority returns the open-ended registration for the
// geo/party pair. Expired registrations (ThruDate set) never match.
func (r *GormTaxConfigRepository) FindActiveTaxAuthority(ctx context.Context, geoID string, partyID uuid.UUID) (*quote.PartyTaxAuthority, error) {
	var model models.PartyTaxAuthorityModel
	err := r.db.WithContext(ctx).
		Where("tax_auth_geo_id = ? AND tax_auth_party_id = ? AND thru_date IS NULL", geoID, partyID).
		Order("from_date desc").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindRateProducts returns the rate rows an authority applies
func (r *GormTaxConfigRepository) FindRateProducts(ctx context.Context, geoID string, partyID uuid.UUID) ([]quote.TaxAuthorityRateProduct, error) {
	var rows []models.TaxAuthorityRateProductModel
	if err := r.db.WithContext(ctx).
		Where("tax_auth_geo_id = ? AND tax_auth_party_id = ?", geoID, partyID).
		Order("created_at asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	rates := make([]quote.TaxAuthorityRateProduct, len(rows))
	for i := range rows {
		rates[i] = *rows[i].ToDomain()
	}
	return rates, nil
}

// Ensure GormTaxConfigRepository implements the interface
var _ quote.TaxConfigRepository = (*GormTaxConfigRepository)(nil)
