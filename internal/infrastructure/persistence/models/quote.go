package models

import (
	"time"

	"github.com/bizerp/backend/internal/domain/quote"
	"github.com/bizerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteModel is the persistence model for the Quote entity.
type QuoteModel struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key"`
	QuoteNumber    string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	PartyID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductStoreID uuid.UUID         `gorm:"type:uuid;not null;index"`
	StatusID       quote.QuoteStatus `gorm:"type:varchar(20);not null;index"`
	IssueDate      time.Time         `gorm:"not null"`
	Items          []QuoteItemModel  `gorm:"foreignKey:QuoteID;references:ID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (QuoteModel) TableName() string {
	return "quotes"
}

// ToDomain converts the persistence model to a domain Quote entity.
func (m *QuoteModel) ToDomain() *quote.Quote {
	q := &quote.Quote{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		QuoteNumber:    m.QuoteNumber,
		PartyID:        m.PartyID,
		ProductStoreID: m.ProductStoreID,
		StatusID:       m.StatusID,
		IssueDate:      m.IssueDate,
		Items:          make([]quote.QuoteItem, len(m.Items)),
	}
	for i, item := range m.Items {
		q.Items[i] = *item.ToDomain()
	}
	return q
}

// FromDomain populates the persistence model from a domain Quote entity.
func (m *QuoteModel) FromDomain(q *quote.Quote) {
	m.ID = q.ID
	m.CreatedAt = q.CreatedAt
	m.UpdatedAt = q.UpdatedAt
	m.QuoteNumber = q.QuoteNumber
	m.PartyID = q.PartyID
	m.ProductStoreID = q.ProductStoreID
	m.StatusID = q.StatusID
	m.IssueDate = q.IssueDate
	m.Items = make([]QuoteItemModel, len(q.Items))
	for i, item := range q.Items {
		m.Items[i] = *QuoteItemModelFromDomain(&item)
	}
}

// QuoteModelFromDomain creates a new persistence model from a domain Quote.
func QuoteModelFromDomain(q *quote.Quote) *QuoteModel {
	m := &QuoteModel{}
	m.FromDomain(q)
	return m
}

// QuoteItemModel is the persistence model for QuoteItem.
type QuoteItemModel struct {
	QuoteID       uuid.UUID       `gorm:"type:uuid;primary_key"`
	SeqID         string          `gorm:"type:varchar(20);primary_key"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitListPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (QuoteItemModel) TableName() string {
	return "quote_items"
}

// ToDomain converts the persistence model to a domain QuoteItem.
func (m *QuoteItemModel) ToDomain() *quote.QuoteItem {
	return &quote.QuoteItem{
		QuoteID:       m.QuoteID,
		SeqID:         m.SeqID,
		ProductID:     m.ProductID,
		Quantity:      m.Quantity,
		UnitListPrice: m.UnitListPrice,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// QuoteItemModelFromDomain creates a new persistence model from domain.
func QuoteItemModelFromDomain(item *quote.QuoteItem) *QuoteItemModel {
	return &QuoteItemModel{
		QuoteID:       item.QuoteID,
		SeqID:         item.SeqID,
		ProductID:     item.ProductID,
		Quantity:      item.Quantity,
		UnitListPrice: item.UnitListPrice,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

// QuoteAdjustmentModel is the persistence model for QuoteAdjustment.
type QuoteAdjustmentModel struct {
	ID               uuid.UUID            `gorm:"type:uuid;primary_key"`
	AdjustmentNumber string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	QuoteID          uuid.UUID            `gorm:"type:uuid;not null;index"`
	QuoteItemSeqID   string               `gorm:"type:varchar(20);not null;index"`
	AdjustmentTypeID quote.AdjustmentType `gorm:"type:varchar(30);not null;index"`
	Amount           decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	SourcePercentage decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Description      string               `gorm:"type:varchar(200)"`
	IsManual         string               `gorm:"type:varchar(1);not null;default:'N'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName returns the table name for GORM
func (QuoteAdjustmentModel) TableName() string {
	return "quote_adjustments"
}

// ToDomain converts the persistence model to a domain QuoteAdjustment.
func (m *QuoteAdjustmentModel) ToDomain() *quote.QuoteAdjustment {
	return &quote.QuoteAdjustment{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		AdjustmentNumber: m.AdjustmentNumber,
		QuoteID:          m.QuoteID,
		QuoteItemSeqID:   m.QuoteItemSeqID,
		AdjustmentTypeID: m.AdjustmentTypeID,
		Amount:           m.Amount,
		SourcePercentage: m.SourcePercentage,
		Description:      m.Description,
		IsManual:         m.IsManual,
	}
}

// FromDomain populates the persistence model from a domain QuoteAdjustment.
func (m *QuoteAdjustmentModel) FromDomain(a *quote.QuoteAdjustment) {
	m.ID = a.ID
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
	m.AdjustmentNumber = a.AdjustmentNumber
	m.QuoteID = a.QuoteID
	m.QuoteItemSeqID = a.QuoteItemSeqID
	m.AdjustmentTypeID = a.AdjustmentTypeID
	m.Amount = a.Amount
	m.SourcePercentage = a.SourcePercentage
	m.Description = a.Description
	m.IsManual = a.IsManual
}

// QuoteAdjustmentModelFromDomain creates a new persistence model from domain.
func QuoteAdjustmentModelFromDomain(a *quote.QuoteAdjustment) *QuoteAdjustmentModel {
	m := &QuoteAdjustmentModel{}
	m.FromDomain(a)
	return m
}

// ProductStoreModel is the persistence model for ProductStore.
type ProductStoreModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key"`
	StoreName         string    `gorm:"type:varchar(200);not null"`
	VatTaxAuthGeoID   string    `gorm:"type:varchar(20)"`
	VatTaxAuthPartyID uuid.UUID `gorm:"type:uuid"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName returns the table name for GORM
func (ProductStoreModel) TableName() string {
	return "product_stores"
}

// ToDomain converts the persistence model to a domain ProductStore.
func (m *ProductStoreModel) ToDomain() *quote.ProductStore {
	return &quote.ProductStore{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		StoreName:         m.StoreName,
		VatTaxAuthGeoID:   m.VatTaxAuthGeoID,
		VatTaxAuthPartyID: m.VatTaxAuthPartyID,
	}
}

// PartyTaxAuthorityModel is the persistence model for PartyTaxAuthority.
type PartyTaxAuthorityModel struct {
	TaxAuthGeoID   string     `gorm:"type:varchar(20);primary_key"`
	TaxAuthPartyID uuid.UUID  `gorm:"type:uuid;primary_key"`
	FromDate       time.Time  `gorm:"primary_key"`
	ThruDate       *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (PartyTaxAuthorityModel) TableName() string {
	return "party_tax_authorities"
}

// ToDomain converts the persistence model to a domain PartyTaxAuthority.
func (m *PartyTaxAuthorityModel) ToDomain() *quote.PartyTaxAuthority {
	return &quote.PartyTaxAuthority{
		TaxAuthGeoID:   m.TaxAuthGeoID,
		TaxAuthPartyID: m.TaxAuthPartyID,
		FromDate:       m.FromDate,
		ThruDate:       m.ThruDate,
	}
}

// TaxAuthorityRateProductModel is the persistence model for
// TaxAuthorityRateProduct.
type TaxAuthorityRateProductModel struct {
	ID             uuid.UUID            `gorm:"type:uuid;primary_key"`
	TaxAuthGeoID   string               `gorm:"type:varchar(20);not null;index:idx_rate_auth"`
	TaxAuthPartyID uuid.UUID            `gorm:"type:uuid;not null;index:idx_rate_auth"`
	RateTypeID     quote.AdjustmentType `gorm:"type:varchar(30);not null"`
	Description    string               `gorm:"type:varchar(200)"`
	TaxPercentage  decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (TaxAuthorityRateProductModel) TableName() string {
	return "tax_authority_rate_products"
}

// ToDomain converts the persistence model to a domain rate.
func (m *TaxAuthorityRateProductModel) ToDomain() *quote.TaxAuthorityRateProduct {
	return &quote.TaxAuthorityRateProduct{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		TaxAuthGeoID:   m.TaxAuthGeoID,
		TaxAuthPartyID: m.TaxAuthPartyID,
		RateTypeID:     m.RateTypeID,
		Description:    m.Description,
		TaxPercentage:  m.TaxPercentage,
	}
}
