package models

import (
	"time"

	"github.com/bizerp/backend/internal/domain/accounting"
	"github.com/bizerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for the Payment entity.
type PaymentModel struct {
	ID                  uuid.UUID                `gorm:"type:uuid;primary_key"`
	PaymentNumber       string                   `gorm:"type:varchar(50);not null;uniqueIndex"`
	PaymentTypeID       accounting.PaymentType   `gorm:"type:varchar(30);not null;index"`
	StatusID            accounting.PaymentStatus `gorm:"type:varchar(20);not null;index"`
	PartyIDFrom         uuid.UUID                `gorm:"type:uuid;not null;index"`
	PartyIDTo           uuid.UUID                `gorm:"type:uuid;not null;index"`
	Amount              decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	PaymentMethodID     *uuid.UUID               `gorm:"type:uuid;index"`
	PaymentMethodTypeID string                   `gorm:"type:varchar(30)"`
	PaymentRefNum       string                   `gorm:"type:varchar(100)"`
	Comments            string                   `gorm:"type:text"`
	FinAccountTransID   *uuid.UUID               `gorm:"type:uuid;index"`
	EffectiveDate       time.Time                `gorm:"not null;index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *accounting.Payment {
	return &accounting.Payment{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		PaymentNumber:       m.PaymentNumber,
		PaymentTypeID:       m.PaymentTypeID,
		StatusID:            m.StatusID,
		PartyIDFrom:         m.PartyIDFrom,
		PartyIDTo:           m.PartyIDTo,
		Amount:              m.Amount,
		PaymentMethodID:     m.PaymentMethodID,
		PaymentMethodTypeID: m.PaymentMethodTypeID,
		PaymentRefNum:       m.PaymentRefNum,
		Comments:            m.Comments,
		FinAccountTransID:   m.FinAccountTransID,
		EffectiveDate:       m.EffectiveDate,
	}
}

// FromDomain populates the persistence model from a domain Payment.
func (m *PaymentModel) FromDomain(p *accounting.Payment) {
	m.ID = p.ID
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
	m.PaymentNumber = p.PaymentNumber
	m.PaymentTypeID = p.PaymentTypeID
	m.StatusID = p.StatusID
	m.PartyIDFrom = p.PartyIDFrom
	m.PartyIDTo = p.PartyIDTo
	m.Amount = p.Amount
	m.PaymentMethodID = p.PaymentMethodID
	m.PaymentMethodTypeID = p.PaymentMethodTypeID
	m.PaymentRefNum = p.PaymentRefNum
	m.Comments = p.Comments
	m.FinAccountTransID = p.FinAccountTransID
	m.EffectiveDate = p.EffectiveDate
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *accounting.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// PaymentMethodModel is the persistence model for PaymentMethod.
type PaymentMethodModel struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key"`
	PaymentMethodTypeID string     `gorm:"type:varchar(30);not null;index"`
	PartyID             uuid.UUID  `gorm:"type:uuid;not null;index"`
	Description         string     `gorm:"type:varchar(200)"`
	FinAccountID        *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName returns the table name for GORM
func (PaymentMethodModel) TableName() string {
	return "payment_methods"
}

// ToDomain converts the persistence model to a domain PaymentMethod.
func (m *PaymentMethodModel) ToDomain() *accounting.PaymentMethod {
	return &accounting.PaymentMethod{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		PaymentMethodTypeID: m.PaymentMethodTypeID,
		PartyID:             m.PartyID,
		Description:         m.Description,
		FinAccountID:        m.FinAccountID,
	}
}

// FromDomain populates the persistence model from a domain PaymentMethod.
func (m *PaymentMethodModel) FromDomain(pm *accounting.PaymentMethod) {
	m.ID = pm.ID
	m.CreatedAt = pm.CreatedAt
	m.UpdatedAt = pm.UpdatedAt
	m.PaymentMethodTypeID = pm.PaymentMethodTypeID
	m.PartyID = pm.PartyID
	m.Description = pm.Description
	m.FinAccountID = pm.FinAccountID
}

// PaymentMethodModelFromDomain creates a new persistence model from domain.
func PaymentMethodModelFromDomain(pm *accounting.PaymentMethod) *PaymentMethodModel {
	m := &PaymentMethodModel{}
	m.FromDomain(pm)
	return m
}

// FinAccountTranModel is the persistence model for FinAccountTran.
type FinAccountTranModel struct {
	ID              uuid.UUID                       `gorm:"type:uuid;primary_key"`
	FinAccountID    uuid.UUID                       `gorm:"type:uuid;not null;index"`
	TranTypeID      accounting.FinAccountTranType   `gorm:"type:varchar(20);not null"`
	StatusID        accounting.FinAccountTranStatus `gorm:"type:varchar(30);not null;index"`
	PartyID         uuid.UUID                       `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal                 `gorm:"type:decimal(18,4);not null"`
	PaymentID       *uuid.UUID                      `gorm:"type:uuid;uniqueIndex"`
	TransactionDate time.Time                       `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM
func (FinAccountTranModel) TableName() string {
	return "fin_account_trans"
}

// ToDomain converts the persistence model to a domain FinAccountTran.
func (m *FinAccountTranModel) ToDomain() *accounting.FinAccountTran {
	return &accounting.FinAccountTran{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		FinAccountID:    m.FinAccountID,
		TranTypeID:      m.TranTypeID,
		StatusID:        m.StatusID,
		PartyID:         m.PartyID,
		Amount:          m.Amount,
		PaymentID:       m.PaymentID,
		TransactionDate: m.TransactionDate,
	}
}

// FromDomain populates the persistence model from a domain FinAccountTran.
func (m *FinAccountTranModel) FromDomain(t *accounting.FinAccountTran) {
	m.ID = t.ID
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt
	m.FinAccountID = t.FinAccountID
	m.TranTypeID = t.TranTypeID
	m.StatusID = t.StatusID
	m.PartyID = t.PartyID
	m.Amount = t.Amount
	m.PaymentID = t.PaymentID
	m.TransactionDate = t.TransactionDate
}

// FinAccountTranModelFromDomain creates a new persistence model from domain.
func FinAccountTranModelFromDomain(t *accounting.FinAccountTran) *FinAccountTranModel {
	m := &FinAccountTranModel{}
	m.FromDomain(t)
	return m
}
