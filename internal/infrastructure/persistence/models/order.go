package models

import (
	"time"

	"github.com/bizerp/backend/internal/domain/order"
	"github.com/bizerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentPreferenceModel is the persistence model for PaymentPreference.
// Snapshots are append-only; SnapshotSeq orders them per order.
type PaymentPreferenceModel struct {
	ID                  uuid.UUID              `gorm:"type:uuid;primary_key"`
	OrderID             uuid.UUID              `gorm:"type:uuid;not null;index"`
	PaymentID           uuid.UUID              `gorm:"type:uuid;not null;index"`
	PaymentMethodTypeID string                 `gorm:"type:varchar(30)"`
	StatusID            order.PreferenceStatus `gorm:"type:varchar(30);not null;index"`
	MaxAmount           decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	SnapshotSeq         int64                  `gorm:"not null;uniqueIndex:idx_pref_order_seq,priority:2"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName returns the table name for GORM
func (PaymentPreferenceModel) TableName() string {
	return "order_payment_preferences"
}

// ToDomain converts the persistence model to a domain PaymentPreference.
func (m *PaymentPreferenceModel) ToDomain() *order.PaymentPreference {
	return &order.PaymentPreference{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		OrderID:             m.OrderID,
		PaymentID:           m.PaymentID,
		PaymentMethodTypeID: m.PaymentMethodTypeID,
		StatusID:            m.StatusID,
		MaxAmount:           m.MaxAmount,
		SnapshotSeq:         m.SnapshotSeq,
	}
}

// FromDomain populates the persistence model from a domain PaymentPreference.
func (m *PaymentPreferenceModel) FromDomain(p *order.PaymentPreference) {
	m.ID = p.ID
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
	m.OrderID = p.OrderID
	m.PaymentID = p.PaymentID
	m.PaymentMethodTypeID = p.PaymentMethodTypeID
	m.StatusID = p.StatusID
	m.MaxAmount = p.MaxAmount
	m.SnapshotSeq = p.SnapshotSeq
}

// PaymentPreferenceModelFromDomain creates a new persistence model from domain.
func PaymentPreferenceModelFromDomain(p *order.PaymentPreference) *PaymentPreferenceModel {
	m := &PaymentPreferenceModel{}
	m.FromDomain(p)
	return m
}

// OrderStatusModel is the persistence model for OrderStatus.
type OrderStatusModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key"`
	OrderID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	PreferenceID   *uuid.UUID `gorm:"type:uuid;index"`
	StatusID       string     `gorm:"type:varchar(40);not null;index"`
	StatusDatetime time.Time  `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (OrderStatusModel) TableName() string {
	return "order_statuses"
}

// ToDomain converts the persistence model to a domain OrderStatus.
func (m *OrderStatusModel) ToDomain() *order.OrderStatus {
	return &order.OrderStatus{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		OrderID:        m.OrderID,
		PreferenceID:   m.PreferenceID,
		StatusID:       m.StatusID,
		StatusDatetime: m.StatusDatetime,
	}
}

// FromDomain populates the persistence model from a domain OrderStatus.
func (m *OrderStatusModel) FromDomain(s *order.OrderStatus) {
	m.ID = s.ID
	m.CreatedAt = s.CreatedAt
	m.UpdatedAt = s.UpdatedAt
	m.OrderID = s.OrderID
	m.PreferenceID = s.PreferenceID
	m.StatusID = s.StatusID
	m.StatusDatetime = s.StatusDatetime
}

// OrderStatusModelFromDomain creates a new persistence model from domain.
func OrderStatusModelFromDomain(s *order.OrderStatus) *OrderStatusModel {
	m := &OrderStatusModel{}
	m.FromDomain(s)
	return m
}
