package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizerp/backend/internal/domain/accounting"
	"github.com/bizerp/backend/internal/domain/shared"
	"github.com/bizerp/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentRepository implements accounting.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a payment by its payment number
func (r *GormPaymentRepository) FindByNumber(ctx context.Context, paymentNumber string) (*accounting.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "payment_number = ?", paymentNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds payments with filtering and pagination
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]accounting.Payment, error) {
	var rows []models.PaymentModel
	query := applyPaymentFilters(r.db.WithContext(ctx), filter)

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if filter.Page > 0 {
			query = query.Offset((filter.Page - 1) * filter.PageSize)
		}
	}
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	dir := filter.OrderDir
	if dir != "asc" {
		dir = "desc"
	}
	if err := query.Order(orderBy + " " + dir).Find(&rows).Error; err != nil {
		return nil, err
	}

	payments := make([]accounting.Payment, len(rows))
	for i := range rows {
		payments[i] = *rows[i].ToDomain()
	}
	return payments, nil
}

// Count counts payments matching the filter
func (r *GormPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyPaymentFilters(r.db.WithContext(ctx).Model(&models.PaymentModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applyPaymentFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = query.Model(&models.PaymentModel{})
	if v, ok := filter.Filters["status"]; ok {
		query = query.Where("status_id = ?", v)
	}
	if v, ok := filter.Filters["payment_type"]; ok {
		query = query.Where("payment_type_id = ?", v)
	}
	if v, ok := filter.Filters["party_id_from"]; ok {
		query = query.Where("party_id_from = ?", v)
	}
	if v, ok := filter.Filters["party_id_to"]; ok {
		query = query.Where("party_id_to = ?", v)
	}
	if v, ok := filter.Filters["from_date"]; ok {
		query = query.Where("effective_date >= ?", v)
	}
	if v, ok := filter.Filters["to_date"]; ok {
		query = query.Where("effective_date <= ?", v)
	}
	return query
}

// CreatePosted persists the payment with its optional financial-account
// transaction in one database transaction. The transaction row goes in
// first; its PaymentID is back-filled once the payment row exists.
func (r *GormPaymentRepository) CreatePosted(ctx context.Context, payment *accounting.Payment, tran *accounting.FinAccountTran) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := nextSequenceValue(tx, shared.SequencePayment)
		if err != nil {
			return err
		}
		payment.PaymentNumber = fmt.Sprintf("P%06d", seq)

		if tran != nil {
			if err := tx.Create(models.FinAccountTranModelFromDomain(tran)).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(models.PaymentModelFromDomain(payment)).Error; err != nil {
			return err
		}

		if tran != nil {
			tran.AttachPayment(payment.ID)
			if err := tx.Model(&models.FinAccountTranModel{}).
				Where("id = ?", tran.ID).
				Update("payment_id", payment.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SavePosted persists an updated payment and applies the posting plan
// atomically
func (r *GormPaymentRepository) SavePosted(ctx context.Context, payment *accounting.Payment, plan accounting.PostingPlan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if plan.CreateTran != nil {
			if err := tx.Create(models.FinAccountTranModelFromDomain(plan.CreateTran)).Error; err != nil {
				return err
			}
		}
		if plan.UpdateTran != nil {
			if err := tx.Save(models.FinAccountTranModelFromDomain(plan.UpdateTran)).Error; err != nil {
				return err
			}
		}
		if plan.DeleteTranID != nil {
			if err := tx.Delete(&models.FinAccountTranModel{}, "id = ?", *plan.DeleteTranID).Error; err != nil {
				return err
			}
		}
		return tx.Save(models.PaymentModelFromDomain(payment)).Error
	})
}

// Save creates or updates a payment row alone
func (r *GormPaymentRepository) Save(ctx context.Context, payment *accounting.Payment) error {
	return r.db.WithContext(ctx).Save(models.PaymentModelFromDomain(payment)).Error
}

// Delete removes a payment row
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.PaymentModel{}, "id = ?", id).Error
}

// Ensure GormPaymentRepository implements the interface
var _ accounting.PaymentRepository = (*GormPaymentRepository)(nil)

// GormFinAccountTranRepository implements accounting.FinAccountTranRepository
type GormFinAccountTranRepository struct {
	db *gorm.DB
}

// NewGormFinAccountTranRepository creates a new GormFinAccountTranRepository
func NewGormFinAccountTranRepository(db *gorm.DB) *GormFinAccountTranRepository {
	return &GormFinAccountTranRepository{db: db}
}

// FindByID finds a financial-account transaction by ID
func (r *GormFinAccountTranRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.FinAccountTran, error) {
	var model models.FinAccountTranModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPaymentID finds the transaction posted for a payment, if any.
// At most one exists per payment.
func (r *GormFinAccountTranRepository) FindByPaymentID(ctx context.Context, paymentID uuid.UUID) (*accounting.FinAccountTran, error) {
	var model models.FinAccountTranModel
	if err := r.db.WithContext(ctx).First(&model, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormFinAccountTranRepository implements the interface
var _ accounting.FinAccountTranRepository = (*GormFinAccountTranRepository)(nil)

// GormPaymentMethodRepository implements accounting.PaymentMethodRepository
type GormPaymentMethodRepository struct {
	db *gorm.DB
}

// NewGormPaymentMethodRepository creates a new GormPaymentMethodRepository
func NewGormPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

// FindByID finds a payment method by ID. A missing method returns
// (nil, nil); callers treat that as the unlinked posting path, not an
// error.
func (r *GormPaymentMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.PaymentMethod, error) {
	var model models.PaymentMethodModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a payment method
func (r *GormPaymentMethodRepository) Save(ctx context.Context, method *accounting.PaymentMethod) error {
	return r.db.WithContext(ctx).Save(models.PaymentMethodModelFromDomain(method)).Error
}

// Ensure GormPaymentMethodRepository implements the interface
var _ accounting.PaymentMethodRepository = (*GormPaymentMethodRepository)(nil)
