package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizerp/backend/internal/domain/accounting"
	"github.com/bizerp/backend/internal/domain/order"
	"github.com/bizerp/backend/internal/domain/shared"
	"github.com/bizerp/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentPlanRepository implements order.PaymentPlanRepository using GORM
type GormPaymentPlanRepository struct {
	db *gorm.DB
}

// NewGormPaymentPlanRepository creates a new GormPaymentPlanRepository
func NewGormPaymentPlanRepository(db *gorm.DB) *GormPaymentPlanRepository {
	return &GormPaymentPlanRepository{db: db}
}

// FindPreferencesByOrder returns every preference snapshot for the order,
// oldest first
func (r *GormPaymentPlanRepository) FindPreferencesByOrder(ctx context.Context, orderID uuid.UUID) ([]order.PaymentPreference, error) {
	var rows []models.PaymentPreferenceModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("snapshot_seq asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	prefs := make([]order.PaymentPreference, len(rows))
	for i := range rows {
		prefs[i] = *rows[i].ToDomain()
	}
	return prefs, nil
}

// FindCurrentPreference returns the snapshot with the highest sequence
// for the order, or nil when the order has none
func (r *GormPaymentPlanRepository) FindCurrentPreference(ctx context.Context, orderID uuid.UUID) (*order.PaymentPreference, error) {
	var model models.PaymentPreferenceModel
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("snapshot_seq desc").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindStatusesByOrder returns the order's status history, oldest first
func (r *GormPaymentPlanRepository) FindStatusesByOrder(ctx context.Context, orderID uuid.UUID) ([]order.OrderStatus, error) {
	var rows []models.OrderStatusModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("status_datetime asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	statuses := make([]order.OrderStatus, len(rows))
	for i := range rows {
		statuses[i] = *rows[i].ToDomain()
	}
	return statuses, nil
}

// FindPaymentsByOrder returns the payments referenced by the order's
// preference snapshots
func (r *GormPaymentPlanRepository) FindPaymentsByOrder(ctx context.Context, orderID uuid.UUID) ([]accounting.Payment, error) {
	var rows []models.PaymentModel
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Model(&models.PaymentPreferenceModel{}).
			Select("payment_id").
			Where("order_id = ?", orderID)).
		Order("created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	payments := make([]accounting.Payment, len(rows))
	for i := range rows {
		payments[i] = *rows[i].ToDomain()
	}
	return payments, nil
}

// Apply executes the reconciliation plan in one database transaction.
// Removed payments lose their preference snapshots and the status rows
// tied to them. Replacements wipe the order's prior snapshots once and
// insert fresh ones. Sequence values for payment numbers and snapshot
// sequences are issued inside the transaction so a rollback leaves no
// gaps visible to readers.
func (r *GormPaymentPlanRepository) Apply(ctx context.Context, plan order.ReconciliationPlan) error {
	if plan.IsEmpty() {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, paymentID := range plan.DeletePaymentIDs {
			if err := deleteOrderPayment(tx, plan.OrderID, paymentID); err != nil {
				return err
			}
		}

		if len(plan.Replacements) > 0 {
			if err := tx.Where(
				"order_id = ? AND preference_id IS NOT NULL", plan.OrderID,
			).Delete(&models.OrderStatusModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("order_id = ?", plan.OrderID).
				Delete(&models.PaymentPreferenceModel{}).Error; err != nil {
				return err
			}
			for i := range plan.Replacements {
				if err := insertAttachment(tx, &plan.Replacements[i], false); err != nil {
					return err
				}
			}
		}

		for i := range plan.Additions {
			if err := insertAttachment(tx, &plan.Additions[i], true); err != nil {
				return err
			}
		}

		if plan.MaxAmount != nil {
			if err := bumpCurrentMaxAmount(tx, plan.OrderID, plan); err != nil {
				return err
			}
		}
		return nil
	})
}

// deleteOrderPayment removes one payment from an order: status rows tied
// to its preference snapshots, the snapshots themselves, then the
// payment row.
func deleteOrderPayment(tx *gorm.DB, orderID, paymentID uuid.UUID) error {
	var prefIDs []uuid.UUID
	if err := tx.Model(&models.PaymentPreferenceModel{}).
		Where("order_id = ? AND payment_id = ?", orderID, paymentID).
		Pluck("id", &prefIDs).Error; err != nil {
		return err
	}
	if len(prefIDs) > 0 {
		if err := tx.Where("preference_id IN ?", prefIDs).
			Delete(&models.OrderStatusModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", prefIDs).
			Delete(&models.PaymentPreferenceModel{}).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&models.PaymentModel{}, "id = ?", paymentID).Error
}

// insertAttachment persists one payment with its preference snapshot and
// status row. New payments get a number from the payment sequence; every
// snapshot gets the next preference sequence value.
func insertAttachment(tx *gorm.DB, att *order.PaymentAttachment, newPayment bool) error {
	if newPayment {
		seq, err := nextSequenceValue(tx, shared.SequencePayment)
		if err != nil {
			return err
		}
		att.Payment.PaymentNumber = fmt.Sprintf("P%06d", seq)
		if err := tx.Create(models.PaymentModelFromDomain(att.Payment)).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Save(models.PaymentModelFromDomain(att.Payment)).Error; err != nil {
			return err
		}
	}

	seq, err := nextSequenceValue(tx, shared.SequencePaymentPreference)
	if err != nil {
		return err
	}
	att.Preference.SnapshotSeq = seq
	if err := tx.Create(models.PaymentPreferenceModelFromDomain(att.Preference)).Error; err != nil {
		return err
	}

	if att.Status != nil {
		att.Status.AttachPreference(att.Preference.ID)
		if err := tx.Create(models.OrderStatusModelFromDomain(att.Status)).Error; err != nil {
			return err
		}
	}
	return nil
}

// bumpCurrentMaxAmount raises the cap on the order's latest snapshot
func bumpCurrentMaxAmount(tx *gorm.DB, orderID uuid.UUID, plan order.ReconciliationPlan) error {
	var model models.PaymentPreferenceModel
	err := tx.Where("order_id = ?", orderID).
		Order("snapshot_seq desc").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewDomainError("PAYMENT_PREFERENCE_NOT_FOUND",
				"order has no payment preference to adjust")
		}
		return err
	}
	return tx.Model(&models.PaymentPreferenceModel{}).
		Where("id = ?", model.ID).
		Update("max_amount", *plan.MaxAmount).Error
}

// Ensure GormPaymentPlanRepository implements the interface
var _ order.PaymentPlanRepository = (*GormPaymentPlanRepository)(nil)
