package order

import (
	"context"
	"time"

	"github.com/bizerp/backend/internal/domain/accounting"
	"github.com/bizerp/backend/internal/domain/order"
	"github.com/bizerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderPaymentService reconciles an order's payment plan against a
// desired set of payments
type OrderPaymentService struct {
	planRepo    order.PaymentPlanRepository
	paymentRepo accounting.PaymentRepository
}

// NewOrderPaymentService creates a new OrderPaymentService
func NewOrderPaymentService(
	planRepo order.PaymentPlanRepository,
	paymentRepo accounting.PaymentRepository,
) *OrderPaymentService {
	return &OrderPaymentService{
		planRepo:    planRepo,
		paymentRepo: paymentRepo,
	}
}

// PaymentInput is one desired payment line in a reconcile request. A
// nil PaymentID marks a payment new to the order.
type PaymentInput struct {
	PaymentID           *uuid.UUID      `json:"payment_id"`
	Deleted             bool            `json:"deleted"`
	PaymentTypeID       string          `json:"payment_type_id"`
	PaymentMethodTypeID string          `json:"payment_method_type_id"`
	PartyIDFrom         uuid.UUID       `json:"party_id_from"`
	PartyIDTo           uuid.UUID       `json:"party_id_to"`
	Amount              decimal.Decimal `json:"amount"`
	MaxAmount           decimal.Decimal `json:"max_amount"`
	PaymentRefNum       string          `json:"payment_ref_num"`
	Comments            string          `json:"comments"`
	EffectiveDate       time.Time       `json:"effective_date"`
}

// ReconcileRequest carries the desired payment set for an order. An
// empty set with MaxAmount set only bumps the current preference cap.
type ReconcileRequest struct {
	Payments  []PaymentInput   `json:"payments"`
	MaxAmount *decimal.Decimal `json:"max_amount"`
}

// PreferenceResponse represents a preference snapshot in API responses
type PreferenceResponse struct {
	ID                  uuid.UUID       `json:"id"`
	OrderID             uuid.UUID       `json:"order_id"`
	PaymentID           uuid.UUID       `json:"payment_id"`
	PaymentMethodTypeID string          `json:"payment_method_type_id"`
	StatusID            string          `json:"status_id"`
	MaxAmount           decimal.Decimal `json:"max_amount"`
	SnapshotSeq         int64           `json:"snapshot_seq"`
	CreatedAt           time.Time       `json:"created_at"`
}

// OrderStatusResponse represents an order status row in API responses
type OrderStatusResponse struct {
	ID             uuid.UUID  `json:"id"`
	OrderID        uuid.UUID  `json:"order_id"`
	PreferenceID   *uuid.UUID `json:"preference_id,omitempty"`
	StatusID       string     `json:"status_id"`
	StatusDatetime time.Time  `json:"status_datetime"`
}

// PaymentPlanResponse is the full payment plan of an order: the current
// snapshot, the snapshot history and the status trail.
type PaymentPlanResponse struct {
	OrderID    uuid.UUID             `json:"order_id"`
	Current    *PreferenceResponse   `json:"current,omitempty"`
	History    []PreferenceResponse  `json:"history"`
	Statuses   []OrderStatusResponse `json:"statuses"`
	PaymentIDs []uuid.UUID           `json:"payment_ids"`
}

// Reconcile applies the desired payment set to the order in one
// database transaction. Deleted lines take their preference snapshots,
// status rows and payment with them; edited lines retire the order's
// prior snapshots and insert fresh sequence-numbered ones; new lines
// mint both a payment and a snapshot. An empty set only bumps the
// current snapshot's MaxAmount.
func (s *OrderPaymentService) Reconcile(ctx context.Context, orderID uuid.UUID, req ReconcileRequest) (*PaymentPlanResponse, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order is required")
	}

	plan := order.ReconciliationPlan{OrderID: orderID}

	if len(req.Payments) == 0 {
		if req.MaxAmount == nil {
			return nil, shared.NewDomainError("INVALID_INPUT",
				"Empty payment set requires a max amount to adjust")
		}
		if req.MaxAmount.IsNegative() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Max amount cannot be negative")
		}
		plan.MaxAmount = req.MaxAmount
		if err := s.planRepo.Apply(ctx, plan); err != nil {
			return nil, err
		}
		return s.GetOrderPaymentPlan(ctx, orderID)
	}

	for _, input := range req.Payments {
		switch {
		case input.Deleted:
			if input.PaymentID == nil {
				return nil, shared.NewDomainError("INVALID_INPUT",
					"Deleted payment line must reference a payment")
			}
			existing, err := s.paymentRepo.FindByID(ctx, *input.PaymentID)
			if err != nil {
				return nil, err
			}
			if existing == nil {
				return nil, shared.NewDomainError("NOT_FOUND", "Payment not found")
			}
			plan.DeletePaymentIDs = append(plan.DeletePaymentIDs, existing.ID)

		case input.PaymentID != nil:
			existing, err := s.paymentRepo.FindByID(ctx, *input.PaymentID)
			if err != nil {
				return nil, err
			}
			if existing == nil {
				return nil, shared.NewDomainError("NOT_FOUND", "Payment not found")
			}
			attachment, err := s.buildAttachment(orderID, existing, input, true)
			if err != nil {
				return nil, err
			}
			plan.Replacements = append(plan.Replacements, *attachment)

		default:
			payment, err := accounting.NewPayment(
				accounting.PaymentType(input.PaymentTypeID),
				input.PartyIDFrom, input.PartyIDTo,
				input.Amount, input.EffectiveDate,
			)
			if err != nil {
				return nil, err
			}
			payment.PaymentMethodTypeID = input.PaymentMethodTypeID
			payment.PaymentRefNum = input.PaymentRefNum
			payment.Comments = input.Comments

			attachment, err := s.buildAttachment(orderID, payment, input, false)
			if err != nil {
				return nil, err
			}
			plan.Additions = append(plan.Additions, *attachment)
		}
	}

	if err := s.planRepo.Apply(ctx, plan); err != nil {
		return nil, err
	}
	return s.GetOrderPaymentPlan(ctx, orderID)
}

// buildAttachment pairs a payment with a fresh preference snapshot and
// not-received status row. For an edited payment the mutable fields are
// replaced first.
func (s *OrderPaymentService) buildAttachment(orderID uuid.UUID, payment *accounting.Payment, input PaymentInput, edit bool) (*order.PaymentAttachment, error) {
	if edit {
		if err := payment.UpdateDetails(
			accounting.PaymentType(input.PaymentTypeID),
			input.Amount, input.EffectiveDate,
			input.PaymentRefNum, input.Comments,
		); err != nil {
			return nil, err
		}
		payment.PaymentMethodTypeID = input.PaymentMethodTypeID
	}

	pref, err := order.NewPaymentPreference(orderID, payment.ID, input.PaymentMethodTypeID, input.MaxAmount)
	if err != nil {
		return nil, err
	}
	status, err := order.NewOrderStatus(orderID, order.OrderStatusPaymentNotReceived)
	if err != nil {
		return nil, err
	}
	return &order.PaymentAttachment{
		Payment:    payment,
		Preference: pref,
		Status:     status,
	}, nil
}

// GetOrderPaymentPlan returns the order's current snapshot, the full
// snapshot history and the status trail
func (s *OrderPaymentService) GetOrderPaymentPlan(ctx context.Context, orderID uuid.UUID) (*PaymentPlanResponse, error) {
	prefs, err := s.planRepo.FindPreferencesByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	statuses, err := s.planRepo.FindStatusesByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	payments, err := s.planRepo.FindPaymentsByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	resp := &PaymentPlanResponse{
		OrderID:  orderID,
		History:  make([]PreferenceResponse, len(prefs)),
		Statuses: make([]OrderStatusResponse, len(statuses)),
	}
	for i := range prefs {
		resp.History[i] = toPreferenceResponse(&prefs[i])
	}
	current, err := s.planRepo.FindCurrentPreference(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if current != nil {
		cur := toPreferenceResponse(current)
		resp.Current = &cur
	}
	for i := range statuses {
		resp.Statuses[i] = OrderStatusResponse{
			ID:             statuses[i].ID,
			OrderID:        statuses[i].OrderID,
			PreferenceID:   statuses[i].PreferenceID,
			StatusID:       statuses[i].StatusID,
			StatusDatetime: statuses[i].StatusDatetime,
		}
	}
	resp.PaymentIDs = make([]uuid.UUID, len(payments))
	for i := range payments {
		resp.PaymentIDs[i] = payments[i].ID
	}
	return resp, nil
}

func toPreferenceResponse(p *order.PaymentPreference) PreferenceResponse {
	return PreferenceResponse{
		ID:                  p.ID,
		OrderID:             p.OrderID,
		PaymentID:           p.PaymentID,
		PaymentMethodTypeID: p.PaymentMethodTypeID,
		StatusID:            string(p.StatusID),
		MaxAmount:           p.MaxAmount,
		SnapshotSeq:         p.SnapshotSeq,
		CreatedAt:           p.CreatedAt,
	}
}
