package accounting

import (
	"context"
	"time"

	"github.com/bizerp/backend/internal/domain/accounting"
	"github.com/bizerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentService provides application-level payment posting operations
type PaymentService struct {
	paymentRepo accounting.PaymentRepository
	methodRepo  accounting.PaymentMethodRepository
	tranRepo    accounting.FinAccountTranRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo accounting.PaymentRepository,
	methodRepo accounting.PaymentMethodRepository,
	tranRepo accounting.FinAccountTranRepository,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		methodRepo:  methodRepo,
		tranRepo:    tranRepo,
	}
}

// CreatePaymentRequest carries the fields needed to post a payment
type CreatePaymentRequest struct {
	PaymentTypeID   string          `json:"payment_type_id" binding:"required"`
	PartyIDFrom     uuid.UUID       `json:"party_id_from" binding:"required"`
	PartyIDTo       uuid.UUID       `json:"party_id_to" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethodID *uuid.UUID      `json:"payment_method_id"`
	PaymentRefNum   string          `json:"payment_ref_num"`
	Comments        string          `json:"comments"`
	EffectiveDate   time.Time       `json:"effective_date"`
}

// UpdatePaymentRequest carries the mutable payment fields
type UpdatePaymentRequest struct {
	PaymentTypeID   string          `json:"payment_type_id" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethodID *uuid.UUID      `json:"payment_method_id"`
	PaymentRefNum   string          `json:"payment_ref_num"`
	Comments        string          `json:"comments"`
	EffectiveDate   time.Time       `json:"effective_date"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID                  uuid.UUID       `json:"id"`
	PaymentNumber       string          `json:"payment_number"`
	PaymentTypeID       string          `json:"payment_type_id"`
	StatusID            string          `json:"status_id"`
	PartyIDFrom         uuid.UUID       `json:"party_id_from"`
	PartyIDTo           uuid.UUID       `json:"party_id_to"`
	Amount              decimal.Decimal `json:"amount"`
	PaymentMethodID     *uuid.UUID      `json:"payment_method_id,omitempty"`
	PaymentMethodTypeID string          `json:"payment_method_type_id,omitempty"`
	PaymentRefNum       string          `json:"payment_ref_num,omitempty"`
	Comments            string          `json:"comments,omitempty"`
	FinAccountTransID   *uuid.UUID      `json:"fin_account_trans_id,omitempty"`
	EffectiveDate       time.Time       `json:"effective_date"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// PaymentListFilter defines filtering options for payment list queries
type PaymentListFilter struct {
	Status      string     `form:"status"`
	PaymentType string     `form:"payment_type"`
	PartyIDFrom *uuid.UUID `form:"party_id_from"`
	PartyIDTo   *uuid.UUID `form:"party_id_to"`
	FromDate    *time.Time `form:"from_date"`
	ToDate      *time.Time `form:"to_date"`
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
}

// CreatePayment posts a new payment. When the referenced method is
// linked to a financial account, the matching deposit or withdrawal is
// created in the same database transaction; an absent method skips
// account posting and is a valid path, not an error.
func (s *PaymentService) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error) {
	payment, err := accounting.NewPayment(
		accounting.PaymentType(req.PaymentTypeID),
		req.PartyIDFrom, req.PartyIDTo,
		req.Amount, req.EffectiveDate,
	)
	if err != nil {
		return nil, err
	}
	payment.PaymentRefNum = req.PaymentRefNum
	payment.Comments = req.Comments

	var tran *accounting.FinAccountTran
	if req.PaymentMethodID != nil {
		method, err := s.methodRepo.FindByID(ctx, *req.PaymentMethodID)
		if err != nil {
			return nil, err
		}
		if method != nil {
			payment.SetPaymentMethod(method.ID, method.PaymentMethodTypeID)
			if method.IsAccountLinked() {
				tran, err = s.buildTran(payment, *method.FinAccountID)
				if err != nil {
					return nil, err
				}
				payment.LinkFinAccountTrans(tran.ID)
			}
		}
	}

	if err := s.paymentRepo.CreatePosted(ctx, payment, tran); err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// UpdatePayment replaces the mutable fields of a payment and keeps its
// financial-account posting consistent: an existing transaction is
// repriced in place, a newly account-linked method gets a fresh one,
// and a stale transaction left by a previously linked method is
// removed. All of it commits or rolls back as one transaction.
func (s *PaymentService) UpdatePayment(ctx context.Context, id uuid.UUID, req UpdatePaymentRequest) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Payment not found")
	}

	tran, err := s.tranRepo.FindByPaymentID(ctx, payment.ID)
	if err != nil {
		return nil, err
	}

	var method *accounting.PaymentMethod
	if req.PaymentMethodID != nil {
		method, err = s.methodRepo.FindByID(ctx, *req.PaymentMethodID)
		if err != nil {
			return nil, err
		}
	}

	if err := payment.UpdateDetails(
		accounting.PaymentType(req.PaymentTypeID),
		req.Amount, req.EffectiveDate,
		req.PaymentRefNum, req.Comments,
	); err != nil {
		return nil, err
	}

	if method != nil {
		payment.SetPaymentMethod(method.ID, method.PaymentMethodTypeID)
	} else {
		payment.ClearPaymentMethod()
	}

	linked := method != nil && method.IsAccountLinked()
	var plan accounting.PostingPlan
	switch {
	case tran != nil && linked:
		direction, ok := accounting.ClassifyPaymentType(payment.PaymentTypeID)
		if !ok {
			return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE",
				"Payment type cannot be posted against a financial account")
		}
		party := payment.PartyIDFrom
		if direction == accounting.DirectionOutgoing {
			party = payment.PartyIDTo
		}
		if err := tran.Reprice(payment.Amount, party, payment.EffectiveDate); err != nil {
			return nil, err
		}
		payment.LinkFinAccountTrans(tran.ID)
		plan.UpdateTran = tran

	case tran == nil && linked:
		created, err := s.buildTran(payment, *method.FinAccountID)
		if err != nil {
			return nil, err
		}
		created.AttachPayment(payment.ID)
		payment.LinkFinAccountTrans(created.ID)
		plan.CreateTran = created

	case tran != nil && !linked:
		id := tran.ID
		plan.DeleteTranID = &id
		payment.UnlinkFinAccountTrans()
	}

	if err := s.paymentRepo.SavePosted(ctx, payment, plan); err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// SetPaymentStatus moves a payment along the status graph. An unknown
// target status yields STATUS_DESCRIPTION_NOT_FOUND; an off-graph
// transition yields INVALID_STATE.
func (s *PaymentService) SetPaymentStatus(ctx context.Context, id uuid.UUID, statusID string) (*PaymentResponse, error) {
	status := accounting.PaymentStatus(statusID)
	if !status.IsValid() {
		return nil, shared.NewDomainError("STATUS_DESCRIPTION_NOT_FOUND",
			"Unknown payment status "+statusID)
	}

	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Payment not found")
	}

	if err := payment.ChangeStatus(status); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// GetPayment returns a single payment
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Payment not found")
	}
	return toPaymentResponse(payment), nil
}

// GetPaymentByNumber returns a single payment looked up by its
// formatted payment number
func (s *PaymentService) GetPaymentByNumber(ctx context.Context, paymentNumber string) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByNumber(ctx, paymentNumber)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Payment not found")
	}
	return toPaymentResponse(payment), nil
}

// ListPayments lists payments with filtering and pagination
func (s *PaymentService) ListPayments(ctx context.Context, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.PaymentType != "" {
		domainFilter.Filters["payment_type"] = filter.PaymentType
	}
	if filter.PartyIDFrom != nil {
		domainFilter.Filters["party_id_from"] = *filter.PartyIDFrom
	}
	if filter.PartyIDTo != nil {
		domainFilter.Filters["party_id_to"] = *filter.PartyIDTo
	}
	if filter.FromDate != nil {
		domainFilter.Filters["from_date"] = *filter.FromDate
	}
	if filter.ToDate != nil {
		domainFilter.Filters["to_date"] = *filter.ToDate
	}

	payments, err := s.paymentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.paymentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = *toPaymentResponse(&payments[i])
	}
	return responses, total, nil
}

// buildTran derives the financial-account transaction implied by the
// payment's type
func (s *PaymentService) buildTran(payment *accounting.Payment, finAccountID uuid.UUID) (*accounting.FinAccountTran, error) {
	direction, ok := accounting.ClassifyPaymentType(payment.PaymentTypeID)
	if !ok {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE",
			"Payment type cannot be posted against a financial account")
	}
	return accounting.NewFinAccountTran(
		finAccountID, direction,
		payment.PartyIDFrom, payment.PartyIDTo,
		payment.Amount, payment.EffectiveDate,
	)
}

func toPaymentResponse(p *accounting.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:                  p.ID,
		PaymentNumber:       p.PaymentNumber,
		PaymentTypeID:       string(p.PaymentTypeID),
		StatusID:            string(p.StatusID),
		PartyIDFrom:         p.PartyIDFrom,
		PartyIDTo:           p.PartyIDTo,
		Amount:              p.Amount,
		PaymentMethodID:     p.PaymentMethodID,
		PaymentMethodTypeID: p.PaymentMethodTypeID,
		PaymentRefNum:       p.PaymentRefNum,
		Comments:            p.Comments,
		FinAccountTransID:   p.FinAccountTransID,
		EffectiveDate:       p.EffectiveDate,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
