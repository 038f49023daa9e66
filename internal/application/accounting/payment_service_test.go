package accounting

import (
	"context"
	"testing"
	"time"

	"github.com/bizerp/backend/internal/domain/accounting"
	"github.com/bizerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByNumber(ctx context.Context, paymentNumber string) (*accounting.Payment, error) {
	args := m.Called(ctx, paymentNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]accounting.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]accounting.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) CreatePosted(ctx context.Context, payment *accounting.Payment, tran *accounting.FinAccountTran) error {
	args := m.Called(ctx, payment, tran)
	return args.Error(0)
}

func (m *MockPaymentRepository) SavePosted(ctx context.Context, payment *accounting.Payment, plan accounting.PostingPlan) error {
	args := m.Called(ctx, payment, plan)
	return args.Error(0)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *accounting.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFinAccountTranRepository is a mock implementation of FinAccountTranRepository
type MockFinAccountTranRepository struct {
	mock.Mock
}

func (m *MockFinAccountTranRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.FinAccountTran, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.FinAccountTran), args.Error(1)
}

func (m *MockFinAccountTranRepository) FindByPaymentID(ctx context.Context, paymentID uuid.UUID) (*accounting.FinAccountTran, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.FinAccountTran), args.Error(1)
}

// MockPaymentMethodRepository is a mock implementation of PaymentMethodRepository
type MockPaymentMethodRepository struct {
	mock.Mock
}

func (m *MockPaymentMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.PaymentMethod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) Save(ctx context.Context, method *accounting.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func newPaymentService() (*PaymentService, *MockPaymentRepository, *MockPaymentMethodRepository, *MockFinAccountTranRepository) {
	paymentRepo := new(MockPaymentRepository)
	methodRepo := new(MockPaymentMethodRepository)
	tranRepo := new(MockFinAccountTranRepository)
	return NewPaymentService(paymentRepo, methodRepo, tranRepo), paymentRepo, methodRepo, tranRepo
}

func newLinkedMethod(t *testing.T) *accounting.PaymentMethod {
	t.Helper()
	method, err := accounting.NewPaymentMethod("EFT_ACCOUNT", uuid.New(), "Company checking")
	assert.NoError(t, err)
	finAccountID := uuid.New()
	method.FinAccountID = &finAccountID
	return method
}

func newUnlinkedMethod(t *testing.T) *accounting.PaymentMethod {
	t.Helper()
	method, err := accounting.NewPaymentMethod("CREDIT_CARD", uuid.New(), "Visa ending 4242")
	assert.NoError(t, err)
	return method
}

func newStoredPayment(t *testing.T) *accounting.Payment {
	t.Helper()
	payment, err := accounting.NewPayment(
		accounting.PaymentTypeCustomerPayment,
		uuid.New(), uuid.New(),
		decimal.NewFromInt(150), time.Now(),
	)
	assert.NoError(t, err)
	payment.PaymentNumber = "P000010"
	return payment
}

func TestPaymentService_CreatePayment_WithLinkedMethod(t *testing.T) {
	service, paymentRepo, methodRepo, _ := newPaymentService()
	ctx := context.Background()

	method := newLinkedMethod(t)
	req := CreatePaymentRequest{
		PaymentTypeID:   string(accounting.PaymentTypeCustomerPayment),
		PartyIDFrom:     uuid.New(),
		PartyIDTo:       uuid.New(),
		Amount:          decimal.NewFromInt(250),
		PaymentMethodID: &method.ID,
		EffectiveDate:   time.Now(),
	}

	methodRepo.On("FindByID", ctx, method.ID).Return(method, nil)
	var capturedTran *accounting.FinAccountTran
	paymentRepo.On("CreatePosted", ctx, mock.AnythingOfType("*accounting.Payment"), mock.AnythingOfType("*accounting.FinAccountTran")).
		Run(func(args mock.Arguments) {
			capturedTran = args.Get(2).(*accounting.FinAccountTran)
		}).Return(nil)

	result, err := service.CreatePayment(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.NotNil(t, result.FinAccountTransID)
	assert.NotNil(t, capturedTran)
	assert.Equal(t, *result.FinAccountTransID, capturedTran.ID)
	assert.Equal(t, *method.FinAccountID, capturedTran.FinAccountID)
	assert.Equal(t, accounting.FinAccountTranDeposit, capturedTran.TranTypeID)
	assert.True(t, capturedTran.Amount.Equal(req.Amount))
	paymentRepo.AssertExpectations(t)
	methodRepo.AssertExpectations(t)
}

func TestPaymentService_CreatePayment_OutgoingTypeYieldsWithdrawal(t *testing.T) {
	service, paymentRepo, methodRepo, _ := newPaymentService()
	ctx := context.Background()

	method := newLinkedMethod(t)
	partyTo := uuid.New()
	req := CreatePaymentRequest{
		PaymentTypeID:   string(accounting.PaymentTypeVendorPayment),
		PartyIDFrom:     uuid.New(),
		PartyIDTo:       partyTo,
		Amount:          decimal.NewFromInt(80),
		PaymentMethodID: &method.ID,
		EffectiveDate:   time.Now(),
	}

	methodRepo.On("FindByID", ctx, method.ID).Return(method, nil)
	var capturedTran *accounting.FinAccountTran
	paymentRepo.On("CreatePosted", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedTran = args.Get(2).(*accounting.FinAccountTran)
		}).Return(nil)

	_, err := service.CreatePayment(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, capturedTran)
	assert.Equal(t, accounting.FinAccountTranWithdrawal, capturedTran.TranTypeID)
	assert.Equal(t, partyTo, capturedTran.PartyID)
}

func TestPaymentService_CreatePayment_UnlinkedMethodSkipsTran(t *testing.T) {
	service, paymentRepo, methodRepo, _ := newPaymentService()
	ctx := context.Background()

	method := newUnlinkedMethod(t)
	req := CreatePaymentRequest{
		PaymentTypeID:   string(accounting.PaymentTypeCustomerPayment),
		PartyIDFrom:     uuid.New(),
		PartyIDTo:       uuid.New(),
		Amount:          decimal.NewFromInt(40),
		PaymentMethodID: &method.ID,
		EffectiveDate:   time.Now(),
	}

	methodRepo.On("FindByID", ctx, method.ID).Return(method, nil)
	paymentRepo.On("CreatePosted", ctx, mock.AnythingOfType("*accounting.Payment"), (*accounting.FinAccountTran)(nil)).Return(nil)

	result, err := service.CreatePayment(ctx, req)

	assert.NoError(t, err)
	assert.Nil(t, result.FinAccountTransID)
	assert.Equal(t, "CREDIT_CARD", result.PaymentMethodTypeID)
	paymentRepo.AssertExpectations(t)
}

func TestPaymentService_CreatePayment_MissingMethodStillPosts(t *testing.T) {
	service, paymentRepo, methodRepo, _ := newPaymentService()
	ctx := context.Background()

	methodID := uuid.New()
	req := CreatePaymentRequest{
		PaymentTypeID:   string(accounting.PaymentTypeCustomerPayment),
		PartyIDFrom:     uuid.New(),
		PartyIDTo:       uuid.New(),
		Amount:          decimal.NewFromInt(40),
		PaymentMethodID: &methodID,
		EffectiveDate:   time.Now(),
	}

	methodRepo.On("FindByID", ctx, methodID).Return(nil, nil)
	paymentRepo.On("CreatePosted", ctx, mock.AnythingOfType("*accounting.Payment"), (*accounting.FinAccountTran)(nil)).Return(nil)

	result, err := service.CreatePayment(ctx, req)

	assert.NoError(t, err)
	assert.Nil(t, result.PaymentMethodID)
	assert.Nil(t, result.FinAccountTransID)
	paymentRepo.AssertExpectations(t)
}

func TestPaymentService_CreatePayment_InvalidAmount(t *testing.T) {
	service, _, _, _ := newPaymentService()
	ctx := context.Background()

	req := CreatePaymentRequest{
		PaymentTypeID: string(accounting.PaymentTypeCustomerPayment),
		PartyIDFrom:   uuid.New(),
		PartyIDTo:     uuid.New(),
		Amount:        decimal.NewFromInt(-5),
		EffectiveDate: time.Now(),
	}

	result, err := service.CreatePayment(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
}

func TestPaymentService_UpdatePayment_RepricesExistingTran(t *testing.T) {
	service, paymentRepo, methodRepo, tranRepo := newPaymentService()
	ctx := context.Background()

	payment := newStoredPayment(t)
	method := newLinkedMethod(t)
	tran, err := accounting.NewFinAccountTran(
		*method.FinAccountID, accounting.DirectionIncoming,
		payment.PartyIDFrom, payment.PartyIDTo,
		payment.Amount, payment.EffectiveDate,
	)
	assert.NoError(t, err)
	tran.AttachPayment(payment.ID)
	payment.SetPaymentMethod(method.ID, method.PaymentMethodTypeID)
	payment.LinkFinAccountTrans(tran.ID)
	originalTranID := tran.ID

	req := UpdatePaymentRequest{
		PaymentTypeID:   string(accounting.PaymentTypeCustomerPayment),
		Amount:          decimal.NewFromInt(300),
		PaymentMethodID: &method.ID,
		EffectiveDate:   time.Now(),
	}

	paymentRepo.On("FindByID", ctx, payment.ID).Return(payment, nil)
	tranRepo.On("FindByPaymentID", ctx, payment.ID).Return(tran, nil)
	methodRepo.On("FindByID", ctx, method.ID).Return(method, nil)
	var capturedPlan accounting.PostingPlan
	paymentRepo.On("SavePosted", ctx, payment, mock.AnythingOfType("accounting.PostingPlan")).
		Run(func(args mock.Arguments) {
			capturedPlan = args.Get(2).(accounting.PostingPlan)
		}).Return(nil)

	result, err := service.UpdatePayment(ctx, payment.ID, req)

	assert.NoError(t, err)
	assert.True(t, result.Amount.Equal(decimal.NewFromInt(300)))
	assert.NotNil(t, capturedPlan.UpdateTran)
	assert.Nil(t, capturedPlan.CreateTran)
	assert.Nil(t, capturedPlan.DeleteTranID)
	assert.Equal(t, originalTranID, capturedPlan.UpdateTran.ID)
	assert.True(t, capturedPlan.UpdateTran.Amount.Equal(decimal.NewFromInt(300)))
	paymentRepo.AssertExpectations(t)
}

func TestPaymentService_UpdatePayment_NewlyLinkedMethodCreatesTran(t *testing.T) {
	service, paymentRepo, methodRepo, tranRepo := newPaymentService()
	ctx := context.Background()

	payment := newStoredPayment(t)
	method := newLinkedMethod(t)
	req := UpdatePaymentRequest{
		PaymentTypeID:   string(accounting.PaymentTypeCustomerPayment),
		Amount:          payment.Amount,
		PaymentMethodID: &method.ID,
		EffectiveDate:   payment.EffectiveDate,
	}

	paymentRepo.On("FindByID", ctx, payment.ID).Return(payment, nil)
	tranRepo.On("FindByPaymentID", ctx, payment.ID).Return(nil, nil)
	methodRepo.On("FindByID", ctx, method.ID).Return(method, nil)
	var capturedPlan accounting.PostingPlan
	paymentRepo.On("SavePosted", ctx, payment, mock.AnythingOfType("accounting.PostingPlan")).
		Run(func(args mock.Arguments) {
			capturedPlan = args.Get(2).(accounting.PostingPlan)
		}).Return(nil)

	result, err := service.UpdatePayment(ctx, payment.ID, req)

	assert.NoError(t, err)
	assert.NotNil(t, capturedPlan.CreateTran)
	assert.NotNil(t, capturedPlan.CreateTran.PaymentID)
	assert.Equal(t, payment.ID, *capturedPlan.CreateTran.PaymentID)
	assert.NotNil(t, result.FinAccountTransID)
	assert.Equal(t, capturedPlan.CreateTran.ID, *result.FinAccountTransID)
}

func TestPaymentService_UpdatePayment_UnlinkedMethodDeletesTran(t *testing.T) {
	service, paymentRepo, methodRepo, tranRepo := newPaymentService()
	ctx := context.Background()

	payment := newStoredPayment(t)
	method := newUnlinkedMethod(t)
	finAccountID := uuid.New()
	tran, err := accounting.NewFinAccountTran(
		finAccountID, accounting.DirectionIncoming,
		payment.PartyIDFrom, payment.PartyIDTo,
		payment.Amount, payment.EffectiveDate,
	)
	assert.NoError(t, err)
	tran.AttachPayment(payment.ID)
	payment.LinkFinAccountTrans(tran.ID)

	req := UpdatePaymentRequest{
		PaymentTypeID:   string(accounting.PaymentTypeCustomerPayment),
		Amount:          payment.Amount,
		PaymentMethodID: &method.ID,
		EffectiveDate:   payment.EffectiveDate,
	}

	paymentRepo.On("FindByID", ctx, payment.ID).Return(payment, nil)
	tranRepo.On("FindByPaymentID", ctx, payment.ID).Return(tran, nil)
	methodRepo.On("FindByID", ctx, method.ID).Return(method, nil)
	var capturedPlan accounting.PostingPlan
	paymentRepo.On("SavePosted", ctx, payment, mock.AnythingOfType("accounting.PostingPlan")).
		Run(func(args mock.Arguments) {
			capturedPlan = args.Get(2).(accounting.PostingPlan)
		}).Return(nil)

	result, err := service.UpdatePayment(ctx, payment.ID, req)

	assert.NoError(t, err)
	assert.NotNil(t, capturedPlan.DeleteTranID)
	assert.Equal(t, tran.ID, *capturedPlan.DeleteTranID)
	assert.Nil(t, result.FinAccountTransID)
}

func TestPaymentService_UpdatePayment_NoMethodNoTranLeavesPlanEmpty(t *testing.T) {
	service, paymentRepo, _, tranRepo := newPaymentService()
	ctx := context.Background()

	payment := newStoredPayment(t)
	req := UpdatePaymentRequest{
		PaymentTypeID: string(accounting.PaymentTypeCustomerPayment),
		Amount:        decimal.NewFromInt(99),
		EffectiveDate: payment.EffectiveDate,
	}

	paymentRepo.On("FindByID", ctx, payment.ID).Return(payment, nil)
	tranRepo.On("FindByPaymentID", ctx, payment.ID).Return(nil, nil)
	var capturedPlan accounting.PostingPlan
	paymentRepo.On("SavePosted", ctx, payment, mock.AnythingOfType("accounting.PostingPlan")).
		Run(func(args mock.Arguments) {
			capturedPlan = args.Get(2).(accounting.PostingPlan)
		}).Return(nil)

	result, err := service.UpdatePayment(ctx, payment.ID, req)

	assert.NoError(t, err)
	assert.True(t, capturedPlan.IsEmpty())
	assert.True(t, result.Amount.Equal(decimal.NewFromInt(99)))
}

func TestPaymentService_UpdatePayment_NotFound(t *testing.T) {
	service, paymentRepo, _, _ := newPaymentService()
	ctx := context.Background()

	id := uuid.New()
	paymentRepo.On("FindByID", ctx, id).Return(nil, nil)

	result, err := service.UpdatePayment(ctx, id, UpdatePaymentRequest{
		PaymentTypeID: string(accounting.PaymentTypeCustomerPayment),
		Amount:        decimal.NewFromInt(10),
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestPaymentService_SetPaymentStatus_Success(t *testing.T) {
	service, paymentRepo, _, _ := newPaymentService()
	ctx := context.Background()

	payment := newStoredPayment(t)
	paymentRepo.On("FindByID", ctx, payment.ID).Return(payment, nil)
	paymentRepo.On("Save", ctx, payment).Return(nil)

	result, err := service.SetPaymentStatus(ctx, payment.ID, string(accounting.PaymentStatusReceived))

	assert.NoError(t, err)
	assert.Equal(t, string(accounting.PaymentStatusReceived), result.StatusID)
	paymentRepo.AssertExpectations(t)
}

func TestPaymentService_SetPaymentStatus_UnknownStatus(t *testing.T) {
	service, paymentRepo, _, _ := newPaymentService()
	ctx := context.Background()

	result, err := service.SetPaymentStatus(ctx, uuid.New(), "PMNT_BOGUS")

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "STATUS_DESCRIPTION_NOT_FOUND", domainErr.Code)
	paymentRepo.AssertNotCalled(t, "FindByID")
}

func TestPaymentService_SetPaymentStatus_InvalidTransition(t *testing.T) {
	service, paymentRepo, _, _ := newPaymentService()
	ctx := context.Background()

	payment := newStoredPayment(t)
	assert.NoError(t, payment.ChangeStatus(accounting.PaymentStatusCancelled))
	paymentRepo.On("FindByID", ctx, payment.ID).Return(payment, nil)

	result, err := service.SetPaymentStatus(ctx, payment.ID, string(accounting.PaymentStatusReceived))

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	paymentRepo.AssertNotCalled(t, "Save")
}

func TestPaymentService_SetPaymentStatus_SameStatusIsNoop(t *testing.T) {
	service, paymentRepo, _, _ := newPaymentService()
	ctx := context.Background()

	payment := newStoredPayment(t)
	paymentRepo.On("FindByID", ctx, payment.ID).Return(payment, nil)
	paymentRepo.On("Save", ctx, payment).Return(nil)

	result, err := service.SetPaymentStatus(ctx, payment.ID, string(accounting.PaymentStatusNotPaid))

	assert.NoError(t, err)
	assert.Equal(t, string(accounting.PaymentStatusNotPaid), result.StatusID)
}

func TestPaymentService_GetPayment_NotFound(t *testing.T) {
	service, paymentRepo, _, _ := newPaymentService()
	ctx := context.Background()

	id := uuid.New()
	paymentRepo.On("FindByID", ctx, id).Return(nil, nil)

	result, err := service.GetPayment(ctx, id)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestPaymentService_GetPaymentByNumber(t *testing.T) {
	service, paymentRepo, _, _ := newPaymentService()
	ctx := context.Background()

	payment := newStoredPayment(t)
	paymentRepo.On("FindByNumber", ctx, payment.PaymentNumber).Return(payment, nil)

	result, err := service.GetPaymentByNumber(ctx, payment.PaymentNumber)

	assert.NoError(t, err)
	assert.Equal(t, payment.ID, result.ID)
	assert.Equal(t, "P000010", result.PaymentNumber)
	paymentRepo.AssertExpectations(t)
}

func TestPaymentService_GetPaymentByNumber_NotFound(t *testing.T) {
	service, paymentRepo, _, _ := newPaymentService()
	ctx := context.Background()

	paymentRepo.On("FindByNumber", ctx, "P999999").Return(nil, nil)

	result, err := service.GetPaymentByNumber(ctx, "P999999")

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestPaymentService_ListPayments(t *testing.T) {
	service, paymentRepo, _, _ := newPaymentService()
	ctx := context.Background()

	p1 := newStoredPayment(t)
	p2 := newStoredPayment(t)
	var capturedFilter shared.Filter
	paymentRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).
		Run(func(args mock.Arguments) {
			capturedFilter = args.Get(1).(shared.Filter)
		}).Return([]accounting.Payment{*p1, *p2}, nil)
	paymentRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(2), nil)

	results, total, err := service.ListPayments(ctx, PaymentListFilter{
		Status:   string(accounting.PaymentStatusNotPaid),
		Page:     2,
		PageSize: 10,
	})

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, 2, capturedFilter.Page)
	assert.Equal(t, 10, capturedFilter.PageSize)
	assert.Equal(t, string(accounting.PaymentStatusNotPaid), capturedFilter.Filters["status"])
}
