package quote

import (
	"context"
	"testing"
	"time"

	"github.com/bizerp/backend/internal/domain/quote"
	"github.com/bizerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockQuoteRepository is a mock implementation of QuoteRepository
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*quote.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Quote), args.Error(1)
}

func (m *MockQuoteRepository) Save(ctx context.Context, q *quote.Quote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuoteRepository) FindAdjustments(ctx context.Context, quoteID uuid.UUID) ([]quote.QuoteAdjustment, error) {
	args := m.Called(ctx, quoteID)
	return args.Get(0).([]quote.QuoteAdjustment), args.Error(1)
}

func (m *MockQuoteRepository) FindItemAdjustments(ctx context.Context, quoteID uuid.UUID, itemSeqID string) ([]quote.QuoteAdjustment, error) {
	args := m.Called(ctx, quoteID, itemSeqID)
	return args.Get(0).([]quote.QuoteAdjustment), args.Error(1)
}

func (m *MockQuoteRepository) SaveAdjustments(ctx context.Context, quoteID uuid.UUID, itemSeqID string, adjustments []quote.QuoteAdjustment) error {
	args := m.Called(ctx, quoteID, itemSeqID, adjustments)
	return args.Error(0)
}

func (m *MockQuoteRepository) SumAdjustments(ctx context.Context, quoteID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, quoteID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockTaxConfigRepository is a mock implementation of TaxConfigRepository
type MockTaxConfigRepository struct {
	mock.Mock
}

func (m *MockTaxConfigRepository) FindProductStore(ctx context.Context, id uuid.UUID) (*quote.ProductStore, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.ProductStore), args.Error(1)
}

func (m *MockTaxConfigRepository) FindActiveTaxAuthority(ctx context.Context, geoID string, partyID uuid.UUID) (*quote.PartyTaxAuthority, error) {
	args := m.Called(ctx, geoID, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.PartyTaxAuthority), args.Error(1)
}

func (m *MockTaxConfigRepository) FindRateProducts(ctx context.Context, geoID string, partyID uuid.UUID) ([]quote.TaxAuthorityRateProduct, error) {
	args := m.Called(ctx, geoID, partyID)
	return args.Get(0).([]quote.TaxAuthorityRateProduct), args.Error(1)
}

func newQuoteService() (*QuoteService, *MockQuoteRepository, *MockTaxConfigRepository) {
	quoteRepo := new(MockQuoteRepository)
	taxRepo := new(MockTaxConfigRepository)
	return NewQuoteService(quoteRepo, taxRepo), quoteRepo, taxRepo
}

func newQuoteWithItem(t *testing.T, quantity, unitListPrice decimal.Decimal) *quote.Quote {
	t.Helper()
	q, err := quote.NewQuote("Q000001", uuid.New(), uuid.New(), time.Now())
	assert.NoError(t, err)
	_, err = q.AddItem("00001", uuid.New(), quantity, unitListPrice)
	assert.NoError(t, err)
	return q
}

func newTaxedStore(storeID uuid.UUID) *quote.ProductStore {
	return &quote.ProductStore{
		BaseEntity:        shared.BaseEntity{ID: storeID},
		StoreName:         "Main Store",
		VatTaxAuthGeoID:   "EGY",
		VatTaxAuthPartyID: uuid.New(),
	}
}

func salesTaxRate(geoID string, partyID uuid.UUID, percentage decimal.Decimal) quote.TaxAuthorityRateProduct {
	return quote.TaxAuthorityRateProduct{
		BaseEntity:     shared.NewBaseEntity(),
		TaxAuthGeoID:   geoID,
		TaxAuthPartyID: partyID,
		RateTypeID:     quote.AdjustmentSalesTax,
		Description:    "VAT",
		TaxPercentage:  percentage,
	}
}

func TestQuoteService_CreateTaxAdjustments_Success(t *testing.T) {
	service, quoteRepo, taxRepo := newQuoteService()
	ctx := context.Background()

	q := newQuoteWithItem(t, decimal.NewFromInt(2), decimal.NewFromInt(100))
	store := newTaxedStore(q.ProductStoreID)
	authority := &quote.PartyTaxAuthority{
		TaxAuthGeoID:   store.VatTaxAuthGeoID,
		TaxAuthPartyID: store.VatTaxAuthPartyID,
		FromDate:       time.Now().AddDate(-1, 0, 0),
	}
	rate := salesTaxRate(store.VatTaxAuthGeoID, store.VatTaxAuthPartyID, decimal.NewFromInt(14))

	quoteRepo.On("FindByID", ctx, q.ID).Return(q, nil)
	taxRepo.On("FindProductStore", ctx, q.ProductStoreID).Return(store, nil)
	taxRepo.On("FindActiveTaxAuthority", ctx, store.VatTaxAuthGeoID, store.VatTaxAuthPartyID).Return(authority, nil)
	taxRepo.On("FindRateProducts", ctx, store.VatTaxAuthGeoID, store.VatTaxAuthPartyID).
		Return([]quote.TaxAuthorityRateProduct{rate}, nil)
	var captured []quote.QuoteAdjustment
	quoteRepo.On("SaveAdjustments", ctx, q.ID, "00001", mock.AnythingOfType("[]quote.QuoteAdjustment")).
		Run(func(args mock.Arguments) {
			captured = args.Get(3).([]quote.QuoteAdjustment)
			// the store issues numbers on the rows it persists
			for i := range captured {
				captured[i].AdjustmentNumber = "QA000042"
			}
		}).Return(nil)

	result, err := service.CreateTaxAdjustments(ctx, q.ID, "00001")

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Len(t, captured, 1)
	// 2 x 100 x 14% = 28
	assert.True(t, result[0].Amount.Equal(decimal.NewFromInt(28)))
	assert.True(t, result[0].SourcePercentage.Equal(decimal.NewFromInt(14)))
	assert.Equal(t, string(quote.AdjustmentSalesTax), result[0].AdjustmentTypeID)
	assert.Equal(t, "QA000042", result[0].AdjustmentNumber)
	assert.Equal(t, "N", result[0].IsManual)
	quoteRepo.AssertExpectations(t)
	taxRepo.AssertExpectations(t)
}

func TestQuoteService_CreateTaxAdjustments_MultipleRates(t *testing.T) {
	service, quoteRepo, taxRepo := newQuoteService()
	ctx := context.Background()

	q := newQuoteWithItem(t, decimal.NewFromInt(1), decimal.NewFromInt(50))
	store := newTaxedStore(q.ProductStoreID)
	authority := &quote.PartyTaxAuthority{
		TaxAuthGeoID:   store.VatTaxAuthGeoID,
		TaxAuthPartyID: store.VatTaxAuthPartyID,
		FromDate:       time.Now().AddDate(-1, 0, 0),
	}
	vat := salesTaxRate(store.VatTaxAuthGeoID, store.VatTaxAuthPartyID, decimal.NewFromInt(14))
	levy := salesTaxRate(store.VatTaxAuthGeoID, store.VatTaxAuthPartyID, decimal.NewFromInt(1))
	offType := salesTaxRate(store.VatTaxAuthGeoID, store.VatTaxAuthPartyID, decimal.NewFromInt(5))
	offType.RateTypeID = quote.AdjustmentShipping

	quoteRepo.On("FindByID", ctx, q.ID).Return(q, nil)
	taxRepo.On("FindProductStore", ctx, q.ProductStoreID).Return(store, nil)
	taxRepo.On("FindActiveTaxAuthority", ctx, store.VatTaxAuthGeoID, store.VatTaxAuthPartyID).Return(authority, nil)
	taxRepo.On("FindRateProducts", ctx, store.VatTaxAuthGeoID, store.VatTaxAuthPartyID).
		Return([]quote.TaxAuthorityRateProduct{vat, levy, offType}, nil)
	quoteRepo.On("SaveAdjustments", ctx, q.ID, "00001", mock.AnythingOfType("[]quote.QuoteAdjustment")).Return(nil)

	result, err := service.CreateTaxAdjustments(ctx, q.ID, "00001")

	assert.NoError(t, err)
	// each rate stays its own row, the non sales-tax rate is skipped
	assert.Len(t, result, 2)
	assert.True(t, result[0].Amount.Equal(decimal.NewFromInt(7)))
	assert.True(t, result[1].Amount.Equal(decimal.NewFromFloat(0.5)))
}

func TestQuoteService_CreateTaxAdjustments_QuoteNotFound(t *testing.T) {
	service, quoteRepo, _ := newQuoteService()
	ctx := context.Background()

	id := uuid.New()
	quoteRepo.On("FindByID", ctx, id).Return(nil, nil)

	result, err := service.CreateTaxAdjustments(ctx, id, "00001")

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestQuoteService_CreateTaxAdjustments_ItemNotFound(t *testing.T) {
	service, quoteRepo, _ := newQuoteService()
	ctx := context.Background()

	q := newQuoteWithItem(t, decimal.NewFromInt(1), decimal.NewFromInt(10))
	quoteRepo.On("FindByID", ctx, q.ID).Return(q, nil)

	result, err := service.CreateTaxAdjustments(ctx, q.ID, "99999")

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestQuoteService_CreateTaxAdjustments_StoreWithoutVatConfig(t *testing.T) {
	service, quoteRepo, taxRepo := newQuoteService()
	ctx := context.Background()

	q := newQuoteWithItem(t, decimal.NewFromInt(1), decimal.NewFromInt(10))
	store := &quote.ProductStore{
		BaseEntity: shared.BaseEntity{ID: q.ProductStoreID},
		StoreName:  "Untaxed Store",
	}

	quoteRepo.On("FindByID", ctx, q.ID).Return(q, nil)
	taxRepo.On("FindProductStore", ctx, q.ProductStoreID).Return(store, nil)

	result, err := service.CreateTaxAdjustments(ctx, q.ID, "00001")

	assert.NoError(t, err)
	assert.Empty(t, result)
	taxRepo.AssertNotCalled(t, "FindActiveTaxAuthority")
	quoteRepo.AssertNotCalled(t, "SaveAdjustments")
}

func TestQuoteService_CreateTaxAdjustments_NoActiveAuthority(t *testing.T) {
	service, quoteRepo, taxRepo := newQuoteService()
	ctx := context.Background()

	q := newQuoteWithItem(t, decimal.NewFromInt(1), decimal.NewFromInt(10))
	store := newTaxedStore(q.ProductStoreID)

	quoteRepo.On("FindByID", ctx, q.ID).Return(q, nil)
	taxRepo.On("FindProductStore", ctx, q.ProductStoreID).Return(store, nil)
	taxRepo.On("FindActiveTaxAuthority", ctx, store.VatTaxAuthGeoID, store.VatTaxAuthPartyID).Return(nil, nil)

	result, err := service.CreateTaxAdjustments(ctx, q.ID, "00001")

	assert.NoError(t, err)
	assert.Empty(t, result)
	taxRepo.AssertNotCalled(t, "FindRateProducts")
	quoteRepo.AssertNotCalled(t, "SaveAdjustments")
}

func TestQuoteService_CreateTaxAdjustments_NoRatesSavesNothing(t *testing.T) {
	service, quoteRepo, taxRepo := newQuoteService()
	ctx := context.Background()

	q := newQuoteWithItem(t, decimal.NewFromInt(1), decimal.NewFromInt(10))
	store := newTaxedStore(q.ProductStoreID)
	authority := &quote.PartyTaxAuthority{
		TaxAuthGeoID:   store.VatTaxAuthGeoID,
		TaxAuthPartyID: store.VatTaxAuthPartyID,
	}

	quoteRepo.On("FindByID", ctx, q.ID).Return(q, nil)
	taxRepo.On("FindProductStore", ctx, q.ProductStoreID).Return(store, nil)
	taxRepo.On("FindActiveTaxAuthority", ctx, store.VatTaxAuthGeoID, store.VatTaxAuthPartyID).Return(authority, nil)
	taxRepo.On("FindRateProducts", ctx, store.VatTaxAuthGeoID, store.VatTaxAuthPartyID).
		Return([]quote.TaxAuthorityRateProduct{}, nil)

	result, err := service.CreateTaxAdjustments(ctx, q.ID, "00001")

	assert.NoError(t, err)
	assert.Empty(t, result)
	quoteRepo.AssertNotCalled(t, "SaveAdjustments")
}

func TestQuoteService_ListQuoteAdjustments(t *testing.T) {
	service, quoteRepo, _ := newQuoteService()
	ctx := context.Background()

	q := newQuoteWithItem(t, decimal.NewFromInt(2), decimal.NewFromInt(100))
	adj, err := quote.NewQuoteAdjustment(
		q.ID, "00001", quote.AdjustmentSalesTax,
		decimal.NewFromInt(28), decimal.NewFromInt(14), "VAT 14%", false,
	)
	assert.NoError(t, err)

	quoteRepo.On("FindByID", ctx, q.ID).Return(q, nil)
	quoteRepo.On("FindAdjustments", ctx, q.ID).Return([]quote.QuoteAdjustment{*adj}, nil)
	quoteRepo.On("SumAdjustments", ctx, q.ID).Return(decimal.NewFromInt(28), nil)

	result, err := service.ListQuoteAdjustments(ctx, q.ID)

	assert.NoError(t, err)
	assert.Equal(t, q.ID, result.QuoteID)
	assert.Len(t, result.Adjustments, 1)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(28)))
	assert.Equal(t, "N", result.Adjustments[0].IsManual)
}

func TestQuoteService_ListQuoteAdjustments_QuoteNotFound(t *testing.T) {
	service, quoteRepo, _ := newQuoteService()
	ctx := context.Background()

	id := uuid.New()
	quoteRepo.On("FindByID", ctx, id).Return(nil, nil)

	result, err := service.ListQuoteAdjustments(ctx, id)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestQuoteService_ListItemAdjustments(t *testing.T) {
	service, quoteRepo, _ := newQuoteService()
	ctx := context.Background()

	quoteID := uuid.New()
	adj, err := quote.NewQuoteAdjustment(
		quoteID, "00001", quote.AdjustmentSalesTax,
		decimal.NewFromInt(14), decimal.NewFromInt(14), "VAT", false,
	)
	assert.NoError(t, err)

	quoteRepo.On("FindItemAdjustments", ctx, quoteID, "00001").Return([]quote.QuoteAdjustment{*adj}, nil)

	result, err := service.ListItemAdjustments(ctx, quoteID, "00001")

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "00001", result[0].QuoteItemSeqID)
}
