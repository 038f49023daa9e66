package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	quoteapp "github.com/bizerp/backend/internal/application/quote"
	"github.com/bizerp/backend/internal/domain/quote"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockQuoteRepo struct {
	mock.Mock
}

func (m *mockQuoteRepo) FindByID(ctx context.Context, id uuid.UUID) (*quote.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Quote), args.Error(1)
}

func (m *mockQuoteRepo) Save(ctx context.Context, q *quote.Quote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *mockQuoteRepo) FindAdjustments(ctx context.Context, quoteID uuid.UUID) ([]quote.QuoteAdjustment, error) {
	args := m.Called(ctx, quoteID)
	return args.Get(0).([]quote.QuoteAdjustment), args.Error(1)
}

func (m *mockQuoteRepo) FindItemAdjustments(ctx context.Context, quoteID uuid.UUID, itemSeqID string) ([]quote.QuoteAdjustment, error) {
	args := m.Called(ctx, quoteID, itemSeqID)
	return args.Get(0).([]quote.QuoteAdjustment), args.Error(1)
}

func (m *mockQuoteRepo) SaveAdjustments(ctx context.Context, quoteID uuid.UUID, itemSeqID string, adjustments []quote.QuoteAdjustment) error {
	args := m.Called(ctx, quoteID, itemSeqID, adjustments)
	return args.Error(0)
}

func (m *mockQuoteRepo) SumAdjustments(ctx context.Context, quoteID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, quoteID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockTaxConfigRepo struct {
	mock.Mock
}

func (m *mockTaxConfigRepo) FindProductStore(ctx context.Context, id uuid.UUID) (*quote.ProductStore, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.ProductStore), args.Error(1)
}

func (m *mockTaxConfigRepo) FindActiveTaxAuthority(ctx context.Context, geoID string, partyID uuid.UUID) (*quote.PartyTaxAuthority, error) {
	args := m.Called(ctx, geoID, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.PartyTaxAuthority), args.Error(1)
}

func (m *mockTaxConfigRepo) FindRateProducts(ctx context.Context, geoID string, partyID uuid.UUID) ([]quote.TaxAuthorityRateProduct, error) {
	args := m.Called(ctx, geoID, partyID)
	return args.Get(0).([]quote.TaxAuthorityRateProduct), args.Error(1)
}

func newQuoteTestServer(quoteRepo *mockQuoteRepo, taxRepo *mockTaxConfigRepo) *gin.Engine {
	service := quoteapp.NewQuoteService(quoteRepo, taxRepo)
	handler := NewQuoteHandler(service)

	engine := gin.New()
	api := engine.Group("/api/v1")
	handler.RegisterRoutes(api)
	return engine
}

func TestQuoteHandler_ListAdjustments(t *testing.T) {
	quoteRepo := new(mockQuoteRepo)
	taxRepo := new(mockTaxConfigRepo)
	engine := newQuoteTestServer(quoteRepo, taxRepo)

	q, err := quote.NewQuote("Q000001", uuid.New(), uuid.New(), time.Now())
	require.NoError(t, err)
	adj, err := quote.NewQuoteAdjustment(
		q.ID, "00001", quote.AdjustmentSalesTax,
		decimal.NewFromInt(28), decimal.NewFromInt(14), "VAT 14%", false,
	)
	require.NoError(t, err)

	quoteRepo.On("FindByID", mock.Anything, q.ID).Return(q, nil)
	quoteRepo.On("FindAdjustments", mock.Anything, q.ID).Return([]quote.QuoteAdjustment{*adj}, nil)
	quoteRepo.On("SumAdjustments", mock.Anything, q.ID).Return(decimal.NewFromInt(28), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/"+q.ID.String()+"/adjustments", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
}

func TestQuoteHandler_ListAdjustments_BadQuoteID(t *testing.T) {
	engine := newQuoteTestServer(new(mockQuoteRepo), new(mockTaxConfigRepo))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/not-a-uuid/adjustments", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuoteHandler_ListAdjustments_QuoteNotFound(t *testing.T) {
	quoteRepo := new(mockQuoteRepo)
	engine := newQuoteTestServer(quoteRepo, new(mockTaxConfigRepo))

	id := uuid.New()
	quoteRepo.On("FindByID", mock.Anything, id).Return(nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/"+id.String()+"/adjustments", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestQuoteHandler_CreateTaxAdjustments(t *testing.T) {
	quoteRepo := new(mockQuoteRepo)
	taxRepo := new(mockTaxConfigRepo)
	engine := newQuoteTestServer(quoteRepo, taxRepo)

	q, err := quote.NewQuote("Q000002", uuid.New(), uuid.New(), time.Now())
	require.NoError(t, err)
	_, err = q.AddItem("00001", uuid.New(), decimal.NewFromInt(2), decimal.NewFromInt(100))
	require.NoError(t, err)

	authPartyID := uuid.New()
	store := &quote.ProductStore{
		StoreName:         "Main Store",
		VatTaxAuthGeoID:   "EGY",
		VatTaxAuthPartyID: authPartyID,
	}
	store.ID = q.ProductStoreID
	authority := &quote.PartyTaxAuthority{TaxAuthGeoID: "EGY", TaxAuthPartyID: authPartyID}
	rate := quote.TaxAuthorityRateProduct{
		TaxAuthGeoID:   "EGY",
		TaxAuthPartyID: authPartyID,
		RateTypeID:     quote.AdjustmentSalesTax,
		TaxPercentage:  decimal.NewFromInt(14),
	}

	quoteRepo.On("FindByID", mock.Anything, q.ID).Return(q, nil)
	taxRepo.On("FindProductStore", mock.Anything, q.ProductStoreID).Return(store, nil)
	taxRepo.On("FindActiveTaxAuthority", mock.Anything, "EGY", authPartyID).Return(authority, nil)
	taxRepo.On("FindRateProducts", mock.Anything, "EGY", authPartyID).Return([]quote.TaxAuthorityRateProduct{rate}, nil)
	quoteRepo.On("SaveAdjustments", mock.Anything, q.ID, "00001", mock.Anything).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/"+q.ID.String()+"/items/00001/tax-adjustments", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	quoteRepo.AssertExpectations(t)
	taxRepo.AssertExpectations(t)
}
