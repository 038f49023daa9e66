package quote

import (
	"context"
	"time"

	"github.com/bizerp/backend/internal/domain/quote"
	"github.com/bizerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteService provides quote tax adjustment operations
type QuoteService struct {
	quoteRepo quote.QuoteRepository
	taxRepo   quote.TaxConfigRepository
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(quoteRepo quote.QuoteRepository, taxRepo quote.TaxConfigRepository) *QuoteService {
	return &QuoteService{quoteRepo: quoteRepo, taxRepo: taxRepo}
}

// AdjustmentResponse represents a quote adjustment in API responses
type AdjustmentResponse struct {
	ID               uuid.UUID       `json:"id"`
	AdjustmentNumber string          `json:"adjustment_number"`
	QuoteID          uuid.UUID       `json:"quote_id"`
	QuoteItemSeqID   string          `json:"quote_item_seq_id"`
	AdjustmentTypeID string          `json:"adjustment_type_id"`
	Amount           decimal.Decimal `json:"amount"`
	SourcePercentage decimal.Decimal `json:"source_percentage"`
	Description      string          `json:"description,omitempty"`
	IsManual         string          `json:"is_manual"`
	CreatedAt        time.Time       `json:"created_at"`
}

// AdjustmentListResponse is the adjustment list with its read-time total
type AdjustmentListResponse struct {
	QuoteID     uuid.UUID            `json:"quote_id"`
	Adjustments []AdjustmentResponse `json:"adjustments"`
	Total       decimal.Decimal      `json:"total"`
}

// CreateTaxAdjustments computes and stores the sales-tax adjustments for
// one quote item under the store's current tax authority configuration.
// Each applicable SALES_TAX rate yields one independent adjustment row;
// amounts are never summed here. A store without an active tax
// registration yields an empty set.
func (s *QuoteService) CreateTaxAdjustments(ctx context.Context, quoteID uuid.UUID, itemSeqID string) ([]AdjustmentResponse, error) {
	q, err := s.quoteRepo.FindByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Quote not found")
	}

	item := q.GetItem(itemSeqID)
	if item == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Quote item not found")
	}

	store, err := s.taxRepo.FindProductStore(ctx, q.ProductStoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product store not found")
	}
	if store.VatTaxAuthGeoID == "" || store.VatTaxAuthPartyID == uuid.Nil {
		// store has no VAT configuration; nothing to apply
		return []AdjustmentResponse{}, nil
	}

	authority, err := s.taxRepo.FindActiveTaxAuthority(ctx, store.VatTaxAuthGeoID, store.VatTaxAuthPartyID)
	if err != nil {
		return nil, err
	}
	if authority == nil {
		return []AdjustmentResponse{}, nil
	}

	rates, err := s.taxRepo.FindRateProducts(ctx, authority.TaxAuthGeoID, authority.TaxAuthPartyID)
	if err != nil {
		return nil, err
	}

	adjustments, err := quote.ComputeSalesTaxAdjustments(item, rates)
	if err != nil {
		return nil, err
	}
	if len(adjustments) > 0 {
		if err := s.quoteRepo.SaveAdjustments(ctx, quoteID, item.SeqID, adjustments); err != nil {
			return nil, err
		}
	}

	responses := make([]AdjustmentResponse, len(adjustments))
	for i := range adjustments {
		responses[i] = toAdjustmentResponse(&adjustments[i])
	}
	return responses, nil
}

// ListQuoteAdjustments returns every adjustment on the quote plus the
// read-time total
func (s *QuoteService) ListQuoteAdjustments(ctx context.Context, quoteID uuid.UUID) (*AdjustmentListResponse, error) {
	q, err := s.quoteRepo.FindByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Quote not found")
	}

	adjustments, err := s.quoteRepo.FindAdjustments(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	total, err := s.quoteRepo.SumAdjustments(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	resp := &AdjustmentListResponse{
		QuoteID:     quoteID,
		Adjustments: make([]AdjustmentResponse, len(adjustments)),
		Total:       total,
	}
	for i := range adjustments {
		resp.Adjustments[i] = toAdjustmentResponse(&adjustments[i])
	}
	return resp, nil
}

// ListItemAdjustments returns the adjustments attached to one quote item
func (s *QuoteService) ListItemAdjustments(ctx context.Context, quoteID uuid.UUID, itemSeqID string) ([]AdjustmentResponse, error) {
	adjustments, err := s.quoteRepo.FindItemAdjustments(ctx, quoteID, itemSeqID)
	if err != nil {
		return nil, err
	}
	responses := make([]AdjustmentResponse, len(adjustments))
	for i := range adjustments {
		responses[i] = toAdjustmentResponse(&adjustments[i])
	}
	return responses, nil
}

func toAdjustmentResponse(a *quote.QuoteAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:               a.ID,
		AdjustmentNumber: a.AdjustmentNumber,
		QuoteID:          a.QuoteID,
		QuoteItemSeqID:   a.QuoteItemSeqID,
		AdjustmentTypeID: string(a.AdjustmentTypeID),
		Amount:           a.Amount,
		SourcePercentage: a.SourcePercentage,
		Description:      a.Description,
		IsManual:         a.IsManual,
		CreatedAt:        a.CreatedAt,
	}
}
