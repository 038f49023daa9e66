package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bizerp/backend/internal/domain/quote"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultTaxRateTTL is how long cached rate rows stay valid. Tax
// configuration changes rarely; a stale window of a few minutes is
// acceptable.
const DefaultTaxRateTTL = 10 * time.Minute

// RedisTaxRateCache caches tax authority rate rows per geo/party pair.
// A miss or a Redis failure falls through to the database; the cache is
// never authoritative.
type RedisTaxRateCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// RedisTaxRateCacheOption is a functional option for configuring the cache
type RedisTaxRateCacheOption func(*RedisTaxRateCache)

// WithTaxRateTTL sets the cache entry lifetime
func WithTaxRateTTL(ttl time.Duration) RedisTaxRateCacheOption {
	return func(c *RedisTaxRateCache) {
		c.ttl = ttl
	}
}

// WithTaxRateLogger sets the logger for the cache
func WithTaxRateLogger(logger *zap.Logger) RedisTaxRateCacheOption {
	return func(c *RedisTaxRateCache) {
		c.logger = logger
	}
}

// NewRedisTaxRateCache creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for
// closing it.
func NewRedisTaxRateCache(client *redis.Client, opts ...RedisTaxRateCacheOption) *RedisTaxRateCache {
	cache := &RedisTaxRateCache{
		client: client,
		ttl:    DefaultTaxRateTTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

func (c *RedisTaxRateCache) rateCacheKey(geoID string, partyID uuid.UUID) string {
	return fmt.Sprintf("tax_rates:%s:%s", geoID, partyID.String())
}

// Get retrieves cached rate rows. A miss returns (nil, false, nil).
func (c *RedisTaxRateCache) Get(ctx context.Context, geoID string, partyID uuid.UUID) ([]quote.TaxAuthorityRateProduct, bool, error) {
	cacheKey := c.rateCacheKey(geoID, partyID)

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss for tax rates", zap.String("key", cacheKey))
		return nil, false, nil
	}
	if err != nil {
		c.logger.Error("Failed to get tax rates from cache",
			zap.String("key", cacheKey),
			zap.Error(err))
		return nil, false, fmt.Errorf("failed to get tax rates from cache: %w", err)
	}

	var rates []quote.TaxAuthorityRateProduct
	if err := json.Unmarshal(data, &rates); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached tax rates: %w", err)
	}
	return rates, true, nil
}

// Set stores rate rows in cache
func (c *RedisTaxRateCache) Set(ctx context.Context, geoID string, partyID uuid.UUID, rates []quote.TaxAuthorityRateProduct) error {
	cacheKey := c.rateCacheKey(geoID, partyID)

	data, err := json.Marshal(rates)
	if err != nil {
		return fmt.Errorf("failed to marshal tax rates: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey, data, c.ttl).Err(); err != nil {
		c.logger.Error("Failed to cache tax rates",
			zap.String("key", cacheKey),
			zap.Error(err))
		return fmt.Errorf("failed to cache tax rates: %w", err)
	}
	return nil
}

// Invalidate removes the cached rates for a geo/party pair
func (c *RedisTaxRateCache) Invalidate(ctx context.Context, geoID string, partyID uuid.UUID) error {
	return c.client.Del(ctx, c.rateCacheKey(geoID, partyID)).Err()
}

// CachingTaxConfigRepository decorates a TaxConfigRepository with the
// rate cache. Store and authority lookups always hit the database;
// only the rate rows, the hot read on every tax computation, are
// cached.
type CachingTaxConfigRepository struct {
	inner quote.TaxConfigRepository
	cache *RedisTaxRateCache
}

// NewCachingTaxConfigRepository wraps a repository with the rate cache
func NewCachingTaxConfigRepository(inner quote.TaxConfigRepository, cache *RedisTaxRateCache) *CachingTaxConfigRepository {
	return &CachingTaxConfigRepository{inner: inner, cache: cache}
}

// FindProductStore delegates to the underlying repository
func (r *CachingTaxConfigRepository) FindProductStore(ctx context.Context, id uuid.UUID) (*quote.ProductStore, error) {
	return r.inner.FindProductStore(ctx, id)
}

// FindActiveTaxAuthority delegates to the underlying repository
func (r *CachingTaxConfigRepository) FindActiveTaxAuthority(ctx context.Context, geoID string, partyID uuid.UUID) (*quote.PartyTaxAuthority, error) {
	return r.inner.FindActiveTaxAuthority(ctx, geoID, partyID)
}

// FindRateProducts serves rate rows from cache when possible. Cache
// failures degrade to a database read.
func (r *CachingTaxConfigRepository) FindRateProducts(ctx context.Context, geoID string, partyID uuid.UUID) ([]quote.TaxAuthorityRateProduct, error) {
	if rates, hit, err := r.cache.Get(ctx, geoID, partyID); err == nil && hit {
		return rates, nil
	}

	rates, err := r.inner.FindRateProducts(ctx, geoID, partyID)
	if err != nil {
		return nil, err
	}

	// Best effort; a failed write only costs the next reader a query.
	_ = r.cache.Set(ctx, geoID, partyID, rates)
	return rates, nil
}

// Ensure CachingTaxConfigRepository implements the interface
var _ quote.TaxConfigRepository = (*CachingTaxConfigRepository)(nil)
