package market

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/brickyard-commerce/brickyard/internal/catalog"
)

// ProductStore is the catalog lookup the analyzer depends on.
type ProductStore interface {
	Get(ctx context.Context, id int64) (catalog.Product, error)
}

// Service fronts a market data source with a Redis cache. Concurrent requests
// for the same product collapse into a single source call.
type Service struct {
	store  ProductStore
	source Source
	cache  *Cache
	group  singleflight.Group
}

// NewService constructs the market analysis service.
func NewService(store ProductStore, source Source, cache *Cache) *Service {
	return &Service{store: store, source: source, cache: cache}
}

// Analyze returns the (possibly cached) market analysis for a product.
func (s *Service) Analyze(ctx context.Context, productID int64) (Analysis, error) {
	product, err := s.store.Get(ctx, productID)
	if err != nil {
		return Analysis{}, fmt.Errorf("fetch product %d: %w", productID, err)
	}

	key, err := s.cache.BuildKey(ctx, analysisKey(productID)...)
	if err != nil {
		return Analysis{}, err
	}

	resultChan := s.group.DoChan(key, func() (interface{}, error) {
		var analysis Analysis
		err := s.cache.FetchJSON(ctx, key, &analysis, func(ctx context.Context) (interface{}, error) {
			return s.source.Analyze(ctx, product)
		})
		return analysis, err
	})
	select {
	case <-ctx.Done():
		return Analysis{}, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return Analysis{}, res.Err
		}
		return res.Val.(Analysis), nil
	}
}

// Refresh recomputes and caches the analysis for one product, bypassing any
// cached value. Used by the warmup job.
func (s *Service) Refresh(ctx context.Context, productID int64) (Analysis, error) {
	product, err := s.store.Get(ctx, productID)
	if err != nil {
		return Analysis{}, fmt.Errorf("fetch product %d: %w", productID, err)
	}
	analysis, err := s.source.Analyze(ctx, product)
	if err != nil {
		return Analysis{}, err
	}
	key, err := s.cache.BuildKey(ctx, analysisKey(productID)...)
	if err != nil {
		return Analysis{}, err
	}
	if err := s.cache.Put(ctx, key, analysis); err != nil {
		return Analysis{}, err
	}
	return analysis, nil
}
