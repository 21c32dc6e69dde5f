package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickyard-commerce/brickyard/internal/catalog"
	"github.com/brickyard-commerce/brickyard/internal/market"
	"github.com/brickyard-commerce/brickyard/internal/shared"
)

type fakeCatalog struct {
	products map[int64]catalog.Product
	listErr  error
}

func (f *fakeCatalog) Get(_ context.Context, id int64) (catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return catalog.Product{}, shared.ErrNotFound
	}
	return p, nil
}

func (f *fakeCatalog) ListActiveIDs(_ context.Context) ([]int64, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make([]int64, 0, len(f.products))
	for id := range f.products {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestMarketWarmupHandle(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	store := &fakeCatalog{products: map[int64]catalog.Product{
		1: {ID: 1, Name: "AAC Block 600x200x100", BasePrice: 52, IsActive: true},
		2: {ID: 2, Name: "M-Sand (per ton)", BasePrice: 1450, IsActive: true},
	}}
	cache := market.NewCache(client, time.Minute)
	svc := market.NewService(store, market.NewSimulatedSource(1), cache)

	job := NewMarketWarmupJob(svc, store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	task, err := NewMarketWarmupTask(MarketWarmupPayload{})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))

	keys := client.Keys(context.Background(), "market:analysis:*").Val()
	assert.Len(t, keys, 2)
}

func TestMarketWarmupScopedPayload(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	store := &fakeCatalog{products: map[int64]catalog.Product{
		1: {ID: 1, Name: "AAC Block", BasePrice: 52, IsActive: true},
		2: {ID: 2, Name: "M-Sand", BasePrice: 1450, IsActive: true},
	}}
	cache := market.NewCache(client, time.Minute)
	svc := market.NewService(store, market.NewSimulatedSource(1), cache)
	job := NewMarketWarmupJob(svc, store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	task, err := NewMarketWarmupTask(MarketWarmupPayload{ProductIDs: []int64{2}})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))

	keys := client.Keys(context.Background(), "market:analysis:*").Val()
	assert.Len(t, keys, 1)
}

func TestMarketWarmupRejectsBadPayload(t *testing.T) {
	job := NewMarketWarmupJob(market.NewService(nil, nil, nil), nil, nil)
	err := job.Handle(context.Background(), asynq.NewTask(TaskMarketWarmup, []byte("{")))
	assert.Error(t, err)
}
