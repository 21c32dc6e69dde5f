package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/brickyard-commerce/brickyard/internal/market"
)

// CatalogLister enumerates the products a full warmup run covers.
type CatalogLister interface {
	ListActiveIDs(ctx context.Context) ([]int64, error)
}

// MarketWarmupJob refreshes cached market analyses so the first request after
// a cache expiry does not pay the source latency.
type MarketWarmupJob struct {
	Market  *market.Service
	Catalog CatalogLister
	Logger  *slog.Logger
	clock   func() time.Time
}

// NewMarketWarmupJob wires dependencies for the warmup handler.
func NewMarketWarmupJob(marketSvc *market.Service, catalog CatalogLister, logger *slog.Logger) *MarketWarmupJob {
	return &MarketWarmupJob{
		Market:  marketSvc,
		Catalog: catalog,
		Logger:  logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes market warmup tasks.
func (j *MarketWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Market == nil {
		return errors.New("market warmup: handler not configured")
	}
	var payload MarketWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	ids := payload.ProductIDs
	if len(ids) == 0 {
		var err error
		ids, err = j.Catalog.ListActiveIDs(ctx)
		if err != nil {
			return err
		}
	}

	started := j.clock()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, id := range ids {
		g.Go(func() error {
			if _, err := j.Market.Refresh(gctx, id); err != nil {
				j.logger().Warn("market warmup refresh", slog.Int64("product_id", id), slog.Any("error", err))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	j.logger().Info("market warmup complete",
		slog.Int("products", len(ids)),
		slog.Duration("took", j.clock().Sub(started)),
	)
	return nil
}

func (j *MarketWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
