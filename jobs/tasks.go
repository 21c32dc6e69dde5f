package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskMarketWarmup is the task type for refreshing market analysis caches.
	TaskMarketWarmup = "market:warmup"
)

// MarketWarmupPayload scopes a warmup run. An empty ProductIDs slice means
// every active product.
type MarketWarmupPayload struct {
	ProductIDs []int64 `json:"product_ids,omitempty"`
}

// NewMarketWarmupTask constructs an Asynq task.
func NewMarketWarmupTask(payload MarketWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMarketWarmup, data), nil
}
