package market

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/brickyard-commerce/brickyard/internal/catalog"
)

// PricePoint is one day of synthesized or observed market pricing.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// Analysis compares our price for a product against the market.
type Analysis struct {
	ProductID     int64        `json:"product_id"`
	ProductName   string       `json:"product_name"`
	OurPrice      float64      `json:"our_price"`
	MarketAverage float64      `json:"market_average"`
	PricePosition string       `json:"price_position"`
	PriceHistory  []PricePoint `json:"price_history"`
	GeneratedAt   time.Time    `json:"generated_at"`
}

// Source produces a market analysis for a product. Implementations are
// expected to be external market-data feeds; the simulated source below is a
// placeholder, not real business logic.
type Source interface {
	Analyze(ctx context.Context, product catalog.Product) (Analysis, error)
}

// SimulatedSource synthesizes market prices around our own price: the market
// average lands within ±5% of base price and the 30-day history is a random
// daily variation in the same band.
type SimulatedSource struct {
	mu    sync.Mutex
	rng   *rand.Rand
	clock func() time.Time
}

// NewSimulatedSource seeds the generator. Pass a fixed seed in tests.
func NewSimulatedSource(seed int64) *SimulatedSource {
	return &SimulatedSource{
		rng:   rand.New(rand.NewSource(seed)),
		clock: time.Now,
	}
}

// WithClock overrides the wall clock, for tests.
func (s *SimulatedSource) WithClock(clock func() time.Time) *SimulatedSource {
	s.clock = clock
	return s
}

func (s *SimulatedSource) Analyze(_ context.Context, product catalog.Product) (Analysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	average := round2(product.BasePrice * s.variation())

	history := make([]PricePoint, 0, 30)
	for day := 29; day >= 0; day-- {
		history = append(history, PricePoint{
			Date:  now.AddDate(0, 0, -day).Format("2006-01-02"),
			Price: round2(product.BasePrice * s.variation()),
		})
	}

	return Analysis{
		ProductID:     product.ID,
		ProductName:   product.Name,
		OurPrice:      product.BasePrice,
		MarketAverage: average,
		PricePosition: position(product.BasePrice, average),
		PriceHistory:  history,
		GeneratedAt:   now,
	}, nil
}

// variation returns a factor in [0.95, 1.05).
func (s *SimulatedSource) variation() float64 {
	return 0.95 + s.rng.Float64()*0.10
}

func position(ours, market float64) string {
	if market == 0 {
		return "competitive"
	}
	switch diff := (ours - market) / market; {
	case diff > 0.02:
		return "above_market"
	case diff < -0.02:
		return "below_market"
	default:
		return "competitive"
	}
}
