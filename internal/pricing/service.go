package pricing

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/brickyard-commerce/brickyard/internal/catalog"
	"github.com/brickyard-commerce/brickyard/internal/shared"
)

// ProductStore is the read-side of the catalog the engine prices against.
type ProductStore interface {
	Get(ctx context.Context, id int64) (catalog.Product, error)
}

// quotationValidity is the fixed offer window attached to every quotation.
const quotationValidity = 30 * 24 * time.Hour

// quotationTerms is the boilerplate attached to every generated quotation.
var quotationTerms = []string{
	"Prices are inclusive of applicable taxes",
	"Delivery charges apply as per selected urgency",
	"Quotation is valid for 30 days from the date of issue",
	"Payment terms: net 30 days from delivery",
	"All items are subject to availability at the time of order",
}

// Service exposes the pricing engine over a product store.
type Service struct {
	store ProductStore
	clock func() time.Time
}

// NewService constructs the pricing service.
func NewService(store ProductStore) *Service {
	return &Service{
		store: store,
		clock: time.Now,
	}
}

// WithClock overrides the wall clock, for tests.
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// CalculateProductPricing fetches the product and computes its breakdown.
func (s *Service) CalculateProductPricing(ctx context.Context, productID int64, pctx Context) (Breakdown, error) {
	product, err := s.store.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Breakdown{}, fmt.Errorf("product %d: %w", productID, shared.ErrNotFound)
		}
		return Breakdown{}, fmt.Errorf("fetch product %d: %w", productID, err)
	}
	return Calculate(product, pctx), nil
}

// GenerateQuotation prices every requested line item and assembles the
// time-bounded offer. Line items whose product cannot be found are skipped
// silently; an empty request still yields an empty quotation.
func (s *Service) GenerateQuotation(ctx context.Context, items []ItemRequest, pctx Context) (Quotation, error) {
	results := make([]*QuotationItem, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, item := range items {
		g.Go(func() error {
			product, err := s.store.Get(gctx, item.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return nil
				}
				return fmt.Errorf("fetch product %d: %w", item.ProductID, err)
			}
			itemCtx := pctx
			itemCtx.Quantity = item.Quantity
			results[i] = &QuotationItem{
				ProductID:      item.ProductID,
				ProductName:    product.Name,
				Quantity:       item.Quantity,
				Specifications: item.Specifications,
				Company:        item.Company,
				Brand:          item.Brand,
				Breakdown:      Calculate(product, itemCtx),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Quotation{}, err
	}

	now := s.clock()
	quotation := Quotation{
		ID:               s.quotationID(now),
		Items:            make([]QuotationItem, 0, len(items)),
		DeliveryEstimate: DeliveryEstimate(pctx.Urgency),
		ValidUntil:       now.Add(quotationValidity),
		GeneratedAt:      now,
		Terms:            quotationTerms,
	}
	for _, item := range results {
		if item == nil {
			continue
		}
		quotation.Items = append(quotation.Items, *item)
		quotation.TotalAmount = round2(quotation.TotalAmount + item.Breakdown.TotalAmount)
		quotation.TotalSavings = round2(quotation.TotalSavings + item.Breakdown.Savings)
	}
	return quotation, nil
}

const quotationIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// quotationID builds identifiers like QUO-MB3K2F1A-7GQ2X: a base36 timestamp
// plus five random base36 characters. The shared rand source is safe for
// concurrent quotation requests.
func (s *Service) quotationID(now time.Time) string {
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = quotationIDAlphabet[rand.Intn(len(quotationIDAlphabet))]
	}
	stamp := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return "QUO-" + stamp + "-" + string(suffix)
}
