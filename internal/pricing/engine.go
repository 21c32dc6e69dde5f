package pricing

import (
	"math"
	"sort"
	"strings"

	"github.com/brickyard-commerce/brickyard/internal/catalog"
)

// defaultTaxRate applies when a product carries no explicit tax percentage.
const defaultTaxRate = 12.0

var locationMultipliers = map[string]float64{
	LocationLocal:    0,
	LocationCity:     0.02,
	LocationSuburban: 0.05,
	LocationRural:    0.08,
	LocationRemote:   0.12,
}

// fallbackLocationMultiplier covers unknown or missing locations. It is
// deliberately distinct from the zero multiplier of "local".
const fallbackLocationMultiplier = 0.03

var urgencyDeliveryMultipliers = map[string]float64{
	UrgencyStandard: 1,
	UrgencyUrgent:   1.5,
	UrgencyExpress:  2,
}

var urgencyChargeMultipliers = map[string]float64{
	UrgencyStandard: 0,
	UrgencyUrgent:   0.15,
	UrgencyExpress:  0.25,
}

// slab is one parsed quantity range with its per-unit price.
type slab struct {
	key       string
	min       int
	max       int
	unbounded bool
	price     float64
}

// Calculate produces the deterministic price breakdown for one product and
// order context. The product record is taken as-is; lookup belongs to the
// caller.
func Calculate(product catalog.Product, ctx Context) Breakdown {
	unitPrice := resolveUnitPrice(product.BasePrice, product.QuantitySlabs, ctx.Quantity)
	qty := float64(ctx.Quantity)

	// Slab discount vs. base price. A slab priced above base yields a
	// negative discount; only the reported savings are floored.
	quantityDiscount := round2((product.BasePrice - unitPrice) * qty)

	var loading, delivery float64
	taxRate := defaultTaxRate
	if product.Charges != nil {
		loading = product.Charges.Loading
		delivery = product.Charges.Delivery
		if product.Charges.Tax != nil {
			taxRate = *product.Charges.Tax
		}
	}

	deliveryMultiplier, ok := urgencyDeliveryMultipliers[normalizeTier(ctx.Urgency, UrgencyStandard)]
	if !ok {
		deliveryMultiplier = 1
	}
	loading = round2(loading)
	delivery = round2(delivery * deliveryMultiplier)

	locationSurcharge := round2(product.BasePrice * locationMultiplier(ctx.Location))
	urgencyCharge := round2(product.BasePrice * urgencyChargeMultipliers[normalizeTier(ctx.Urgency, UrgencyStandard)])

	subtotal := round2(unitPrice * qty)
	taxAmount := round2(subtotal * taxRate / 100)
	totalAmount := round2(subtotal + loading + delivery + locationSurcharge + urgencyCharge + taxAmount)

	return Breakdown{
		BasePrice:         product.BasePrice,
		QuantityDiscount:  quantityDiscount,
		LocationSurcharge: locationSurcharge,
		UrgencyCharge:     urgencyCharge,
		DeliveryCharge:    delivery,
		LoadingCharge:     loading,
		TaxAmount:         taxAmount,
		FinalPrice:        unitPrice,
		TotalAmount:       totalAmount,
		Savings:           math.Max(0, quantityDiscount),
	}
}

// DeliveryEstimate maps an urgency tier to the quoted lead time.
func DeliveryEstimate(urgency string) string {
	switch normalizeTier(urgency, UrgencyStandard) {
	case UrgencyUrgent:
		return "3 business days"
	case UrgencyExpress:
		return "1 business day"
	default:
		return "7 business days"
	}
}

// resolveUnitPrice picks the effective per-unit price for the quantity.
//
// Slabs sort ascending by range minimum; ties break on the narrower range,
// then the key. The lowest slab is the default when nothing matches, and the
// first matching slab wins even when ranges overlap.
func resolveUnitPrice(basePrice float64, slabs map[string]float64, quantity int) float64 {
	parsed := parseSlabs(slabs)
	if len(parsed) == 0 {
		return basePrice
	}
	price := parsed[0].price
	for _, s := range parsed {
		if quantity >= s.min && (s.unbounded || quantity <= s.max) {
			price = s.price
			break
		}
	}
	return price
}

// parseSlabs converts the stored slab table into a sorted slice, silently
// dropping keys that do not parse. Malformed production data stays unpriced
// rather than failing the whole calculation.
func parseSlabs(slabs map[string]float64) []slab {
	parsed := make([]slab, 0, len(slabs))
	for key, price := range slabs {
		s, ok := parseSlabKey(key)
		if !ok {
			continue
		}
		s.price = price
		parsed = append(parsed, s)
	}
	sort.Slice(parsed, func(i, j int) bool {
		a, b := parsed[i], parsed[j]
		if a.min != b.min {
			return a.min < b.min
		}
		if a.unbounded != b.unbounded {
			return !a.unbounded
		}
		if a.max != b.max {
			return a.max < b.max
		}
		return a.key < b.key
	})
	return parsed
}

func parseSlabKey(key string) (slab, bool) {
	trimmed := strings.TrimSpace(key)
	switch {
	case strings.Contains(trimmed, "+"):
		min, ok := parseLeadingInt(trimmed)
		if !ok {
			return slab{}, false
		}
		return slab{key: key, min: min, unbounded: true}, true
	case strings.Contains(trimmed, "-"):
		parts := strings.SplitN(trimmed, "-", 2)
		min, okMin := parseLeadingInt(parts[0])
		max, okMax := parseLeadingInt(parts[1])
		if !okMin || !okMax {
			return slab{}, false
		}
		return slab{key: key, min: min, max: max}, true
	default:
		n, ok := parseLeadingInt(trimmed)
		if !ok {
			return slab{}, false
		}
		return slab{key: key, min: n, max: n}, true
	}
}

// parseLeadingInt reads the leading decimal digits of s, matching the lenient
// numeric coercion the slab tables were originally written against.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	n := 0
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	return n, true
}

func locationMultiplier(location string) float64 {
	m, ok := locationMultipliers[strings.ToLower(strings.TrimSpace(location))]
	if !ok {
		return fallbackLocationMultiplier
	}
	return m
}

// normalizeTier lowercases the tier and falls back when empty. Unknown values
// pass through so each table applies its own default.
func normalizeTier(tier, fallback string) string {
	t := strings.ToLower(strings.TrimSpace(tier))
	if t == "" {
		return fallback
	}
	return t
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
