package pricing

import (
	"testing"

	"github.com/brickyard-commerce/brickyard/internal/catalog"
)

func productWithSlabs(base float64, slabs map[string]float64) catalog.Product {
	return catalog.Product{ID: 1, Name: "OPC 53 Cement", BasePrice: base, QuantitySlabs: slabs}
}

func TestSlabBoundaries(t *testing.T) {
	product := productWithSlabs(100, map[string]float64{"1-20": 100, "21-100": 90})

	at20 := Calculate(product, Context{Quantity: 20})
	if at20.FinalPrice != 100 {
		t.Fatalf("quantity 20: expected unit price 100, got %.2f", at20.FinalPrice)
	}
	at21 := Calculate(product, Context{Quantity: 21})
	if at21.FinalPrice != 90 {
		t.Fatalf("quantity 21: expected unit price 90, got %.2f", at21.FinalPrice)
	}
	if at21.QuantityDiscount != 210 {
		t.Fatalf("quantity 21: expected discount 210, got %.2f", at21.QuantityDiscount)
	}
}

func TestUnboundedSlab(t *testing.T) {
	product := productWithSlabs(100, map[string]float64{"1-100": 95, "101+": 80})
	got := Calculate(product, Context{Quantity: 10000})
	if got.FinalPrice != 80 {
		t.Fatalf("expected unbounded slab price 80, got %.2f", got.FinalPrice)
	}
}

func TestOverlappingSlabsDeterministic(t *testing.T) {
	product := productWithSlabs(100, map[string]float64{"1-50": 100, "1-100": 80})
	first := Calculate(product, Context{Quantity: 10})
	for i := 0; i < 50; i++ {
		again := Calculate(product, Context{Quantity: 10})
		if again.FinalPrice != first.FinalPrice {
			t.Fatalf("non-deterministic slab selection: %.2f then %.2f", first.FinalPrice, again.FinalPrice)
		}
	}
	// Equal minimums break the tie on the narrower range.
	if first.FinalPrice != 100 {
		t.Fatalf("expected narrower slab to win, got %.2f", first.FinalPrice)
	}
}

func TestNoSlabFallback(t *testing.T) {
	got := Calculate(productWithSlabs(100, nil), Context{Quantity: 500})
	if got.FinalPrice != 100 {
		t.Fatalf("expected base price 100, got %.2f", got.FinalPrice)
	}
	if got.QuantityDiscount != 0 {
		t.Fatalf("expected zero discount, got %.2f", got.QuantityDiscount)
	}

	empty := Calculate(productWithSlabs(100, map[string]float64{}), Context{Quantity: 500})
	if empty.FinalPrice != 100 || empty.QuantityDiscount != 0 {
		t.Fatalf("empty slab table should behave like no slabs: %+v", empty)
	}
}

func TestQuantityBelowAllSlabsUsesLowest(t *testing.T) {
	product := productWithSlabs(100, map[string]float64{"10-20": 95, "21+": 90})
	got := Calculate(product, Context{Quantity: 5})
	if got.FinalPrice != 95 {
		t.Fatalf("expected lowest slab default 95, got %.2f", got.FinalPrice)
	}
}

func TestMalformedSlabKeysSilentlySkipped(t *testing.T) {
	product := productWithSlabs(100, map[string]float64{"bulk": 10, "1-20": 95})
	got := Calculate(product, Context{Quantity: 5})
	if got.FinalPrice != 95 {
		t.Fatalf("malformed key should be ignored, got %.2f", got.FinalPrice)
	}

	allBad := Calculate(productWithSlabs(100, map[string]float64{"bulk": 10, "x-y": 20}), Context{Quantity: 5})
	if allBad.FinalPrice != 100 {
		t.Fatalf("all-malformed table should fall back to base price, got %.2f", allBad.FinalPrice)
	}
}

func TestUrgencyScalesDeliveryOnly(t *testing.T) {
	product := catalog.Product{
		ID:        2,
		BasePrice: 100,
		Charges:   &catalog.Charges{Loading: 10, Delivery: 20},
	}
	got := Calculate(product, Context{Quantity: 1, Urgency: UrgencyExpress})
	if got.DeliveryCharge != 40 {
		t.Fatalf("expected express delivery 40, got %.2f", got.DeliveryCharge)
	}
	if got.LoadingCharge != 10 {
		t.Fatalf("loading must not scale with urgency, got %.2f", got.LoadingCharge)
	}

	urgent := Calculate(product, Context{Quantity: 1, Urgency: UrgencyUrgent})
	if urgent.DeliveryCharge != 30 {
		t.Fatalf("expected urgent delivery 30, got %.2f", urgent.DeliveryCharge)
	}
}

func TestSurchargesFlatAcrossQuantity(t *testing.T) {
	product := productWithSlabs(200, nil)
	small := Calculate(product, Context{Quantity: 1, Location: LocationRemote})
	large := Calculate(product, Context{Quantity: 1000, Location: LocationRemote})
	if small.LocationSurcharge != 24 || large.LocationSurcharge != 24 {
		t.Fatalf("remote surcharge must be flat basePrice*0.12: %.2f vs %.2f", small.LocationSurcharge, large.LocationSurcharge)
	}

	urgentSmall := Calculate(product, Context{Quantity: 1, Urgency: UrgencyUrgent})
	urgentLarge := Calculate(product, Context{Quantity: 1000, Urgency: UrgencyUrgent})
	if urgentSmall.UrgencyCharge != 30 || urgentLarge.UrgencyCharge != 30 {
		t.Fatalf("urgency charge must be flat basePrice*0.15: %.2f vs %.2f", urgentSmall.UrgencyCharge, urgentLarge.UrgencyCharge)
	}
}

func TestUnknownLocationFallbackMultiplier(t *testing.T) {
	product := productWithSlabs(100, nil)
	unknown := Calculate(product, Context{Quantity: 1, Location: "offshore"})
	if unknown.LocationSurcharge != 3 {
		t.Fatalf("unknown location should use 0.03 multiplier, got %.2f", unknown.LocationSurcharge)
	}
	missing := Calculate(product, Context{Quantity: 1})
	if missing.LocationSurcharge != 3 {
		t.Fatalf("missing location should use 0.03 multiplier, got %.2f", missing.LocationSurcharge)
	}
	local := Calculate(product, Context{Quantity: 1, Location: LocationLocal})
	if local.LocationSurcharge != 0 {
		t.Fatalf("local surcharge must be zero, got %.2f", local.LocationSurcharge)
	}
}

func TestSavingsFloor(t *testing.T) {
	product := productWithSlabs(100, map[string]float64{"1-10": 120})
	got := Calculate(product, Context{Quantity: 5})
	if got.QuantityDiscount != -100 {
		t.Fatalf("expected negative internal discount -100, got %.2f", got.QuantityDiscount)
	}
	if got.Savings != 0 {
		t.Fatalf("savings must be floored at zero, got %.2f", got.Savings)
	}
	if got.FinalPrice != 120 {
		t.Fatalf("slab above base must still price at 120, got %.2f", got.FinalPrice)
	}
}

func TestDefaultTaxRate(t *testing.T) {
	noCharges := Calculate(productWithSlabs(100, nil), Context{Quantity: 10})
	if noCharges.TaxAmount != 120 {
		t.Fatalf("expected default 12%% tax 120, got %.2f", noCharges.TaxAmount)
	}

	gst := 18.0
	product := catalog.Product{BasePrice: 100, Charges: &catalog.Charges{Tax: &gst}}
	got := Calculate(product, Context{Quantity: 10})
	if got.TaxAmount != 180 {
		t.Fatalf("expected explicit 18%% tax 180, got %.2f", got.TaxAmount)
	}
}

func TestTotalComposition(t *testing.T) {
	product := catalog.Product{
		BasePrice:     100,
		QuantitySlabs: map[string]float64{"1-20": 100, "21+": 90},
		Charges:       &catalog.Charges{Loading: 15, Delivery: 25},
	}
	got := Calculate(product, Context{Quantity: 30, Location: LocationCity, Urgency: UrgencyUrgent})

	want := got.FinalPrice*30 + got.LoadingCharge + got.DeliveryCharge + got.LocationSurcharge + got.UrgencyCharge + got.TaxAmount
	if got.TotalAmount != round2(want) {
		t.Fatalf("total %.2f does not compose from parts %.2f", got.TotalAmount, want)
	}
	if got.BasePrice != 100 {
		t.Fatalf("breakdown must echo the unscaled base price, got %.2f", got.BasePrice)
	}
}

func TestDeliveryEstimate(t *testing.T) {
	cases := map[string]string{
		UrgencyStandard: "7 business days",
		UrgencyUrgent:   "3 business days",
		UrgencyExpress:  "1 business day",
		"whenever":      "7 business days",
		"":              "7 business days",
	}
	for urgency, want := range cases {
		if got := DeliveryEstimate(urgency); got != want {
			t.Fatalf("urgency %q: expected %q, got %q", urgency, want, got)
		}
	}
}
