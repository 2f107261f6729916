package costing

import (
	"math"
	"testing"
)

const (
	cheeseID uint = 1
	milkID   uint = 2
)

func cheeseCatalog(t *testing.T) PriceCatalog {
	t.Helper()
	cheese, err := Normalize(50, 5, UnitKilogram)
	if err != nil {
		t.Fatalf("normalize cheese: %v", err)
	}
	milk, err := Normalize(6, 1, UnitLiter)
	if err != nil {
		t.Fatalf("normalize milk: %v", err)
	}
	return PriceCatalog{cheeseID: cheese, milkID: milk}
}

func largeCheeseSize() SizeConfig {
	return SizeConfig{
		Ingredients: []IngredientRef{{IngredientID: cheeseID, Quantity: 200, Unit: UnitGram}},
		Packaging:   2.20,
	}
}

func TestComputeSizeCheesePizza(t *testing.T) {
	t.Parallel()

	got := ComputeSize(largeCheeseSize(), 5.00, 50, cheeseCatalog(t))
	if !almostEqual(got.IngredientCost, 2.00) {
		t.Fatalf("IngredientCost = %v, want 2.00", got.IngredientCost)
	}
	if !almostEqual(got.TotalCost, 9.20) {
		t.Fatalf("TotalCost = %v, want 9.20", got.TotalCost)
	}
	if !almostEqual(got.SuggestedPrice, 13.80) {
		t.Fatalf("SuggestedPrice = %v, want 13.80", got.SuggestedPrice)
	}
	if len(got.Lines) != 1 || !got.Lines[0].Found || !almostEqual(got.Lines[0].BaseQuantity, 200) {
		t.Fatalf("unexpected breakdown: %+v", got.Lines)
	}
}

func TestComputeSizeMarginChangeKeepsTotalCost(t *testing.T) {
	t.Parallel()

	catalog := cheeseCatalog(t)
	before := ComputeSize(largeCheeseSize(), 5.00, 50, catalog)
	after := ComputeSize(largeCheeseSize(), 5.00, 100, catalog)
	if before.TotalCost != after.TotalCost {
		t.Fatalf("total cost changed with margin: %v -> %v", before.TotalCost, after.TotalCost)
	}
	if !almostEqual(after.SuggestedPrice, 18.40) {
		t.Fatalf("SuggestedPrice = %v, want 18.40", after.SuggestedPrice)
	}
}

func TestComputeSizeUsesReferenceUnit(t *testing.T) {
	t.Parallel()

	catalog := cheeseCatalog(t)
	inMilliliters := ComputeSize(SizeConfig{
		Ingredients: []IngredientRef{{IngredientID: milkID, Quantity: 250, Unit: UnitMilliliter}},
	}, 0, 0, catalog)
	if !almostEqual(inMilliliters.IngredientCost, 1.50) {
		t.Fatalf("250ml of milk at 6/l = %v, want 1.50", inMilliliters.IngredientCost)
	}

	inLiters := ComputeSize(SizeConfig{
		Ingredients: []IngredientRef{{IngredientID: milkID, Quantity: 0.25, Unit: UnitLiter}},
	}, 0, 0, catalog)
	if !almostEqual(inLiters.IngredientCost, inMilliliters.IngredientCost) {
		t.Fatalf("0.25l and 250ml priced differently: %v vs %v", inLiters.IngredientCost, inMilliliters.IngredientCost)
	}
}

func TestComputeSizeWithoutIngredients(t *testing.T) {
	t.Parallel()

	packaging, overhead := 2.20, 5.00
	got := ComputeSize(SizeConfig{Packaging: packaging}, overhead, 50, cheeseCatalog(t))
	if got.IngredientCost != 0 {
		t.Fatalf("IngredientCost = %v, want 0", got.IngredientCost)
	}
	if got.TotalCost != packaging+overhead {
		t.Fatalf("TotalCost = %v, want packaging + overhead", got.TotalCost)
	}
	if got.SuggestedPrice != Markup(packaging+overhead, 50) {
		t.Fatalf("SuggestedPrice = %v", got.SuggestedPrice)
	}
}

func TestComputeSizeToleratesMissingIngredient(t *testing.T) {
	t.Parallel()

	catalog := cheeseCatalog(t)
	cfg := SizeConfig{
		Ingredients: []IngredientRef{
			{IngredientID: cheeseID, Quantity: 200, Unit: UnitGram},
			{IngredientID: milkID, Quantity: 100, Unit: UnitMilliliter},
		},
		Packaging: 1,
	}

	full := ComputeSize(cfg, 2, 10, catalog)
	removed := full.Lines[1].Cost

	delete(catalog, milkID)
	partial := ComputeSize(cfg, 2, 10, catalog)
	if !almostEqual(full.IngredientCost-partial.IngredientCost, removed) {
		t.Fatalf("ingredient cost dropped by %v, want %v", full.IngredientCost-partial.IngredientCost, removed)
	}
	if partial.Lines[1].Found || partial.Lines[1].Cost != 0 {
		t.Fatalf("stale reference should be inert: %+v", partial.Lines[1])
	}
}

func TestComputeSizeNilCatalog(t *testing.T) {
	t.Parallel()

	got := ComputeSize(largeCheeseSize(), 1, 0, nil)
	if got.IngredientCost != 0 || !almostEqual(got.TotalCost, 3.20) {
		t.Fatalf("unexpected result with nil catalog: %+v", got)
	}
}

func TestComputeSizeMarginMonotonic(t *testing.T) {
	t.Parallel()

	catalog := cheeseCatalog(t)
	previous := math.Inf(-1)
	for _, margin := range []float64{0, 10, 25, 50, 100, 250} {
		got := ComputeSize(largeCheeseSize(), 5, margin, catalog).SuggestedPrice
		if got <= previous {
			t.Fatalf("suggested price %v at margin %v not above %v", got, margin, previous)
		}
		previous = got
	}
}

func TestComputeSizeIngredientPriceMonotonic(t *testing.T) {
	t.Parallel()

	previous := math.Inf(-1)
	for _, price := range []float64{0, 0.001, 0.01, 0.5, 3} {
		got := ComputeSize(largeCheeseSize(), 5, 50, PriceCatalog{cheeseID: price}).IngredientCost
		if got < previous {
			t.Fatalf("ingredient cost %v at price %v dropped below %v", got, price, previous)
		}
		previous = got
	}
}

func TestComputeSizePropagatesNaN(t *testing.T) {
	t.Parallel()

	got := ComputeSize(SizeConfig{Packaging: math.NaN()}, 5, 50, nil)
	if !math.IsNaN(got.TotalCost) || !math.IsNaN(got.SuggestedPrice) {
		t.Fatalf("expected NaN to propagate, got %+v", got)
	}
}

func TestComputeRecipePricesEverySize(t *testing.T) {
	t.Parallel()

	catalog := cheeseCatalog(t)
	in := RecipeInput{
		MarginPct: 50,
		Overhead:  5,
		Sizes: map[Size]SizeConfig{
			SizeSmall: {
				Ingredients: []IngredientRef{{IngredientID: cheeseID, Quantity: 80, Unit: UnitGram}},
				Packaging:   1.50,
			},
			SizeLarge: largeCheeseSize(),
		},
	}

	got := ComputeRecipe(in, catalog)
	if len(got.Sizes) != len(Sizes()) {
		t.Fatalf("expected %d size sheets, got %d", len(Sizes()), len(got.Sizes))
	}
	for i, size := range Sizes() {
		if got.Sizes[i].Size != size {
			t.Fatalf("Sizes[%d] = %q, want %q", i, got.Sizes[i].Size, size)
		}
	}

	large, ok := got.For(SizeLarge)
	if !ok || !almostEqual(large.SuggestedPrice, 13.80) {
		t.Fatalf("large sheet = %+v", large)
	}
	small, _ := got.For(SizeSmall)
	if !almostEqual(small.TotalCost, 0.80+1.50+5) {
		t.Fatalf("small total cost = %v", small.TotalCost)
	}
	family, _ := got.For(SizeFamily)
	if family.TotalCost != 5 || family.IngredientCost != 0 {
		t.Fatalf("unconfigured size should cost only overhead, got %+v", family)
	}
	if _, ok := got.For(Size("XL")); ok {
		t.Fatal("unexpected sheet for unknown size")
	}
}
