// Package costing derives per-size production cost and suggested sale price
// for multi-size recipes. Every function is pure: callers pass a full snapshot
// of ingredient prices and receive a full snapshot of results.
package costing

// Catalog resolves the current base-unit price of an ingredient.
type Catalog interface {
	BaseUnitPrice(id uint) (float64, bool)
}

// PriceCatalog is a Catalog backed by a map of ingredient id to base-unit price.
type PriceCatalog map[uint]float64

// BaseUnitPrice implements Catalog.
func (c PriceCatalog) BaseUnitPrice(id uint) (float64, bool) {
	price, ok := c[id]
	return price, ok
}

// IngredientRef points at an ingredient and the amount a size consumes.
// Unit may differ from the ingredient's purchase unit.
type IngredientRef struct {
	IngredientID uint
	Quantity     float64
	Unit         Unit
}

// SizeConfig is the bill of materials for one size.
type SizeConfig struct {
	Ingredients []IngredientRef
	Packaging   float64
}

// RecipeInput carries everything needed to price all sizes of a recipe.
// Sizes missing from the map are priced with an empty ingredient list and
// zero packaging.
type RecipeInput struct {
	MarginPct float64
	Overhead  float64
	Sizes     map[Size]SizeConfig
}

// IngredientLine is the contribution of a single reference.
type IngredientLine struct {
	IngredientID  uint
	Found         bool
	BaseQuantity  float64
	BaseUnitPrice float64
	Cost          float64
}

// SizeCost is the computed cost sheet for one size.
type SizeCost struct {
	Size           Size
	Lines          []IngredientLine
	IngredientCost float64
	Packaging      float64
	Overhead       float64
	TotalCost      float64
	SuggestedPrice float64
}

// RecipeCost holds the cost sheet of every size, in Sizes() order.
type RecipeCost struct {
	Sizes []SizeCost
}

// For returns the cost sheet of the requested size.
func (rc RecipeCost) For(size Size) (SizeCost, bool) {
	for _, sc := range rc.Sizes {
		if sc.Size == size {
			return sc, true
		}
	}
	return SizeCost{}, false
}

// Markup applies a cost-plus percentage to cost.
func Markup(cost, marginPct float64) float64 {
	return cost * (1 + marginPct/100)
}

// IngredientCost sums the contribution of every reference. References to
// ingredients missing from the catalog contribute nothing.
func IngredientCost(refs []IngredientRef, catalog Catalog) (float64, []IngredientLine) {
	lines := make([]IngredientLine, 0, len(refs))
	total := 0.0
	for _, ref := range refs {
		line := IngredientLine{
			IngredientID: ref.IngredientID,
			BaseQuantity: ref.Unit.ToBase(ref.Quantity),
		}
		if catalog != nil {
			if price, ok := catalog.BaseUnitPrice(ref.IngredientID); ok {
				line.Found = true
				line.BaseUnitPrice = price
				line.Cost = line.BaseQuantity * price
				total += line.Cost
			}
		}
		lines = append(lines, line)
	}
	return total, lines
}

// ComputeSize prices one size: ingredients plus packaging plus the recipe's
// fixed overhead, marked up by marginPct. Nothing is rounded or clamped.
func ComputeSize(cfg SizeConfig, overhead, marginPct float64, catalog Catalog) SizeCost {
	ingredientCost, lines := IngredientCost(cfg.Ingredients, catalog)
	total := ingredientCost + cfg.Packaging + overhead
	return SizeCost{
		Lines:          lines,
		IngredientCost: ingredientCost,
		Packaging:      cfg.Packaging,
		Overhead:       overhead,
		TotalCost:      total,
		SuggestedPrice: Markup(total, marginPct),
	}
}

// ComputeRecipe prices every size of the recipe from scratch.
func ComputeRecipe(in RecipeInput, catalog Catalog) RecipeCost {
	out := RecipeCost{Sizes: make([]SizeCost, 0, len(sizes))}
	for _, size := range sizes {
		sc := ComputeSize(in.Sizes[size], in.Overhead, in.MarginPct, catalog)
		sc.Size = size
		out.Sizes = append(out.Sizes, sc)
	}
	return out
}
