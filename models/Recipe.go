package models

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	"pizzacost/internal/costing"
)

// ErrRecipeNameRequired is returned when a recipe is saved without a name.
var ErrRecipeNameRequired = errors.New("recipe name is required")

// ErrNegativeAmount is returned when margin, overhead or a size's packaging
// is negative or not a finite number.
var ErrNegativeAmount = errors.New("amount must be zero or more")

// Recipe is a product ("flavor") offered in every size. Each size carries its
// own bill of materials and packaging; margin and overhead are shared.
type Recipe struct {
	gorm.Model
	OwnerID   uint         `gorm:"not null;index" json:"owner_id"`
	Name      string       `gorm:"not null" json:"name"`
	MarginPct float64      `gorm:"not null;default:0" json:"margin_pct"`
	Overhead  float64      `gorm:"not null;default:0" json:"overhead"`
	Sizes     []RecipeSize `gorm:"foreignKey:RecipeID" json:"sizes"`
}

// RecipeSize is the cost sheet of a recipe for one size. IngredientCost,
// TotalCost and SuggestedPrice cache the last computation and are rewritten
// on every save.
type RecipeSize struct {
	gorm.Model
	RecipeID       uint                   `gorm:"not null;index" json:"recipe_id"`
	Size           string                 `gorm:"type:varchar(4);not null" json:"size"`
	Packaging      float64                `gorm:"not null;default:0" json:"packaging"`
	IngredientCost float64                `json:"ingredient_cost"`
	TotalCost      float64                `json:"total_cost"`
	SuggestedPrice float64                `json:"suggested_price"`
	Ingredients    []RecipeSizeIngredient `gorm:"foreignKey:RecipeSizeID" json:"ingredients"`
}

// RecipeSizeIngredient references an ingredient by id. The reference is weak:
// it stays valid after the ingredient is deleted and then costs nothing.
type RecipeSizeIngredient struct {
	gorm.Model
	RecipeSizeID uint    `gorm:"not null;index" json:"recipe_size_id"`
	Position     int     `gorm:"not null;default:0" json:"position"`
	IngredientID uint    `gorm:"not null;index" json:"ingredient_id"`
	Quantity     float64 `gorm:"not null;default:0" json:"quantity"`
	Unit         string  `gorm:"type:varchar(8);not null" json:"unit"`
}

// NewRecipe returns a recipe with default margin, overhead and one empty sheet per size.
func NewRecipe(ownerID uint, name string) Recipe {
	recipe := Recipe{
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(name),
		MarginPct: costing.DefaultMarginPct,
		Overhead:  costing.DefaultOverhead,
	}
	recipe.EnsureSizes()
	return recipe
}

// Validate checks the rules that must hold before a recipe is persisted.
func (r Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrRecipeNameRequired
	}
	if !nonNegative(r.MarginPct) {
		return fmt.Errorf("margin %v: %w", r.MarginPct, ErrNegativeAmount)
	}
	if !nonNegative(r.Overhead) {
		return fmt.Errorf("overhead %v: %w", r.Overhead, ErrNegativeAmount)
	}
	for _, size := range r.Sizes {
		if _, err := costing.ParseSize(size.Size); err != nil {
			return err
		}
		if !nonNegative(size.Packaging) {
			return fmt.Errorf("packaging for %s %v: %w", size.Size, size.Packaging, ErrNegativeAmount)
		}
		for _, ref := range size.Ingredients {
			if !costing.Unit(ref.Unit).Valid() {
				return costing.ErrUnknownUnit
			}
		}
	}
	return nil
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// EnsureSizes orders the sheets by size and adds a default sheet for any
// size that is missing. Sheets with unknown labels are dropped.
func (r *Recipe) EnsureSizes() {
	bySize := make(map[costing.Size]RecipeSize, len(r.Sizes))
	for _, sheet := range r.Sizes {
		size, err := costing.ParseSize(sheet.Size)
		if err != nil {
			continue
		}
		sheet.Size = size.String()
		bySize[size] = sheet
	}

	ordered := make([]RecipeSize, 0, len(costing.Sizes()))
	for _, size := range costing.Sizes() {
		sheet, ok := bySize[size]
		if !ok {
			sheet = RecipeSize{
				RecipeID:  r.ID,
				Size:      size.String(),
				Packaging: costing.DefaultPackaging(size),
			}
		}
		ordered = append(ordered, sheet)
	}
	r.Sizes = ordered
}

// SizeFor returns the sheet for size, or nil when the recipe has none.
func (r *Recipe) SizeFor(size costing.Size) *RecipeSize {
	for i := range r.Sizes {
		if r.Sizes[i].Size == size.String() {
			return &r.Sizes[i]
		}
	}
	return nil
}

// Input converts the recipe into the engine's input snapshot.
func (r Recipe) Input() costing.RecipeInput {
	in := costing.RecipeInput{
		MarginPct: r.MarginPct,
		Overhead:  r.Overhead,
		Sizes:     make(map[costing.Size]costing.SizeConfig, len(r.Sizes)),
	}
	for _, sheet := range r.Sizes {
		refs := make([]costing.IngredientRef, 0, len(sheet.Ingredients))
		for _, ref := range sheet.Ingredients {
			refs = append(refs, costing.IngredientRef{
				IngredientID: ref.IngredientID,
				Quantity:     ref.Quantity,
				Unit:         costing.Unit(ref.Unit),
			})
		}
		in.Sizes[costing.Size(sheet.Size)] = costing.SizeConfig{
			Ingredients: refs,
			Packaging:   sheet.Packaging,
		}
	}
	return in
}

// Recompute prices every size against catalog and caches the results on the
// recipe's sheets.
func (r *Recipe) Recompute(catalog costing.Catalog) costing.RecipeCost {
	r.EnsureSizes()
	result := costing.ComputeRecipe(r.Input(), catalog)
	for i := range r.Sizes {
		sheet, ok := result.For(costing.Size(r.Sizes[i].Size))
		if !ok {
			continue
		}
		r.Sizes[i].IngredientCost = sheet.IngredientCost
		r.Sizes[i].TotalCost = sheet.TotalCost
		r.Sizes[i].SuggestedPrice = sheet.SuggestedPrice
	}
	return result
}

// CopySize replaces the ingredient list of to with a copy of from's list.
func (r *Recipe) CopySize(from, to costing.Size) error {
	if !from.Valid() || !to.Valid() {
		return costing.ErrUnknownSize
	}
	if from == to {
		return nil
	}
	r.EnsureSizes()
	source := r.SizeFor(from)
	target := r.SizeFor(to)

	copied := make([]RecipeSizeIngredient, 0, len(source.Ingredients))
	for i, ref := range source.Ingredients {
		copied = append(copied, RecipeSizeIngredient{
			Position:     i,
			IngredientID: ref.IngredientID,
			Quantity:     ref.Quantity,
			Unit:         ref.Unit,
		})
	}
	target.Ingredients = copied
	return nil
}
