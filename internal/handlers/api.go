package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"pizzacost/internal/costing"
	"pizzacost/models"
)

// amount encodes non-finite costs as null so a broken price never breaks the
// whole response.
type amount float64

func (a amount) MarshalJSON() ([]byte, error) {
	v := float64(a)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

type ingredientRequest struct {
	Name             string  `json:"name"`
	PurchasePrice    float64 `json:"purchase_price"`
	PurchaseQuantity float64 `json:"purchase_quantity"`
	PurchaseUnit     string  `json:"purchase_unit"`
}

type ingredientResponse struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	PurchasePrice    float64   `json:"purchase_price"`
	PurchaseQuantity float64   `json:"purchase_quantity"`
	PurchaseUnit     string    `json:"purchase_unit"`
	BaseUnit         string    `json:"base_unit"`
	BaseUnitPrice    amount    `json:"base_unit_price"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func projectIngredient(ingredient models.Ingredient) ingredientResponse {
	return ingredientResponse{
		ID:               ingredient.ID,
		Name:             ingredient.Name,
		PurchasePrice:    ingredient.PurchasePrice,
		PurchaseQuantity: ingredient.PurchaseQuantity,
		PurchaseUnit:     ingredient.PurchaseUnit,
		BaseUnit:         ingredient.Unit().BaseUnit().String(),
		BaseUnitPrice:    amount(ingredient.BaseUnitPrice),
		CreatedAt:        ingredient.CreatedAt,
		UpdatedAt:        ingredient.UpdatedAt,
	}
}

type lineRequest struct {
	IngredientID uint    `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
}

type sizeRequest struct {
	Ingredients []lineRequest `json:"ingredients"`
	Packaging   *float64      `json:"packaging"`
}

type recipeRequest struct {
	Name      string                 `json:"name"`
	MarginPct *float64               `json:"margin_pct"`
	Overhead  *float64               `json:"overhead"`
	Sizes     map[string]sizeRequest `json:"sizes"`
}

// apply copies the payload onto recipe. A nil Sizes map keeps the existing
// sheets; otherwise every sheet is replaced and sizes left out of the map
// start empty with their default packaging.
func (req recipeRequest) apply(recipe *models.Recipe) error {
	recipe.Name = req.Name
	if req.MarginPct != nil {
		recipe.MarginPct = *req.MarginPct
	}
	if req.Overhead != nil {
		recipe.Overhead = *req.Overhead
	}
	if req.Sizes == nil {
		recipe.EnsureSizes()
		return nil
	}

	previous := make(map[string]float64, len(recipe.Sizes))
	for _, sheet := range recipe.Sizes {
		previous[sheet.Size] = sheet.Packaging
	}

	sheets := make([]models.RecipeSize, 0, len(req.Sizes))
	for label, payload := range req.Sizes {
		size, err := costing.ParseSize(label)
		if err != nil {
			return fmt.Errorf("size %q: %w", label, err)
		}
		packaging, ok := previous[size.String()]
		if !ok {
			packaging = costing.DefaultPackaging(size)
		}
		if payload.Packaging != nil {
			packaging = *payload.Packaging
		}
		sheet := models.RecipeSize{RecipeID: recipe.ID, Size: size.String(), Packaging: packaging}
		for i, line := range payload.Ingredients {
			unit, err := costing.ParseUnit(line.Unit)
			if err != nil {
				return fmt.Errorf("size %s line %d unit %q: %w", size, i+1, line.Unit, err)
			}
			sheet.Ingredients = append(sheet.Ingredients, models.RecipeSizeIngredient{
				Position:     i,
				IngredientID: line.IngredientID,
				Quantity:     line.Quantity,
				Unit:         unit.String(),
			})
		}
		sheets = append(sheets, sheet)
	}
	recipe.Sizes = sheets
	recipe.EnsureSizes()
	return nil
}

type lineResponse struct {
	IngredientID  uint    `json:"ingredient_id"`
	Name          string  `json:"name"`
	Found         bool    `json:"found"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	BaseQuantity  amount  `json:"base_quantity"`
	BaseUnitPrice amount  `json:"base_unit_price"`
	Cost          amount  `json:"cost"`
}

type sizeResponse struct {
	Ingredients    []lineResponse `json:"ingredients"`
	Packaging      amount         `json:"packaging"`
	Overhead       amount         `json:"overhead"`
	IngredientCost amount         `json:"ingredient_cost"`
	TotalCost      amount         `json:"total_cost"`
	SuggestedPrice amount         `json:"suggested_price"`
	DisplayPrice   string         `json:"display_price"`
}

type recipeResponse struct {
	ID        uint                    `json:"id"`
	Name      string                  `json:"name"`
	MarginPct float64                 `json:"margin_pct"`
	Overhead  float64                 `json:"overhead"`
	Sizes     map[string]sizeResponse `json:"sizes"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

func projectRecipe(recipe models.Recipe, cost costing.RecipeCost, names map[uint]string) recipeResponse {
	response := recipeResponse{
		ID:        recipe.ID,
		Name:      recipe.Name,
		MarginPct: recipe.MarginPct,
		Overhead:  recipe.Overhead,
		Sizes:     make(map[string]sizeResponse, len(recipe.Sizes)),
		CreatedAt: recipe.CreatedAt,
		UpdatedAt: recipe.UpdatedAt,
	}
	for _, sheet := range recipe.Sizes {
		computed, _ := cost.For(costing.Size(sheet.Size))
		lines := make([]lineResponse, 0, len(sheet.Ingredients))
		for i, ref := range sheet.Ingredients {
			var line costing.IngredientLine
			if i < len(computed.Lines) {
				line = computed.Lines[i]
			}
			lines = append(lines, lineResponse{
				IngredientID:  ref.IngredientID,
				Name:          names[ref.IngredientID],
				Found:         line.Found,
				Quantity:      ref.Quantity,
				Unit:          ref.Unit,
				BaseQuantity:  amount(line.BaseQuantity),
				BaseUnitPrice: amount(line.BaseUnitPrice),
				Cost:          amount(line.Cost),
			})
		}
		response.Sizes[sheet.Size] = sizeResponse{
			Ingredients:    lines,
			Packaging:      amount(sheet.Packaging),
			Overhead:       amount(computed.Overhead),
			IngredientCost: amount(computed.IngredientCost),
			TotalCost:      amount(computed.TotalCost),
			SuggestedPrice: amount(computed.SuggestedPrice),
			DisplayPrice:   pricing.formatter.Format(computed.SuggestedPrice),
		}
	}
	return response
}
