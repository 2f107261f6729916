package pages

import (
	"sort"
	"strings"

	"pizzacost/internal/costing"
	"pizzacost/internal/money"
	"pizzacost/internal/store"
	"pizzacost/models"
)

// WorkspaceSnapshot aggregates the data required to render the pizzeria workspace.
type WorkspaceSnapshot struct {
	Ingredients []models.Ingredient
	Recipes     []models.Recipe
	Costs       map[uint]costing.RecipeCost
	Stats       store.Stats
	Money       money.Formatter
	Theme       string
	UserID      uint
	UserName    string
}

// NewWorkspaceSnapshot sorts the data by name and prices every recipe
// against the current ingredient prices.
func NewWorkspaceSnapshot(ingredients []models.Ingredient, recipes []models.Recipe, formatter money.Formatter, theme string, userID uint) WorkspaceSnapshot {
	sort.SliceStable(ingredients, func(i, j int) bool {
		return strings.ToLower(ingredients[i].Name) < strings.ToLower(ingredients[j].Name)
	})
	sort.SliceStable(recipes, func(i, j int) bool {
		return strings.ToLower(recipes[i].Name) < strings.ToLower(recipes[j].Name)
	})

	stats := store.Summarize(ingredients, recipes)
	catalog := models.PriceCatalog(ingredients)
	costs := make(map[uint]costing.RecipeCost, len(recipes))
	for i := range recipes {
		costs[recipes[i].ID] = recipes[i].Recompute(catalog)
	}

	return WorkspaceSnapshot{
		Ingredients: ingredients,
		Recipes:     recipes,
		Costs:       costs,
		Stats:       stats,
		Money:       formatter,
		Theme:       models.NormalizeTheme(theme),
		UserID:      userID,
	}
}

// EmptyWorkspaceSnapshot returns a zero-value snapshot to simplify call sites when no data is available.
func EmptyWorkspaceSnapshot() WorkspaceSnapshot {
	return WorkspaceSnapshot{
		Costs: map[uint]costing.RecipeCost{},
		Money: money.Default(),
		Theme: models.DefaultTheme,
	}
}

// IngredientLookup maps ingredient ids to names for rendering recipe sheets.
func (s WorkspaceSnapshot) IngredientLookup() map[uint]string {
	lookup := make(map[uint]string, len(s.Ingredients))
	for _, ingredient := range s.Ingredients {
		lookup[ingredient.ID] = ingredient.Name
	}
	return lookup
}

// IngredientDisplayName returns the ingredient name, or a placeholder when the
// referenced ingredient no longer exists.
func IngredientDisplayName(lookup map[uint]string, id uint) string {
	if name, ok := lookup[id]; ok && name != "" {
		return name
	}
	return "Removed ingredient"
}

// CostFor returns the live cost of a recipe, falling back to the values cached on its sheets.
func (s WorkspaceSnapshot) CostFor(recipe models.Recipe) costing.RecipeCost {
	if cost, ok := s.Costs[recipe.ID]; ok {
		return cost
	}
	cost := costing.RecipeCost{}
	for _, sheet := range recipe.Sizes {
		cost.Sizes = append(cost.Sizes, costing.SizeCost{
			Size:           costing.Size(sheet.Size),
			IngredientCost: sheet.IngredientCost,
			Packaging:      sheet.Packaging,
			Overhead:       recipe.Overhead,
			TotalCost:      sheet.TotalCost,
			SuggestedPrice: sheet.SuggestedPrice,
		})
	}
	return cost
}
