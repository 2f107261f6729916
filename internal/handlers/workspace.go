package handlers

import (
	"net/http"

	"pizzacost/internal/costing"
	applog "pizzacost/internal/log"
	"pizzacost/internal/money"
	"pizzacost/internal/store"
	"pizzacost/internal/views/pages"
	"pizzacost/models"
)

type pricingDefaults struct {
	formatter money.Formatter
	marginPct float64
	overhead  float64
}

var pricing = pricingDefaults{
	formatter: money.Default(),
	marginPct: costing.DefaultMarginPct,
	overhead:  costing.DefaultOverhead,
}

// ConfigurePricing installs the currency formatter and the margin and overhead
// applied to recipes created without explicit values.
func ConfigurePricing(formatter money.Formatter, marginPct, overhead float64) {
	pricing = pricingDefaults{
		formatter: formatter,
		marginPct: marginPct,
		overhead:  overhead,
	}
}

func newRecipe(ownerID uint, name string) models.Recipe {
	recipe := models.NewRecipe(ownerID, name)
	recipe.MarginPct = pricing.marginPct
	recipe.Overhead = pricing.overhead
	return recipe
}

func loadWorkspaceData(r *http.Request, userID uint) ([]models.Ingredient, []models.Recipe) {
	if database == nil || userID == 0 {
		return nil, nil
	}
	ctx := r.Context()

	ingredients, err := store.ListIngredients(ctx, database, userID, "")
	if err != nil {
		applog.Error(ctx, "failed to load ingredients", "error", err, "userID", userID)
		ingredients = nil
	}
	recipes, err := store.ListRecipes(ctx, database, userID, "")
	if err != nil {
		applog.Error(ctx, "failed to load recipes", "error", err, "userID", userID)
		recipes = nil
	}

	applog.Debug(ctx, "workspace data loaded", "userID", userID, "ingredients", len(ingredients), "recipes", len(recipes))
	return ingredients, recipes
}

func buildWorkspaceSnapshot(r *http.Request) pages.WorkspaceSnapshot {
	userID, _ := currentUserID(r)
	ingredients, recipes := loadWorkspaceData(r, userID)
	snapshot := pages.NewWorkspaceSnapshot(ingredients, recipes, pricing.formatter, loadCurrentUserTheme(r), userID)
	if sessionManager != nil {
		snapshot.UserName = sessionManager.GetString(r.Context(), sessionUserNameKey)
	}
	return snapshot
}
