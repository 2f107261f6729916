package pages

import (
	"net/http"
	"strconv"
	"strings"

	"pizzacost/internal/pricelist"
	"pizzacost/models"
)

// IngredientFilters capture the client-driven state for ingredient lookups.
type IngredientFilters struct {
	Query string
}

// IngredientFiltersFromRequest extracts filter inputs from an HTTP request.
func IngredientFiltersFromRequest(r *http.Request) IngredientFilters {
	filters := IngredientFilters{}
	if err := r.ParseForm(); err != nil {
		return filters
	}
	filters.Query = strings.TrimSpace(r.FormValue("q"))
	return filters
}

// FilterIngredients keeps the ingredients whose name contains the query, ignoring case.
func FilterIngredients(all []models.Ingredient, filters IngredientFilters) []models.Ingredient {
	if filters.Query == "" {
		return all
	}
	query := strings.ToLower(filters.Query)
	filtered := make([]models.Ingredient, 0, len(all))
	for _, ingredient := range all {
		if containsFold(ingredient.Name, query) {
			filtered = append(filtered, ingredient)
		}
	}
	return filtered
}

// FindIngredient returns the ingredient with the requested identifier.
func FindIngredient(all []models.Ingredient, id uint) *models.Ingredient {
	for i := range all {
		if all[i].ID == id {
			return &all[i]
		}
	}
	return nil
}

// RecipeFilters capture the client-driven state for recipe lookups.
type RecipeFilters struct {
	Query string
}

// RecipeFiltersFromRequest extracts filter inputs for recipe listings.
func RecipeFiltersFromRequest(r *http.Request) RecipeFilters {
	filters := RecipeFilters{}
	if err := r.ParseForm(); err != nil {
		return filters
	}
	filters.Query = strings.TrimSpace(r.FormValue("q"))
	return filters
}

// FilterRecipes keeps the recipes whose name contains the query, ignoring case.
func FilterRecipes(all []models.Recipe, filters RecipeFilters) []models.Recipe {
	if filters.Query == "" {
		return all
	}
	query := strings.ToLower(filters.Query)
	filtered := make([]models.Recipe, 0, len(all))
	for _, recipe := range all {
		if containsFold(recipe.Name, query) {
			filtered = append(filtered, recipe)
		}
	}
	return filtered
}

// FindRecipe returns the recipe with the requested identifier.
func FindRecipe(all []models.Recipe, id uint) *models.Recipe {
	for i := range all {
		if all[i].ID == id {
			return &all[i]
		}
	}
	return nil
}

// ParseUint extracts a uint from the provided string, returning zero on failure.
func ParseUint(value string) uint {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}
	parsed, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil {
		return 0
	}
	return uint(parsed)
}

// ParseAmount reads a decimal form value written with either separator.
// Blank or non-numeric input yields zero.
func ParseAmount(value string) float64 {
	parsed, err := pricelist.ParseNumber(value)
	if err != nil {
		return 0
	}
	return parsed
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), needle)
}
