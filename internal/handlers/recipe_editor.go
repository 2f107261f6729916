package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"pizzacost/internal/costing"
	applog "pizzacost/internal/log"
	"pizzacost/internal/store"
	"pizzacost/internal/views/pages"
	"pizzacost/models"
)

// errInvalidLine is returned when an editor action names an ingredient line
// the size does not have.
var errInvalidLine = errors.New("ingredient line not found")

// RecipeTable handles HTMX requests for the recipe listing.
func RecipeTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	snapshot := buildWorkspaceSnapshot(r)
	filters := pages.RecipeFiltersFromRequest(r)
	recipes := pages.FilterRecipes(snapshot.Recipes, filters)

	renderComponent(w, r, pages.RecipeTable(recipes, filters, snapshot))
}

// RecipeCreate adds an untitled recipe with default sheets and opens its editor.
func RecipeCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	ctx := r.Context()
	snapshot := buildWorkspaceSnapshot(r)
	recipe := newRecipe(userID, pages.NextUntitledRecipeName(snapshot.Recipes))
	if _, err := store.SaveRecipe(ctx, database, &recipe); err != nil {
		applog.Error(ctx, "failed to create recipe", "error", err)
		renderComponent(w, r, pages.DashboardPartial("recipes", snapshot, nil))
		return
	}
	applog.Info(ctx, "recipe created", "id", recipe.ID, "owner", userID)

	snapshot = buildWorkspaceSnapshot(r)
	created := pages.FindRecipe(snapshot.Recipes, recipe.ID)
	if created == nil {
		created = &recipe
	}
	w.Header().Set("HX-Push-Url", fmt.Sprintf("/app/recipes/%d", recipe.ID))
	renderComponent(w, r, pages.RecipeDetail(recipeDetailData(snapshot, *created, "Recipe created. Add ingredients to each size.")))
}

// RecipeWorkspace serves /app/recipes/{id} and the editor actions posted
// beneath it.
func RecipeWorkspace(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/app/recipes"), "/")
	idPart, action, _ := strings.Cut(rest, "/")

	if action == "" {
		Dashboard(w, r)
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		w.WriteHeader(http.StatusForbidden)
		return
	}
	if err := r.ParseForm(); err != nil {
		applog.Debug(r.Context(), "failed to parse recipe form", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	recipe, err := store.FindRecipe(ctx, database, userID, pages.ParseUint(idPart))
	if err != nil {
		applog.Debug(ctx, "recipe editor lookup failed", "error", err, "id", idPart)
		http.NotFound(w, r)
		return
	}

	if action == "delete" {
		deleteRecipeFromEditor(w, r, recipe)
		return
	}

	var editErr error
	switch action {
	case "settings":
		applyRecipeSettings(r, recipe)
	case "lines":
		editErr = addRecipeLine(r, recipe)
	case "lines/remove":
		editErr = removeRecipeLine(r, recipe)
	case "copy":
		editErr = copySize(recipe, r.FormValue("from"), r.FormValue("to"))
	default:
		http.NotFound(w, r)
		return
	}

	message := "Saved. Prices recalculated for every size."
	if editErr == nil {
		_, editErr = store.SaveRecipe(ctx, database, recipe)
	}
	if editErr != nil {
		applog.Debug(ctx, "recipe edit rejected", "action", action, "error", editErr, "id", recipe.ID)
		message = userMessage(editErr)
	}

	snapshot := buildWorkspaceSnapshot(r)
	current := pages.FindRecipe(snapshot.Recipes, recipe.ID)
	if current == nil {
		http.NotFound(w, r)
		return
	}
	renderComponent(w, r, pages.RecipeDetail(recipeDetailData(snapshot, *current, message)))
}

func applyRecipeSettings(r *http.Request, recipe *models.Recipe) {
	recipe.Name = strings.TrimSpace(r.FormValue("name"))
	recipe.MarginPct = pages.ParseAmount(r.FormValue("margin_pct"))
	recipe.Overhead = pages.ParseAmount(r.FormValue("overhead"))
	recipe.EnsureSizes()
	for i := range recipe.Sizes {
		key := "packaging_" + recipe.Sizes[i].Size
		if _, present := r.Form[key]; present {
			recipe.Sizes[i].Packaging = pages.ParseAmount(r.FormValue(key))
		}
	}
}

func addRecipeLine(r *http.Request, recipe *models.Recipe) error {
	size, err := costing.ParseSize(r.FormValue("size"))
	if err != nil {
		return err
	}
	unit, err := costing.ParseUnit(r.FormValue("unit"))
	if err != nil {
		return err
	}
	recipe.EnsureSizes()
	sheet := recipe.SizeFor(size)
	sheet.Ingredients = append(sheet.Ingredients, models.RecipeSizeIngredient{
		IngredientID: pages.ParseUint(r.FormValue("ingredient_id")),
		Quantity:     pages.ParseAmount(r.FormValue("quantity")),
		Unit:         unit.String(),
	})
	return nil
}

func removeRecipeLine(r *http.Request, recipe *models.Recipe) error {
	size, err := costing.ParseSize(r.FormValue("size"))
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(strings.TrimSpace(r.FormValue("index")))
	recipe.EnsureSizes()
	sheet := recipe.SizeFor(size)
	if err != nil || index < 0 || index >= len(sheet.Ingredients) {
		return fmt.Errorf("%w: %s line %q", errInvalidLine, size, r.FormValue("index"))
	}
	sheet.Ingredients = append(sheet.Ingredients[:index], sheet.Ingredients[index+1:]...)
	return nil
}

func deleteRecipeFromEditor(w http.ResponseWriter, r *http.Request, recipe *models.Recipe) {
	ctx := r.Context()
	if err := store.DeleteRecipe(ctx, database, recipe.OwnerID, recipe.ID); err != nil {
		applog.Error(ctx, "failed to delete recipe", "error", err, "id", recipe.ID)
		snapshot := buildWorkspaceSnapshot(r)
		renderComponent(w, r, pages.RecipeDetail(recipeDetailData(snapshot, *recipe, "We couldn't delete this recipe. Please try again.")))
		return
	}
	applog.Info(ctx, "recipe deleted", "id", recipe.ID, "owner", recipe.OwnerID)

	snapshot := buildWorkspaceSnapshot(r)
	w.Header().Set("HX-Push-Url", "/app/recipes")
	renderComponent(w, r, pages.DashboardPartial("recipes", snapshot, nil))
}
