package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"pizzacost/internal/costing"
	applog "pizzacost/internal/log"
	"pizzacost/internal/store"
	"pizzacost/models"
)

// RecipeResource handles REST-style interactions for recipe records.
func RecipeResource(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		applog.Debug(r.Context(), "recipe request missing authenticated user")
		writeJSONError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}
	if database == nil {
		applog.Debug(r.Context(), "recipe request without database")
		writeJSONError(w, r, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/app/api/recipes"), "/")
	if path == "" {
		switch r.Method {
		case http.MethodGet:
			listRecipes(w, r, userID)
		case http.MethodPost:
			createRecipe(w, r, userID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	segments := strings.Split(path, "/")
	idValue, err := strconv.ParseUint(segments[0], 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid recipe identifier", "identifier", segments[0], "error", err)
		http.NotFound(w, r)
		return
	}
	recipeID := uint(idValue)

	if len(segments) > 1 {
		if segments[1] != "copy-size" || len(segments) > 2 {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		copyRecipeSize(w, r, recipeID, userID)
		return
	}

	switch r.Method {
	case http.MethodGet:
		showRecipe(w, r, recipeID, userID)
	case http.MethodPut:
		updateRecipe(w, r, recipeID, userID)
	case http.MethodDelete:
		deleteRecipe(w, r, recipeID, userID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ingredientNames returns the owner's price catalog together with the names
// used to label breakdown lines.
func ingredientNames(ctx context.Context, userID uint) (costing.PriceCatalog, map[uint]string, error) {
	ingredients, err := store.ListIngredients(ctx, database, userID, "")
	if err != nil {
		return nil, nil, err
	}
	names := make(map[uint]string, len(ingredients))
	for _, ingredient := range ingredients {
		names[ingredient.ID] = ingredient.Name
	}
	return models.PriceCatalog(ingredients), names, nil
}

func listRecipes(w http.ResponseWriter, r *http.Request, userID uint) {
	ctx := r.Context()
	recipes, err := store.ListRecipes(ctx, database, userID, r.URL.Query().Get("q"))
	if err != nil {
		applog.Error(ctx, "failed to list recipes", "error", err)
		writeJSONError(w, r, statusForError(err), "unable to load recipes")
		return
	}
	catalog, names, err := ingredientNames(ctx, userID)
	if err != nil {
		applog.Error(ctx, "failed to load ingredient catalog", "error", err)
		writeJSONError(w, r, statusForError(err), "unable to load recipes")
		return
	}

	responses := make([]recipeResponse, 0, len(recipes))
	for i := range recipes {
		cost := recipes[i].Recompute(catalog)
		responses = append(responses, projectRecipe(recipes[i], cost, names))
	}
	writeJSON(w, r, http.StatusOK, responses)
}

func decodeRecipe(r *http.Request) (recipeRequest, error) {
	var payload recipeRequest
	err := json.NewDecoder(r.Body).Decode(&payload)
	return payload, err
}

// saveAndRespond persists recipe and answers with its freshly priced projection.
func saveAndRespond(w http.ResponseWriter, r *http.Request, recipe *models.Recipe, status int) {
	ctx := r.Context()
	cost, err := store.SaveRecipe(ctx, database, recipe)
	if err != nil {
		applog.Debug(ctx, "recipe save rejected", "error", err, "id", recipe.ID)
		writeJSONError(w, r, statusForError(err), err.Error())
		return
	}
	_, names, err := ingredientNames(ctx, recipe.OwnerID)
	if err != nil {
		applog.Error(ctx, "failed to load ingredient names", "error", err)
		names = map[uint]string{}
	}
	applog.Info(ctx, "recipe saved", "id", recipe.ID, "owner", recipe.OwnerID)
	writeJSON(w, r, status, projectRecipe(*recipe, cost, names))
}

func createRecipe(w http.ResponseWriter, r *http.Request, userID uint) {
	payload, err := decodeRecipe(r)
	if err != nil {
		applog.Debug(r.Context(), "invalid recipe payload", "error", err)
		writeJSONError(w, r, http.StatusBadRequest, "invalid request payload")
		return
	}
	recipe := newRecipe(userID, payload.Name)
	if err := payload.apply(&recipe); err != nil {
		writeJSONError(w, r, statusForError(err), err.Error())
		return
	}
	saveAndRespond(w, r, &recipe, http.StatusCreated)
}

func loadOwnedRecipe(w http.ResponseWriter, r *http.Request, recipeID, userID uint) (*models.Recipe, bool) {
	recipe, err := store.FindRecipe(r.Context(), database, userID, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			applog.Debug(r.Context(), "recipe not found or not owned", "id", recipeID, "user", userID)
			http.NotFound(w, r)
			return nil, false
		}
		applog.Error(r.Context(), "failed to load recipe", "error", err, "id", recipeID)
		writeJSONError(w, r, statusForError(err), "unable to load recipe")
		return nil, false
	}
	return recipe, true
}

func showRecipe(w http.ResponseWriter, r *http.Request, recipeID, userID uint) {
	recipe, ok := loadOwnedRecipe(w, r, recipeID, userID)
	if !ok {
		return
	}
	catalog, names, err := ingredientNames(r.Context(), userID)
	if err != nil {
		applog.Error(r.Context(), "failed to load ingredient catalog", "error", err)
		writeJSONError(w, r, statusForError(err), "unable to price recipe")
		return
	}
	cost := recipe.Recompute(catalog)
	writeJSON(w, r, http.StatusOK, projectRecipe(*recipe, cost, names))
}

func updateRecipe(w http.ResponseWriter, r *http.Request, recipeID, userID uint) {
	recipe, ok := loadOwnedRecipe(w, r, recipeID, userID)
	if !ok {
		return
	}
	payload, err := decodeRecipe(r)
	if err != nil {
		applog.Debug(r.Context(), "invalid recipe update payload", "error", err)
		writeJSONError(w, r, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := payload.apply(recipe); err != nil {
		writeJSONError(w, r, statusForError(err), err.Error())
		return
	}
	saveAndRespond(w, r, recipe, http.StatusOK)
}

func deleteRecipe(w http.ResponseWriter, r *http.Request, recipeID, userID uint) {
	if err := store.DeleteRecipe(r.Context(), database, userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(r.Context(), "failed to delete recipe", "error", err, "id", recipeID)
		writeJSONError(w, r, statusForError(err), "unable to delete recipe")
		return
	}
	applog.Info(r.Context(), "recipe deleted", "id", recipeID, "owner", userID)
	w.WriteHeader(http.StatusNoContent)
}

type copySizeRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func copyRecipeSize(w http.ResponseWriter, r *http.Request, recipeID, userID uint) {
	recipe, ok := loadOwnedRecipe(w, r, recipeID, userID)
	if !ok {
		return
	}
	var payload copySizeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, r, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := copySize(recipe, payload.From, payload.To); err != nil {
		writeJSONError(w, r, statusForError(err), err.Error())
		return
	}
	saveAndRespond(w, r, recipe, http.StatusOK)
}

func copySize(recipe *models.Recipe, fromLabel, toLabel string) error {
	from, err := costing.ParseSize(fromLabel)
	if err != nil {
		return err
	}
	to, err := costing.ParseSize(toLabel)
	if err != nil {
		return err
	}
	return recipe.CopySize(from, to)
}

type quoteRequest struct {
	recipeRequest
	RecipeID uint `json:"recipe_id"`
}

// Quote prices a recipe without saving it. A recipe_id quotes the stored
// recipe against current prices; otherwise the payload itself is priced.
func Quote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	userID, ok := currentUserID(r)
	if !ok {
		writeJSONError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}
	if database == nil {
		writeJSONError(w, r, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	ctx := r.Context()
	var payload quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, r, http.StatusBadRequest, "invalid request payload")
		return
	}

	catalog, names, err := ingredientNames(ctx, userID)
	if err != nil {
		applog.Error(ctx, "failed to load ingredient catalog", "error", err)
		writeJSONError(w, r, statusForError(err), "unable to price recipe")
		return
	}

	if payload.RecipeID != 0 {
		recipe, cost, err := store.Quote(ctx, database, userID, payload.RecipeID)
		if err != nil {
			writeJSONError(w, r, statusForError(err), "unable to quote recipe")
			return
		}
		writeJSON(w, r, http.StatusOK, projectRecipe(*recipe, cost, names))
		return
	}

	recipe := newRecipe(userID, payload.Name)
	if err := payload.apply(&recipe); err != nil {
		writeJSONError(w, r, statusForError(err), err.Error())
		return
	}
	cost := recipe.Recompute(catalog)
	applog.Debug(ctx, "recipe quoted", "owner", userID, "name", recipe.Name)
	writeJSON(w, r, http.StatusOK, projectRecipe(recipe, cost, names))
}
