package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	applog "pizzacost/internal/log"
	"pizzacost/internal/store"
	"pizzacost/internal/views/pages"
	"pizzacost/models"
)

// IngredientResource handles REST-style interactions for ingredient records.
func IngredientResource(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		applog.Debug(r.Context(), "ingredient request missing authenticated user")
		writeJSONError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}
	if database == nil {
		applog.Debug(r.Context(), "ingredient request without database")
		writeJSONError(w, r, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/app/api/ingredients"), "/")
	if path == "" {
		switch r.Method {
		case http.MethodGet:
			listIngredients(w, r, userID)
		case http.MethodPost:
			createIngredient(w, r, userID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	idValue, err := strconv.ParseUint(path, 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid ingredient identifier", "identifier", path, "error", err)
		http.NotFound(w, r)
		return
	}
	ingredientID := uint(idValue)

	switch r.Method {
	case http.MethodGet:
		showIngredient(w, r, ingredientID, userID)
	case http.MethodPut:
		updateIngredient(w, r, ingredientID, userID)
	case http.MethodDelete:
		deleteIngredient(w, r, ingredientID, userID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listIngredients(w http.ResponseWriter, r *http.Request, userID uint) {
	ingredients, err := store.ListIngredients(r.Context(), database, userID, r.URL.Query().Get("q"))
	if err != nil {
		applog.Error(r.Context(), "failed to list ingredients", "error", err)
		writeJSONError(w, r, statusForError(err), "unable to load ingredients")
		return
	}
	responses := make([]ingredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		responses = append(responses, projectIngredient(ingredient))
	}
	writeJSON(w, r, http.StatusOK, responses)
}

func decodeIngredient(r *http.Request) (ingredientRequest, error) {
	var payload ingredientRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return payload, err
	}
	payload.Name = strings.TrimSpace(payload.Name)
	return payload, nil
}

func createIngredient(w http.ResponseWriter, r *http.Request, userID uint) {
	ctx := r.Context()
	payload, err := decodeIngredient(r)
	if err != nil {
		applog.Debug(ctx, "invalid ingredient payload", "error", err)
		writeJSONError(w, r, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := store.CheckIngredientName(ctx, database, userID, payload.Name, 0); err != nil {
		applog.Debug(ctx, "ingredient rejected", "error", err)
		writeJSONError(w, r, statusForError(err), err.Error())
		return
	}

	ingredient := models.Ingredient{
		OwnerID:          userID,
		Name:             payload.Name,
		PurchasePrice:    payload.PurchasePrice,
		PurchaseQuantity: payload.PurchaseQuantity,
		PurchaseUnit:     payload.PurchaseUnit,
	}
	if err := database.WithContext(ctx).Create(&ingredient).Error; err != nil {
		applog.Debug(ctx, "ingredient rejected", "error", err)
		writeJSONError(w, r, statusForError(err), err.Error())
		return
	}

	applog.Info(ctx, "ingredient created", "id", ingredient.ID, "owner", userID)
	writeJSON(w, r, http.StatusCreated, projectIngredient(ingredient))
}

func showIngredient(w http.ResponseWriter, r *http.Request, ingredientID, userID uint) {
	ingredient, err := store.FindIngredient(r.Context(), database, userID, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(r.Context(), "failed to load ingredient", "error", err, "id", ingredientID)
		writeJSONError(w, r, statusForError(err), "unable to load ingredient")
		return
	}
	writeJSON(w, r, http.StatusOK, projectIngredient(*ingredient))
}

func updateIngredient(w http.ResponseWriter, r *http.Request, ingredientID, userID uint) {
	ctx := r.Context()
	ingredient, err := store.FindIngredient(ctx, database, userID, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			applog.Debug(ctx, "update denied: ingredient not found or not owned", "id", ingredientID, "user", userID)
			http.NotFound(w, r)
			return
		}
		applog.Error(ctx, "failed to load ingredient for update", "error", err, "id", ingredientID)
		writeJSONError(w, r, statusForError(err), "unable to load ingredient")
		return
	}

	payload, err := decodeIngredient(r)
	if err != nil {
		applog.Debug(ctx, "invalid ingredient update payload", "error", err)
		writeJSONError(w, r, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := store.CheckIngredientName(ctx, database, userID, payload.Name, ingredient.ID); err != nil {
		applog.Debug(ctx, "ingredient update rejected", "error", err, "id", ingredientID)
		writeJSONError(w, r, statusForError(err), err.Error())
		return
	}

	ingredient.Name = payload.Name
	ingredient.PurchasePrice = payload.PurchasePrice
	ingredient.PurchaseQuantity = payload.PurchaseQuantity
	ingredient.PurchaseUnit = payload.PurchaseUnit
	if err := database.WithContext(ctx).Save(ingredient).Error; err != nil {
		applog.Debug(ctx, "ingredient update rejected", "error", err, "id", ingredientID)
		writeJSONError(w, r, statusForError(err), err.Error())
		return
	}

	applog.Info(ctx, "ingredient updated", "id", ingredient.ID, "base_unit_price", ingredient.BaseUnitPrice)
	writeJSON(w, r, http.StatusOK, projectIngredient(*ingredient))
}

func deleteIngredient(w http.ResponseWriter, r *http.Request, ingredientID, userID uint) {
	ctx := r.Context()
	result := database.WithContext(ctx).Where("owner_id = ?", userID).Delete(&models.Ingredient{}, ingredientID)
	if result.Error != nil {
		applog.Error(ctx, "failed to delete ingredient", "error", result.Error, "id", ingredientID)
		writeJSONError(w, r, statusForError(result.Error), "unable to delete ingredient")
		return
	}
	if result.RowsAffected == 0 {
		http.NotFound(w, r)
		return
	}
	applog.Info(ctx, "ingredient deleted", "id", ingredientID, "owner", userID)
	w.WriteHeader(http.StatusNoContent)
}

// IngredientTable handles HTMX requests for the ingredient ledger.
func IngredientTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	snapshot := buildWorkspaceSnapshot(r)
	filters := pages.IngredientFiltersFromRequest(r)
	filtered := pages.FilterIngredients(snapshot.Ingredients, filters)

	renderComponent(w, r, pages.IngredientTable(filtered, filters, len(snapshot.Ingredients), snapshot.Money))
}

// IngredientCreate registers a purchase submitted from the ingredient form.
// A name that already exists is repriced instead of duplicated.
func IngredientCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse ingredient form", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	ctx := r.Context()
	incoming := models.Ingredient{
		Name:             strings.TrimSpace(r.FormValue("name")),
		PurchasePrice:    pages.ParseAmount(r.FormValue("purchase_price")),
		PurchaseQuantity: pages.ParseAmount(r.FormValue("purchase_quantity")),
		PurchaseUnit:     r.FormValue("purchase_unit"),
	}

	var message string
	saved, created, err := store.UpsertIngredient(ctx, database, userID, incoming)
	switch {
	case err != nil:
		applog.Debug(ctx, "ingredient form rejected", "error", err)
		message = userMessage(err)
	case created:
		message = fmt.Sprintf("%q added.", saved.Name)
	default:
		message = fmt.Sprintf("%q repriced.", saved.Name)
	}

	snapshot := buildWorkspaceSnapshot(r)
	filters := pages.IngredientFiltersFromRequest(r)
	filtered := pages.FilterIngredients(snapshot.Ingredients, filters)
	renderComponent(w, r, pages.IngredientSection(filtered, filters, len(snapshot.Ingredients), snapshot.Money, message))
}

// IngredientDelete removes an ingredient. Recipes keep their references,
// which then cost nothing.
func IngredientDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	id := pages.ParseUint(r.FormValue("id"))
	if id == 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	var message string
	ingredient, err := store.FindIngredient(ctx, database, userID, id)
	if err != nil {
		applog.Debug(ctx, "ingredient delete lookup failed", "error", err, "id", id)
		message = userMessage(err)
	} else if err := database.WithContext(ctx).Delete(ingredient).Error; err != nil {
		applog.Error(ctx, "failed to delete ingredient", "error", err, "id", id)
		message = "We couldn't delete this ingredient. Please try again."
	} else {
		message = fmt.Sprintf("%q removed. Recipes that used it now cost it at zero.", ingredient.Name)
	}

	snapshot := buildWorkspaceSnapshot(r)
	filters := pages.IngredientFiltersFromRequest(r)
	filtered := pages.FilterIngredients(snapshot.Ingredients, filters)
	renderComponent(w, r, pages.IngredientSection(filtered, filters, len(snapshot.Ingredients), snapshot.Money, message))
}
