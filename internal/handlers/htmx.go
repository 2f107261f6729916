package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	templpkg "github.com/a-h/templ"
	"gorm.io/gorm"

	"pizzacost/internal/costing"
	applog "pizzacost/internal/log"
	"pizzacost/internal/store"
	"pizzacost/models"
)

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" || r.Header.Get("HX-Boosted") == "true"
}

func renderComponent(w http.ResponseWriter, r *http.Request, component templpkg.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render workspace fragment", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(r.Context(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, map[string]string{"error": message})
}

// statusForError maps domain and persistence errors onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, gorm.ErrInvalidDB), errors.Is(err, store.ErrNilDatabase):
		return http.StatusServiceUnavailable
	case errors.Is(err, store.ErrDuplicateIngredient):
		return http.StatusConflict
	case errors.Is(err, costing.ErrUnknownUnit),
		errors.Is(err, costing.ErrInvalidPurchaseQuantity),
		errors.Is(err, costing.ErrUnknownSize),
		errors.Is(err, models.ErrIngredientNameRequired),
		errors.Is(err, models.ErrInvalidPurchasePrice),
		errors.Is(err, models.ErrRecipeNameRequired),
		errors.Is(err, models.ErrNegativeAmount),
		errors.Is(err, errInvalidLine):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// userMessage returns the text shown to the user for err.
func userMessage(err error) string {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "That record no longer exists."
	case errors.Is(err, costing.ErrUnknownUnit):
		return "Choose one of the supported units."
	case errors.Is(err, costing.ErrInvalidPurchaseQuantity):
		return "The purchased quantity must be greater than zero."
	case errors.Is(err, store.ErrDuplicateIngredient):
		return "An ingredient with that name already exists."
	case errors.Is(err, models.ErrInvalidPurchasePrice):
		return "The purchase price cannot be negative."
	case errors.Is(err, models.ErrNegativeAmount):
		return "Margin, overhead and packaging cannot be negative."
	case errors.Is(err, errInvalidLine):
		return "That ingredient line no longer exists. Reload the recipe and try again."
	case errors.Is(err, costing.ErrUnknownSize):
		return "Choose one of the available sizes."
	case errors.Is(err, models.ErrIngredientNameRequired):
		return "Ingredient name is required."
	case errors.Is(err, models.ErrRecipeNameRequired):
		return "Recipe name is required."
	default:
		return "We couldn't save your changes. Please try again."
	}
}

// workspaceSectionFromPath strips the /app prefix from path.
func workspaceSectionFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, "/app")
	return strings.Trim(trimmed, "/")
}
