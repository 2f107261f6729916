package handlers

import (
	"net/http"
	"strings"

	applog "pizzacost/internal/log"
	"pizzacost/internal/views/pages"
	"pizzacost/internal/views/theme"
)

type preferencesResponse struct {
	Theme string `json:"theme"`
}

// UpdatePreferences persists workspace preferences for the authenticated user.
// HTMX requests receive the refreshed status banner; other clients get JSON.
func UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		applog.Debug(r.Context(), "preferences update with unsupported method", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user, err := loadCurrentUser(r)
	if err != nil {
		applog.Error(r.Context(), "unable to load current user for preferences", "error", err)
		http.Error(w, "unable to load account", http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse preferences form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	themeValue := strings.TrimSpace(r.FormValue("theme"))
	selected, ok := theme.Lookup(themeValue)
	if !ok {
		applog.Debug(r.Context(), "received invalid theme selection", "value", themeValue)
		if isHTMX(r) {
			renderComponent(w, r, pages.PreferenceStatus("Choose one of the listed themes."))
			return
		}
		http.Error(w, "invalid theme selection", http.StatusBadRequest)
		return
	}

	if database == nil {
		applog.Debug(r.Context(), "database not configured; skipping preference persistence")
	} else {
		applog.Debug(r.Context(), "updating user preferences", "userID", user.ID, "theme", selected.Key)
		if err := database.WithContext(r.Context()).Model(user).Update("theme", selected.Key).Error; err != nil {
			applog.Error(r.Context(), "failed to persist user preferences", "error", err)
			http.Error(w, "failed to save preferences", http.StatusInternalServerError)
			return
		}
	}

	setSessionTheme(r, selected.Key)

	if isHTMX(r) {
		w.Header().Set("HX-Refresh", "true")
		renderComponent(w, r, pages.PreferenceStatus("Theme saved."))
		return
	}
	writeJSON(w, r, http.StatusOK, preferencesResponse{Theme: selected.Key})
}
