package handlers

import (
	"net/http"
	"strings"

	templpkg "github.com/a-h/templ"

	applog "pizzacost/internal/log"
	"pizzacost/internal/store"
	"pizzacost/internal/views/pages"
	"pizzacost/models"
)

// Dashboard renders the main application workspace once a user is authenticated.
// The first path segment after /app selects the module; /app/recipes/{id}
// opens the recipe editor.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	section, rest, _ := strings.Cut(workspaceSectionFromPath(r.URL.Path), "/")
	if section == "" {
		section = pages.DefaultWorkspaceSection()
	}
	if !pages.ValidWorkspaceSection(section) {
		applog.Debug(r.Context(), "unknown workspace section", "section", section)
		http.NotFound(w, r)
		return
	}

	snapshot := buildWorkspaceSnapshot(r)

	var content templpkg.Component
	if section == "recipes" && rest != "" {
		recipe := pages.FindRecipe(snapshot.Recipes, pages.ParseUint(rest))
		if recipe == nil {
			http.NotFound(w, r)
			return
		}
		content = pages.RecipeDetail(recipeDetailData(snapshot, *recipe, ""))
	}

	if isHTMX(r) {
		renderComponent(w, r, pages.DashboardPartial(section, snapshot, content))
		return
	}
	renderComponent(w, r, pages.Dashboard(section, snapshot, content))
}

func recipeDetailData(snapshot pages.WorkspaceSnapshot, recipe models.Recipe, message string) pages.RecipeDetailData {
	return pages.RecipeDetailData{
		Recipe:      recipe,
		Cost:        snapshot.CostFor(recipe),
		Ingredients: snapshot.Ingredients,
		Money:       snapshot.Money,
		Message:     message,
	}
}

type featuredResponse struct {
	RecipeID       uint   `json:"recipe_id"`
	Name           string `json:"name"`
	SuggestedPrice amount `json:"suggested_price"`
	Display        string `json:"display"`
}

type dashboardResponse struct {
	Ingredients      int                `json:"ingredients"`
	Recipes          int                `json:"recipes"`
	Sheets           int                `json:"sheets"`
	AverageTotalCost amount             `json:"average_total_cost"`
	Currency         string             `json:"currency"`
	Featured         []featuredResponse `json:"featured"`
}

// DashboardStats reports the owner's workspace summary as JSON.
func DashboardStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
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

	stats, err := store.LoadStats(r.Context(), database, userID)
	if err != nil {
		applog.Error(r.Context(), "failed to load dashboard stats", "error", err, "userID", userID)
		writeJSONError(w, r, statusForError(err), "unable to load dashboard")
		return
	}

	response := dashboardResponse{
		Ingredients:      stats.Ingredients,
		Recipes:          stats.Recipes,
		Sheets:           stats.Sheets,
		AverageTotalCost: amount(stats.AverageTotalCost),
		Currency:         pricing.formatter.Code(),
		Featured:         make([]featuredResponse, 0, len(stats.Featured)),
	}
	for _, entry := range stats.Featured {
		response.Featured = append(response.Featured, featuredResponse{
			RecipeID:       entry.RecipeID,
			Name:           entry.Name,
			SuggestedPrice: amount(entry.SuggestedPrice),
			Display:        pricing.formatter.Format(entry.SuggestedPrice),
		})
	}
	writeJSON(w, r, http.StatusOK, response)
}
