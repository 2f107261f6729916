package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pizzacost/internal/db/mock"
	"pizzacost/internal/store"
)

func withMockDatabase(t *testing.T) uint {
	t.Helper()
	db, err := mock.New(context.Background())
	if err != nil {
		t.Fatalf("mock database: %v", err)
	}
	original := database
	database = db
	t.Cleanup(func() { database = original })

	owner, err := store.ResolveOwner(context.Background(), db, mock.DemoEmail)
	if err != nil {
		t.Fatalf("resolve demo owner: %v", err)
	}
	return owner.ID
}

func TestLoadWorkspaceDataReturnsSeededRecords(t *testing.T) {
	ownerID := withMockDatabase(t)

	req, err := http.NewRequest(http.MethodGet, "/app", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	ingredients, recipes := loadWorkspaceData(req, ownerID)
	if len(ingredients) == 0 || len(recipes) == 0 {
		t.Fatalf("expected seeded data, got %d ingredients and %d recipes", len(ingredients), len(recipes))
	}
	if other, _ := loadWorkspaceData(req, ownerID+100); len(other) != 0 {
		t.Fatalf("expected no data for an unknown owner, got %d", len(other))
	}
}

func TestDashboardRendersSections(t *testing.T) {
	ownerID := withMockDatabase(t)
	sm, cleanup := withTestSessionManager(t)
	t.Cleanup(cleanup)

	tests := []struct {
		path   string
		htmx   bool
		status int
		want   string
	}{
		{"/app", false, http.StatusOK, `data-module-key="dashboard"`},
		{"/app/ingredients", true, http.StatusOK, "Mussarela"},
		{"/app/recipes", true, http.StatusOK, "Margherita"},
		{"/app/tools", true, http.StatusOK, `id="tools-panel"`},
		{"/app/preferences", true, http.StatusOK, `name="theme"`},
		{"/app/unknown", false, http.StatusNotFound, ""},
		{"/app/recipes/9999", false, http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := authenticateRequest(t, sm, httptest.NewRequest(http.MethodGet, tt.path, nil), ownerID)
			if tt.htmx {
				req.Header.Set("HX-Request", "true")
			}
			w := httptest.NewRecorder()
			Dashboard(w, req)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			body := w.Body.String()
			if tt.want != "" && !strings.Contains(body, tt.want) {
				t.Fatalf("expected %q in body", tt.want)
			}
			if tt.htmx && strings.Contains(body, "<html") {
				t.Fatal("expected a fragment for HTMX requests")
			}
		})
	}
}

func TestDashboardOpensRecipeDetail(t *testing.T) {
	ownerID := withMockDatabase(t)
	sm, cleanup := withTestSessionManager(t)
	t.Cleanup(cleanup)

	recipes, err := store.ListRecipes(context.Background(), database, ownerID, "Calabresa")
	if err != nil || len(recipes) != 1 {
		t.Fatalf("expected seeded Calabresa recipe, got %d (err=%v)", len(recipes), err)
	}

	req := authenticateRequest(t, sm, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/app/recipes/%d", recipes[0].ID), nil), ownerID)
	w := httptest.NewRecorder()
	RecipeWorkspace(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `id="recipe-detail"`) || !strings.Contains(body, `data-size="GG"`) {
		t.Fatalf("expected the recipe editor with every size")
	}
}

func TestDashboardStats(t *testing.T) {
	ownerID := withMockDatabase(t)
	sm, cleanup := withTestSessionManager(t)
	t.Cleanup(cleanup)

	req := authenticateRequest(t, sm, httptest.NewRequest(http.MethodGet, "/app/api/dashboard", nil), ownerID)
	w := httptest.NewRecorder()
	DashboardStats(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var response dashboardResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Recipes != 3 || response.Sheets != 15 {
		t.Fatalf("expected 3 recipes with 15 sheets, got %+v", response)
	}
	if response.AverageTotalCost <= 0 || len(response.Featured) != 3 {
		t.Fatalf("expected averages and featured recipes, got %+v", response)
	}
	if response.Featured[0].Name != "Margherita" || response.Featured[0].Display == "" {
		t.Fatalf("expected the oldest recipe first, got %+v", response.Featured[0])
	}
	if response.Currency != pricing.formatter.Code() {
		t.Fatalf("unexpected currency %q", response.Currency)
	}
}
