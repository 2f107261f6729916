package pages

import (
	"net/http/httptest"
	"testing"

	"pizzacost/models"
)

func TestDefaultDash(t *testing.T) {
	if DefaultDash("value") != "value" {
		t.Fatal("expected non-empty value to pass through")
	}
	if DefaultDash("   ") != "—" {
		t.Fatal("expected whitespace value to produce em dash")
	}
}

func TestFilterIngredients(t *testing.T) {
	ingredients := []models.Ingredient{{Name: "Mussarela"}, {Name: "Molho de tomate"}}
	filtered := FilterIngredients(ingredients, IngredientFilters{Query: "TOMATE"})
	if len(filtered) != 1 || filtered[0].Name != "Molho de tomate" {
		t.Fatalf("expected tomato sauce, got %+v", filtered)
	}
	if got := FilterIngredients(ingredients, IngredientFilters{}); len(got) != 2 {
		t.Fatalf("expected empty query to keep everything, got %d", len(got))
	}
}

func TestFilterRecipesAndFind(t *testing.T) {
	recipes := []models.Recipe{{Name: "Margherita"}, {Name: "Calabresa"}}
	recipes[0].ID = 1
	recipes[1].ID = 2
	filtered := FilterRecipes(recipes, RecipeFilters{Query: "cala"})
	if len(filtered) != 1 || filtered[0].Name != "Calabresa" {
		t.Fatalf("expected Calabresa, got %+v", filtered)
	}
	if found := FindRecipe(recipes, 2); found == nil || found.Name != "Calabresa" {
		t.Fatalf("expected to find recipe 2, got %+v", found)
	}
	if FindRecipe(recipes, 3) != nil {
		t.Fatal("expected missing recipe to return nil")
	}
}

func TestFiltersFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/app/ingredients/table?q=+farinha+", nil)
	if got := IngredientFiltersFromRequest(req).Query; got != "farinha" {
		t.Fatalf("expected trimmed query, got %q", got)
	}
	req = httptest.NewRequest("GET", "/app/recipes/table?q=marg", nil)
	if got := RecipeFiltersFromRequest(req).Query; got != "marg" {
		t.Fatalf("expected query, got %q", got)
	}
}

func TestParseUint(t *testing.T) {
	cases := map[string]uint{"12": 12, " 7 ": 7, "": 0, "-1": 0, "abc": 0}
	for input, want := range cases {
		if got := ParseUint(input); got != want {
			t.Fatalf("ParseUint(%q) = %d, want %d", input, got, want)
		}
	}
}

func TestNextUntitledRecipeName(t *testing.T) {
	cases := []struct {
		name     string
		existing []models.Recipe
		want     string
	}{
		{
			name:     "no existing",
			existing: nil,
			want:     "Untitled Recipe",
		},
		{
			name: "fills gaps",
			existing: []models.Recipe{
				{Name: "Untitled Recipe"},
				{Name: "Untitled Recipe 2"},
				{Name: "Portuguesa"},
			},
			want: "Untitled Recipe 3",
		},
		{
			name: "ignores casing",
			existing: []models.Recipe{
				{Name: "untitled recipe"},
			},
			want: "Untitled Recipe 2",
		},
	}

	for _, tc := range cases {
		if got := NextUntitledRecipeName(tc.existing); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestDisplayHelpers(t *testing.T) {
	ingredient := models.Ingredient{PurchaseQuantity: 1.5, PurchaseUnit: "kg"}
	if got := PurchaseLabel(ingredient); got != "1.5 kg" {
		t.Fatalf("PurchaseLabel = %q", got)
	}
	if got := BaseUnitLabel("l"); got != "per ml" {
		t.Fatalf("BaseUnitLabel(l) = %q", got)
	}
	if got := MarginLabel(50); got != "50%" {
		t.Fatalf("MarginLabel(50) = %q", got)
	}
	if got := IngredientDisplayName(map[uint]string{1: "Farinha"}, 2); got != "Removed ingredient" {
		t.Fatalf("IngredientDisplayName for missing id = %q", got)
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{"12,5", 12.5},
		{"1.234,50", 1234.5},
		{"3.75", 3.75},
		{"", 0},
		{"abc", 0},
		{"R$ 7,00", 7},
		{"1e3", 0},
		{"12abc34", 0},
		{"2x3", 0},
	}
	for _, tt := range tests {
		if got := ParseAmount(tt.in); got != tt.want {
			t.Fatalf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
