package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"pizzacost/internal/views/components"
	"pizzacost/internal/views/layout"
)

const defaultWorkspaceSection = "dashboard"

var workspaceSections = []components.SidebarLink{
	{Label: "Dashboard", Path: "/app", Section: "dashboard"},
	{Label: "Ingredients", Path: "/app/ingredients", Section: "ingredients"},
	{Label: "Recipes", Path: "/app/recipes", Section: "recipes"},
	{Label: "Import prices", Path: "/app/tools", Section: "tools"},
	{Label: "Preferences", Path: "/app/preferences", Section: "preferences"},
}

// DefaultWorkspaceSection returns the section shown at /app.
func DefaultWorkspaceSection() string {
	return defaultWorkspaceSection
}

// ValidWorkspaceSection reports whether section names a workspace module.
func ValidWorkspaceSection(section string) bool {
	for _, link := range workspaceSections {
		if link.Section == section {
			return true
		}
	}
	return false
}

// NormalizeWorkspaceSection lowercases section and falls back to the default
// for unknown values.
func NormalizeWorkspaceSection(section string) string {
	normalized := strings.ToLower(strings.TrimSpace(section))
	if ValidWorkspaceSection(normalized) {
		return normalized
	}
	return defaultWorkspaceSection
}

// Workspace renders the module for section.
func Workspace(section string, snapshot WorkspaceSnapshot) templ.Component {
	section = NormalizeWorkspaceSection(section)
	return components.Func(func(ctx context.Context, m *components.Markup) {
		m.Raw(`<div class="flex flex-col gap-6"`)
		m.Attr("data-module-key", section)
		m.Raw(">")
		switch section {
		case "ingredients":
			m.Component(ctx, IngredientsModule(snapshot, IngredientFilters{}))
		case "recipes":
			m.Component(ctx, RecipesModule(snapshot, RecipeFilters{}))
		case "tools":
			m.Component(ctx, ToolsPanel(snapshot, "", "", nil))
		case "preferences":
			m.Component(ctx, PreferencesPanel(snapshot.Theme, ""))
		default:
			m.Component(ctx, StatsPanel(snapshot))
		}
		m.Raw("</div>")
	})
}

// DashboardPartial renders content for an HTMX swap into the workspace shell.
// A nil content renders the section module.
func DashboardPartial(section string, snapshot WorkspaceSnapshot, content templ.Component) templ.Component {
	if content == nil {
		return Workspace(section, snapshot)
	}
	return content
}

// Dashboard renders the full workspace document.
func Dashboard(section string, snapshot WorkspaceSnapshot, content templ.Component) templ.Component {
	active := NormalizeWorkspaceSection(section)
	sidebar := components.Sidebar(components.SidebarData{
		Active:   active,
		UserName: snapshot.UserName,
		Features: workspaceSections,
	})
	title := "Pizzacost"
	for _, link := range workspaceSections {
		if link.Section == active {
			title = fmt.Sprintf("%s · Pizzacost", link.Label)
		}
	}
	return layout.Layout(title, sidebar, DashboardPartial(section, snapshot, content), true, layout.ThemeByID(snapshot.Theme))
}

// StatsPanel renders the dashboard summary.
func StatsPanel(snapshot WorkspaceSnapshot) templ.Component {
	stats := snapshot.Stats
	featured := make([]components.PriceEntry, 0, len(stats.Featured))
	for _, entry := range stats.Featured {
		featured = append(featured, components.PriceEntry{
			Name:  entry.Name,
			Path:  fmt.Sprintf("/app/recipes/%d", entry.RecipeID),
			Price: snapshot.Money.Format(entry.SuggestedPrice),
		})
	}
	return components.Func(func(ctx context.Context, m *components.Markup) {
		m.Raw(`<h1 class="text-2xl font-semibold">Dashboard</h1>`)
		m.Raw(`<div class="grid gap-4 sm:grid-cols-2 lg:grid-cols-4">`)
		m.Component(ctx, components.StatCard("Ingredients", fmt.Sprint(stats.Ingredients), "", "Priced from supplier purchases"))
		m.Component(ctx, components.StatCard("Recipes", fmt.Sprint(stats.Recipes), "", "Flavors on the menu"))
		m.Component(ctx, components.StatCard("Cost sheets", fmt.Sprint(stats.Sheets), "", "Configured sizes across all recipes"))
		m.Component(ctx, components.StatCard("Average total cost", snapshot.Money.Format(stats.AverageTotalCost), "", "Across every cost sheet"))
		m.Raw("</div>")
		m.Component(ctx, components.PriceList("Suggested price, size G", featured))
		m.Raw(`<p class="text-sm workspace-muted"><a class="workspace-accent" href="/app/export/prices.xlsx">Download the price sheet</a></p>`)
	})
}
