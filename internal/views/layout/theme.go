package layout

import (
	"sort"

	"pizzacost/internal/views/theme"
	"pizzacost/models"
)

// ThemeDefinition describes a visual theme that can be applied to the workspace layout.
type ThemeDefinition struct {
	ID          string
	Label       string
	Description string
	Styles      theme.WorkspaceTheme
}

var themeRegistry = map[string]ThemeDefinition{
	models.ThemeEmber: {
		ID:          models.ThemeEmber,
		Label:       "Ember",
		Description: "Charcoal oven tones with warm tomato highlights.",
		Styles:      theme.Resolve(models.ThemeEmber),
	},
	models.ThemeFlour: {
		ID:          models.ThemeFlour,
		Label:       "Flour",
		Description: "Bright dough-white canvas with charcoal typography.",
		Styles:      theme.Resolve(models.ThemeFlour),
	},
	models.ThemeBasil: {
		ID:          models.ThemeBasil,
		Label:       "Basil",
		Description: "Deep herb green with fresh leaf accents.",
		Styles:      theme.Resolve(models.ThemeBasil),
	},
}

// ThemeByID returns a definition for the provided identifier, falling back to the default theme.
func ThemeByID(id string) ThemeDefinition {
	if def, ok := themeRegistry[id]; ok {
		return def
	}
	return themeRegistry[models.DefaultTheme]
}

// ThemeOptions exposes all theme definitions sorted by label for form rendering.
func ThemeOptions() []ThemeDefinition {
	options := make([]ThemeDefinition, 0, len(themeRegistry))
	for _, def := range themeRegistry {
		options = append(options, def)
	}
	sort.Slice(options, func(i, j int) bool {
		return options[i].Label < options[j].Label
	})
	return options
}
