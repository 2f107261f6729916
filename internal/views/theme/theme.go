package theme

import (
	"strings"

	"pizzacost/models"
)

// Option represents a selectable theme exposed to the UI.
type Option struct {
	Value string
	Label string
}

// WorkspaceTheme contains resolved styling primitives for the application shell.
type WorkspaceTheme struct {
	Key                   string
	BodyClass             string
	ShellClass            string
	PanelSurfaceClass     string
	PanelSoftSurfaceClass string
	BorderStrongClass     string
	BorderSoftClass       string
	AccentTextClass       string
	MutedTextClass        string
	SubtleTextClass       string
}

// DefaultKey defines the fallback theme when no user preference exists.
const DefaultKey = models.DefaultTheme

func shell(key, body, variant string) WorkspaceTheme {
	return WorkspaceTheme{
		Key:                   key,
		BodyClass:             body,
		ShellClass:            "workspace-shell " + variant,
		PanelSurfaceClass:     "workspace-surface",
		PanelSoftSurfaceClass: "workspace-surface-soft",
		BorderStrongClass:     "workspace-border-strong",
		BorderSoftClass:       "workspace-border-soft",
		AccentTextClass:       "workspace-accent",
		MutedTextClass:        "workspace-muted",
		SubtleTextClass:       "workspace-subtle",
	}
}

var catalogue = map[string]WorkspaceTheme{
	models.ThemeEmber: shell(models.ThemeEmber, "min-h-screen bg-stone-950 text-stone-100", "dark"),
	models.ThemeFlour: shell(models.ThemeFlour, "min-h-screen bg-stone-50 text-stone-900", "light"),
	models.ThemeBasil: shell(models.ThemeBasil, "min-h-screen bg-emerald-950 text-emerald-50", "herb"),
}

var options = []Option{
	{Value: models.ThemeEmber, Label: "Ember (Dark)"},
	{Value: models.ThemeFlour, Label: "Flour (Light)"},
	{Value: models.ThemeBasil, Label: "Basil (Green)"},
}

// Lookup returns the theme registered under key.
func Lookup(key string) (WorkspaceTheme, bool) {
	value, ok := catalogue[strings.ToLower(strings.TrimSpace(key))]
	return value, ok
}

// Resolve returns the registered theme configuration for the provided key.
func Resolve(key string) WorkspaceTheme {
	if value, ok := Lookup(key); ok {
		return value
	}
	return catalogue[DefaultKey]
}

// Options exposes the available theme selections for rendering in a form control.
func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}
