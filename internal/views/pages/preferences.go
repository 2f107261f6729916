package pages

import (
	"context"

	"github.com/a-h/templ"

	"pizzacost/internal/views/components"
	"pizzacost/internal/views/layout"
)

// PreferencesPanel renders the theme picker.
func PreferencesPanel(current, message string) templ.Component {
	return components.Func(func(ctx context.Context, m *components.Markup) {
		m.Raw(`<h1 class="text-2xl font-semibold">Preferences</h1>`)
		m.Raw(`<form class="workspace-surface flex flex-col gap-3 rounded-lg p-4" hx-post="/app/preferences/update" hx-target="#preference-status" hx-swap="outerHTML">`)
		for _, option := range layout.ThemeOptions() {
			m.Raw(`<label class="flex items-start gap-2"><input type="radio" name="theme"`)
			m.Attr("value", option.ID)
			if option.ID == current {
				m.Raw(" checked")
			}
			m.Raw("><span><strong>")
			m.Text(option.Label)
			m.Raw(`</strong><br><span class="text-sm workspace-muted">`)
			m.Text(option.Description)
			m.Raw("</span></span></label>")
		}
		m.Raw(`<button type="submit" class="self-start rounded px-3 py-1 font-semibold workspace-accent">Save</button></form>`)
		m.Component(ctx, PreferenceStatus(message))
	})
}

// PreferenceStatus renders the preferences status banner.
func PreferenceStatus(message string) templ.Component {
	return components.Func(func(ctx context.Context, m *components.Markup) {
		m.Raw(`<p id="preference-status" class="text-sm workspace-muted" role="status">`)
		m.Text(PreferenceStatusMessage(message))
		m.Raw("</p>")
	})
}
