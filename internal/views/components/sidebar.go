package components

import (
	"context"

	"github.com/a-h/templ"
)

// SidebarLink is one navigation entry of the workspace sidebar.
type SidebarLink struct {
	Label   string
	Path    string
	Section string
}

// SidebarData drives the sidebar rendering.
type SidebarData struct {
	Active   string
	UserName string
	Features []SidebarLink
}

func linkState(section, active string) string {
	if section == active {
		return "active"
	}
	return "inactive"
}

// Sidebar renders the workspace navigation.
func Sidebar(data SidebarData) templ.Component {
	return Func(func(ctx context.Context, m *Markup) {
		m.Raw(`<nav class="workspace-sidebar flex flex-col gap-1 p-4" aria-label="Workspace">`)
		m.Raw(`<p class="px-3 pb-4 text-lg font-semibold">Pizzacost</p>`)
		for _, link := range data.Features {
			m.Raw(`<a class="workspace-nav-link rounded px-3 py-2"`)
			m.Attr("href", link.Path)
			m.Attr("hx-get", link.Path)
			m.Attr("hx-target", "#workspace-content")
			m.Attr("hx-push-url", "true")
			m.Attr("data-nav-section", link.Section)
			m.Attr("data-state", linkState(link.Section, data.Active))
			m.Raw(">")
			m.Text(link.Label)
			m.Raw("</a>")
		}
		m.Raw(`<div class="mt-auto px-3 pt-6 text-sm workspace-muted">`)
		if data.UserName != "" {
			m.Raw("<p>")
			m.Text(data.UserName)
			m.Raw("</p>")
		}
		m.Raw(`<a href="/logout" class="workspace-accent">Sign out</a></div></nav>`)
	})
}
