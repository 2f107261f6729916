package layout

import (
	"context"

	"github.com/a-h/templ"

	"pizzacost/internal/views/components"
)

func bodyWrapperClass(sidebarOpen bool) string {
	if sidebarOpen {
		return "grid min-h-screen grid-cols-[16rem_1fr]"
	}
	return "grid min-h-screen grid-cols-1"
}

func mainClass(sidebarOpen bool) string {
	if sidebarOpen {
		return "min-w-0 p-6 lg:p-10"
	}
	return "mx-auto w-full max-w-5xl p-6"
}

// Layout renders the full HTML document around the workspace sidebar and content.
func Layout(title string, sidebar, content templ.Component, sidebarOpen bool, def ThemeDefinition) templ.Component {
	return components.Func(func(ctx context.Context, m *components.Markup) {
		m.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		m.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		m.Raw("<title>")
		m.Text(title)
		m.Raw("</title>")
		m.Raw(`<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>`)
		m.Raw(`<script src="https://cdn.tailwindcss.com"></script>`)
		m.Raw("</head><body")
		m.Attr("class", def.Styles.BodyClass)
		m.Attr("data-theme", def.ID)
		m.Raw("><div")
		m.Attr("class", def.Styles.ShellClass+" "+bodyWrapperClass(sidebarOpen))
		m.Raw(">")
		if sidebarOpen && sidebar != nil {
			m.Raw("<aside")
			m.Attr("class", def.Styles.PanelSoftSurfaceClass+" "+def.Styles.BorderSoftClass)
			m.Raw(">")
			m.Component(ctx, sidebar)
			m.Raw("</aside>")
		}
		m.Raw(`<main id="workspace-content"`)
		m.Attr("class", mainClass(sidebarOpen))
		m.Raw(">")
		m.Component(ctx, content)
		m.Raw("</main></div></body></html>")
	})
}
