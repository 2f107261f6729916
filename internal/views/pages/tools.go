package pages

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"pizzacost/internal/pricelist"
	"pizzacost/internal/views/components"
)

// ToolsPanel renders the supplier price-list import form and, after an
// upload, its summary.
func ToolsPanel(snapshot WorkspaceSnapshot, message, errorMessage string, summary *pricelist.Summary) templ.Component {
	return components.Func(func(ctx context.Context, m *components.Markup) {
		m.Raw(`<section id="tools-panel" class="flex flex-col gap-4">`)
		m.Raw(`<h1 class="text-2xl font-semibold">Import supplier prices</h1>`)
		m.Raw(`<p class="workspace-muted">Upload a CSV, XLSX or PDF price list with a name, price, quantity and unit per line. Ingredients are matched by name; new names are added.</p>`)
		m.Component(ctx, components.Banner("info", message))
		m.Component(ctx, components.Banner("error", errorMessage))
		m.Raw(`<form class="workspace-surface flex flex-wrap items-end gap-3 rounded-lg p-4" method="post" action="/app/tools/import-prices" enctype="multipart/form-data" hx-post="/app/tools/import-prices" hx-encoding="multipart/form-data" hx-target="#tools-panel" hx-swap="outerHTML">`)
		m.Raw(`<input type="file" name="price_list" accept=".csv,.txt,.xlsx,.pdf" required>`)
		m.Raw(`<button type="submit" class="rounded px-3 py-1 font-semibold workspace-accent">Import</button></form>`)
		if summary != nil {
			m.Raw(`<div class="workspace-surface rounded-lg p-4 text-sm" data-import-summary>`)
			m.Text(fmt.Sprintf("%d created, %d updated, %d skipped.", summary.Created, summary.Updated, len(summary.Skipped)))
			if len(summary.Skipped) > 0 {
				m.Raw(`<ul class="pt-2 workspace-muted">`)
				for _, skipped := range summary.Skipped {
					m.Raw("<li>")
					m.Text(fmt.Sprintf("Line %d: %s (%v)", skipped.Line, DefaultDash(skipped.Text), skipped.Err))
					m.Raw("</li>")
				}
				m.Raw("</ul>")
			}
			m.Raw("</div>")
		}
		m.Raw(`<p class="text-sm workspace-muted">`)
		m.Text(fmt.Sprintf("%d ingredients in your catalog.", len(snapshot.Ingredients)))
		m.Raw("</p></section>")
	})
}
