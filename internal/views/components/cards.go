package components

import (
	"context"

	"github.com/a-h/templ"
)

// StatCard renders a headline figure with an optional delta and caption.
func StatCard(title, value, delta, caption string) templ.Component {
	return Func(func(ctx context.Context, m *Markup) {
		m.Raw(`<article class="workspace-surface stat-card rounded-lg p-4">`)
		m.Raw(`<h3 class="text-sm workspace-muted">`)
		m.Text(title)
		m.Raw(`</h3><p class="text-2xl font-semibold" data-stat-value>`)
		m.Text(value)
		m.Raw("</p>")
		if delta != "" {
			m.Raw(`<p class="text-sm workspace-accent">`)
			m.Text(delta)
			m.Raw("</p>")
		}
		if caption != "" {
			m.Raw(`<p class="text-xs workspace-subtle">`)
			m.Text(caption)
			m.Raw("</p>")
		}
		m.Raw("</article>")
	})
}

// PriceEntry is one row of a price list.
type PriceEntry struct {
	Name  string
	Path  string
	Price string
}

// PriceList renders a compact two-column list of names and prices.
func PriceList(title string, entries []PriceEntry) templ.Component {
	return Func(func(ctx context.Context, m *Markup) {
		m.Raw(`<section class="workspace-surface rounded-lg p-4"><h3 class="pb-2 font-semibold">`)
		m.Text(title)
		m.Raw("</h3>")
		if len(entries) == 0 {
			m.Raw(`<p class="workspace-muted">Nothing to show yet.</p></section>`)
			return
		}
		m.Raw(`<table class="w-full text-sm"><tbody>`)
		for _, entry := range entries {
			m.Raw("<tr><td>")
			if entry.Path != "" {
				m.Raw("<a")
				m.Attr("href", entry.Path)
				m.Raw(">")
				m.Text(entry.Name)
				m.Raw("</a>")
			} else {
				m.Text(entry.Name)
			}
			m.Raw(`</td><td class="text-right tabular-nums">`)
			m.Text(entry.Price)
			m.Raw("</td></tr>")
		}
		m.Raw("</tbody></table></section>")
	})
}

// Banner renders a status message. Empty messages render nothing.
func Banner(kind, message string) templ.Component {
	return Func(func(ctx context.Context, m *Markup) {
		if message == "" {
			return
		}
		m.Raw(`<div role="status"`)
		m.Attr("class", "banner banner-"+kind)
		m.Raw(">")
		m.Text(message)
		m.Raw("</div>")
	})
}
