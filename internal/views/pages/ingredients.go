package pages

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"pizzacost/internal/money"
	"pizzacost/internal/views/components"
	"pizzacost/models"
)

// IngredientsModule renders the ingredient section: the creation form and the table.
func IngredientsModule(snapshot WorkspaceSnapshot, filters IngredientFilters) templ.Component {
	return components.Func(func(ctx context.Context, m *components.Markup) {
		m.Raw(`<h1 class="text-2xl font-semibold">Ingredients</h1>`)
		m.Component(ctx, IngredientForm(""))
		m.Component(ctx, IngredientTable(FilterIngredients(snapshot.Ingredients, filters), filters, len(snapshot.Ingredients), snapshot.Money))
	})
}

// IngredientForm renders the form used to register a purchase.
func IngredientForm(message string) templ.Component {
	return components.Func(func(ctx context.Context, m *components.Markup) {
		m.Raw(`<form id="ingredient-form" class="workspace-surface grid gap-3 rounded-lg p-4 sm:grid-cols-5" hx-post="/app/ingredients/new" hx-target="#ingredient-section" hx-swap="outerHTML">`)
		m.Raw(`<input name="name" placeholder="Name" required class="rounded border px-2 py-1">`)
		m.Raw(`<input name="purchase_price" placeholder="Price paid" inputmode="decimal" required class="rounded border px-2 py-1">`)
		m.Raw(`<input name="purchase_quantity" placeholder="Quantity" inputmode="decimal" required class="rounded border px-2 py-1">`)
		m.Component(ctx, unitSelect("purchase_unit", ""))
		m.Raw(`<button type="submit" class="rounded px-3 py-1 font-semibold workspace-accent">Add ingredient</button>`)
		m.Raw("</form>")
		m.Component(ctx, components.Banner("error", message))
	})
}

func unitSelect(name, selected string) templ.Component {
	return components.Func(func(ctx context.Context, m *components.Markup) {
		m.Raw(`<select class="rounded border px-2 py-1"`)
		m.Attr("name", name)
		m.Raw(">")
		for _, unit := range UnitOptions() {
			m.Raw("<option")
			m.Attr("value", unit.String())
			if unit.String() == selected {
				m.Raw(" selected")
			}
			m.Raw(">")
			m.Text(unit.Label())
			m.Raw("</option>")
		}
		m.Raw("</select>")
	})
}

// IngredientTable renders the searchable ingredient ledger.
func IngredientTable(ingredients []models.Ingredient, filters IngredientFilters, total int, formatter money.Formatter) templ.Component {
	return IngredientSection(ingredients, filters, total, formatter, "")
}

// IngredientSection renders the ledger together with a status message.
func IngredientSection(ingredients []models.Ingredient, filters IngredientFilters, total int, formatter money.Formatter, message string) templ.Component {
	return components.Func(func(ctx context.Context, m *components.Markup) {
		m.Raw(`<section id="ingredient-section" class="flex flex-col gap-3">`)
		m.Component(ctx, components.Banner("info", message))
		m.Raw(`<form class="flex gap-2" hx-get="/app/ingredients/table" hx-target="#ingredient-section" hx-swap="outerHTML" hx-trigger="input changed delay:300ms from:input, submit">`)
		m.Raw(`<input type="search" name="q" placeholder="Search ingredients" class="rounded border px-2 py-1"`)
		m.Attr("value", filters.Query)
		m.Raw(">")
		m.Raw("</form>")
		m.Raw(`<p class="text-sm workspace-muted">`)
		m.Text(fmt.Sprintf("Showing %d of %d ingredients", len(ingredients), total))
		m.Raw("</p>")
		if len(ingredients) == 0 {
			m.Raw(`<p class="workspace-muted" data-empty>No ingredients match.</p></section>`)
			return
		}
		m.Raw(`<table class="w-full text-sm"><thead><tr><th class="text-left">Name</th><th class="text-left">Purchase</th><th class="text-right">Price paid</th><th class="text-right">Base price</th><th class="text-right">Updated</th><th></th></tr></thead><tbody>`)
		for _, ingredient := range ingredients {
			m.Raw("<tr")
			m.Attr("data-ingredient-id", fmt.Sprint(ingredient.ID))
			m.Raw("><td>")
			m.Text(ingredient.Name)
			m.Raw("</td><td>")
			m.Text(PurchaseLabel(ingredient))
			m.Raw(`</td><td class="text-right tabular-nums">`)
			m.Text(formatter.Format(ingredient.PurchasePrice))
			m.Raw(`</td><td class="text-right tabular-nums">`)
			m.Text(formatter.UnitPrice(ingredient.BaseUnitPrice))
			m.Raw(` <span class="workspace-subtle">`)
			m.Text(BaseUnitLabel(ingredient.PurchaseUnit))
			m.Raw(`</span></td><td class="text-right">`)
			m.Text(formatAuditDate(ingredient.UpdatedAt))
			m.Raw(`</td><td class="text-right"><button class="workspace-muted" hx-target="#ingredient-section" hx-swap="outerHTML" hx-confirm="Delete this ingredient? Recipes that use it will stop counting its cost."`)
			m.Attr("hx-post", fmt.Sprintf("/app/ingredients/delete?id=%d", ingredient.ID))
			m.Raw(">Delete</button></td></tr>")
		}
		m.Raw("</tbody></table></section>")
	})
}
