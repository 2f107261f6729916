package pages

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"pizzacost/internal/costing"
	"pizzacost/internal/money"
	"pizzacost/internal/views/components"
	"pizzacost/models"
)

// RecipesModule renders the recipe section.
func RecipesModule(snapshot WorkspaceSnapshot, filters RecipeFilters) templ.Component {
	return components.Func(func(ctx context.Context, m *components.Markup) {
		m.Raw(`<div class="flex items-center justify-between"><h1 class="text-2xl font-semibold">Recipes</h1>`)
		m.Raw(`<form hx-post="/app/recipes/new" hx-target="#workspace-content"><button type="submit" class="rounded px-3 py-1 font-semibold workspace-accent">New recipe</button></form></div>`)
		m.Component(ctx, RecipeTable(FilterRecipes(snapshot.Recipes, filters), filters, snapshot))
	})
}

// RecipeTable lists recipes with the suggested price of every size.
func RecipeTable(recipes []models.Recipe, filters RecipeFilters, snapshot WorkspaceSnapshot) templ.Component {
	return components.Func(func(ctx context.Context, m *components.Markup) {
		m.Raw(`<section id="recipe-section" class="flex flex-col gap-3">`)
		m.Raw(`<form class="flex gap-2" hx-get="/app/recipes/table" hx-target="#recipe-section" hx-swap="outerHTML" hx-trigger="input changed delay:300ms from:input, submit">`)
		m.Raw(`<input type="search" name="q" placeholder="Search recipes" class="rounded border px-2 py-1"`)
		m.Attr("value", filters.Query)
		m.Raw("></form>")
		if len(recipes) == 0 {
			m.Raw(`<p class="workspace-muted" data-empty>No recipes match.</p></section>`)
			return
		}
		m.Raw(`<table class="w-full text-sm"><thead><tr><th class="text-left">Recipe</th>`)
		for _, size := range costing.Sizes() {
			m.Raw(`<th class="text-right">`)
			m.Text(size.String())
			m.Raw("</th>")
		}
		m.Raw("</tr></thead><tbody>")
		for _, recipe := range recipes {
			cost := snapshot.CostFor(recipe)
			m.Raw("<tr")
			m.Attr("data-recipe-id", fmt.Sprint(recipe.ID))
			m.Raw("><td><a")
			m.Attr("href", fmt.Sprintf("/app/recipes/%d", recipe.ID))
			m.Raw(">")
			m.Text(recipe.Name)
			m.Raw("</a></td>")
			for _, size := range costing.Sizes() {
				sheet, _ := cost.For(size)
				m.Raw(`<td class="text-right tabular-nums">`)
				m.Text(snapshot.Money.Format(sheet.SuggestedPrice))
				m.Raw("</td>")
			}
			m.Raw("</tr>")
		}
		m.Raw("</tbody></table></section>")
	})
}

// RecipeDetailData carries everything the recipe editor shows.
type RecipeDetailData struct {
	Recipe      models.Recipe
	Cost        costing.RecipeCost
	Ingredients []models.Ingredient
	Money       money.Formatter
	Message     string
}

// RecipeDetail renders the cost breakdown and editor for one recipe.
func RecipeDetail(data RecipeDetailData) templ.Component {
	lookup := make(map[uint]string, len(data.Ingredients))
	for _, ingredient := range data.Ingredients {
		lookup[ingredient.ID] = ingredient.Name
	}
	recipe := data.Recipe
	base := fmt.Sprintf("/app/recipes/%d", recipe.ID)

	return components.Func(func(ctx context.Context, m *components.Markup) {
		m.Raw(`<section id="recipe-detail" class="flex flex-col gap-6"`)
		m.Attr("data-recipe-id", fmt.Sprint(recipe.ID))
		m.Raw(`><a href="/app/recipes" class="text-sm workspace-accent">Back to recipes</a>`)
		m.Component(ctx, components.Banner("info", data.Message))

		m.Raw(`<form class="workspace-surface grid gap-3 rounded-lg p-4 sm:grid-cols-4" hx-target="#recipe-detail" hx-swap="outerHTML"`)
		m.Attr("hx-post", base+"/settings")
		m.Raw(`><label class="flex flex-col text-sm sm:col-span-2">Name<input name="name" required class="rounded border px-2 py-1"`)
		m.Attr("value", recipe.Name)
		m.Raw(`></label><label class="flex flex-col text-sm">Margin %<input name="margin_pct" inputmode="decimal" class="rounded border px-2 py-1"`)
		m.Attr("value", QuantityValue(recipe.MarginPct))
		m.Raw(`></label><label class="flex flex-col text-sm">Overhead<input name="overhead" inputmode="decimal" class="rounded border px-2 py-1"`)
		m.Attr("value", QuantityValue(recipe.Overhead))
		m.Raw("></label>")
		for _, sheet := range recipe.Sizes {
			m.Raw(`<label class="flex flex-col text-sm">`)
			m.Text("Packaging " + sheet.Size)
			m.Raw(`<input inputmode="decimal" class="rounded border px-2 py-1"`)
			m.Attr("name", "packaging_"+sheet.Size)
			m.Attr("value", QuantityValue(sheet.Packaging))
			m.Raw("></label>")
		}
		m.Raw(`<button type="submit" class="rounded px-3 py-1 font-semibold workspace-accent">Save</button></form>`)

		m.Raw(`<form class="flex items-end gap-2 text-sm" hx-target="#recipe-detail" hx-swap="outerHTML"`)
		m.Attr("hx-post", base+"/copy")
		m.Raw(`><label class="flex flex-col">Copy ingredients from`)
		m.Component(ctx, sizeSelect("from"))
		m.Raw(`</label><label class="flex flex-col">to`)
		m.Component(ctx, sizeSelect("to"))
		m.Raw(`</label><button type="submit" class="rounded px-3 py-1 workspace-accent">Copy</button></form>`)

		for _, sheet := range recipe.Sizes {
			size := costing.Size(sheet.Size)
			cost, _ := data.Cost.For(size)
			m.Component(ctx, sizeSheet(base, sheet, cost, lookup, data.Ingredients, data.Money))
		}
		m.Raw(`<button class="self-start text-sm workspace-muted" hx-confirm="Delete this recipe?" hx-target="#workspace-content"`)
		m.Attr("hx-post", base+"/delete")
		m.Raw(">Delete recipe</button></section>")
	})
}

func sizeSelect(name string) templ.Component {
	return components.Func(func(ctx context.Context, m *components.Markup) {
		m.Raw(`<select class="rounded border px-2 py-1"`)
		m.Attr("name", name)
		m.Raw(">")
		for _, size := range costing.Sizes() {
			m.Raw("<option")
			m.Attr("value", size.String())
			m.Raw(">")
			m.Text(size.String())
			m.Raw("</option>")
		}
		m.Raw("</select>")
	})
}

func sizeSheet(base string, sheet models.RecipeSize, cost costing.SizeCost, lookup map[uint]string, ingredients []models.Ingredient, formatter money.Formatter) templ.Component {
	return components.Func(func(ctx context.Context, m *components.Markup) {
		m.Raw(`<article class="workspace-surface rounded-lg p-4"`)
		m.Attr("data-size", sheet.Size)
		m.Raw(`><header class="flex items-baseline justify-between pb-2"><h2 class="text-lg font-semibold">`)
		m.Text("Size " + sheet.Size)
		m.Raw(`</h2><p class="text-lg font-semibold tabular-nums" data-suggested-price>`)
		m.Text(formatter.Format(cost.SuggestedPrice))
		m.Raw("</p></header>")

		if len(sheet.Ingredients) == 0 {
			m.Raw(`<p class="text-sm workspace-muted">No ingredients yet.</p>`)
		} else {
			m.Raw(`<table class="w-full text-sm"><tbody>`)
			for i, ref := range sheet.Ingredients {
				var line costing.IngredientLine
				if i < len(cost.Lines) {
					line = cost.Lines[i]
				}
				m.Raw("<tr><td>")
				m.Text(IngredientDisplayName(lookup, ref.IngredientID))
				m.Raw("</td><td>")
				m.Text(QuantityValue(ref.Quantity) + " " + ref.Unit)
				m.Raw(`</td><td class="text-right tabular-nums">`)
				m.Text(formatter.Format(line.Cost))
				m.Raw(`</td><td class="text-right"><button class="workspace-muted" hx-target="#recipe-detail" hx-swap="outerHTML"`)
				m.Attr("hx-post", fmt.Sprintf("%s/lines/remove?size=%s&index=%d", base, sheet.Size, i))
				m.Raw(">Remove</button></td></tr>")
			}
			m.Raw("</tbody></table>")
		}

		m.Raw(`<form class="flex flex-wrap gap-2 pt-3 text-sm" hx-target="#recipe-detail" hx-swap="outerHTML"`)
		m.Attr("hx-post", base+"/lines")
		m.Raw(`><input type="hidden" name="size"`)
		m.Attr("value", sheet.Size)
		m.Raw(`><select name="ingredient_id" class="rounded border px-2 py-1">`)
		for _, ingredient := range ingredients {
			m.Raw("<option")
			m.Attr("value", fmt.Sprint(ingredient.ID))
			m.Raw(">")
			m.Text(ingredient.Name)
			m.Raw("</option>")
		}
		m.Raw(`</select><input name="quantity" inputmode="decimal" placeholder="Quantity" required class="w-24 rounded border px-2 py-1">`)
		m.Component(ctx, unitSelect("unit", costing.UnitGram.String()))
		m.Raw(`<button type="submit" class="rounded px-3 py-1 workspace-accent">Add</button></form>`)

		m.Raw(`<dl class="grid grid-cols-2 gap-x-4 pt-3 text-sm sm:grid-cols-5">`)
		for _, item := range []struct {
			label string
			value float64
		}{
			{"Ingredients", cost.IngredientCost},
			{"Packaging", cost.Packaging},
			{"Overhead", cost.Overhead},
			{"Total cost", cost.TotalCost},
			{"Suggested price", cost.SuggestedPrice},
		} {
			m.Raw(`<div><dt class="workspace-muted">`)
			m.Text(item.label)
			m.Raw(`</dt><dd class="tabular-nums">`)
			m.Text(formatter.Format(item.value))
			m.Raw("</dd></div>")
		}
		m.Raw("</dl></article>")
	})
}
