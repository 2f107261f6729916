package pages

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"pizzacost/internal/costing"
	"pizzacost/models"
)

// DefaultDash returns an em dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

// QuantityValue formats a quantity without trailing zeros.
func QuantityValue(quantity float64) string {
	return strconv.FormatFloat(quantity, 'f', -1, 64)
}

// PurchaseLabel describes how an ingredient is bought, for example "5 kg".
func PurchaseLabel(ingredient models.Ingredient) string {
	return QuantityValue(ingredient.PurchaseQuantity) + " " + ingredient.PurchaseUnit
}

// BaseUnitLabel names the unit a base price refers to, for example "per g".
func BaseUnitLabel(unit string) string {
	base := costing.Unit(unit).BaseUnit()
	if base == "" {
		return ""
	}
	return "per " + base.String()
}

// MarginLabel renders a margin percentage.
func MarginLabel(marginPct float64) string {
	return QuantityValue(marginPct) + "%"
}

// UnitOptions lists the units offered in ingredient and recipe forms.
func UnitOptions() []costing.Unit {
	return costing.Units()
}

// formatAuditDate renders timestamps in a friendly day month year format.
func formatAuditDate(value time.Time) string {
	if value.IsZero() {
		return "—"
	}
	return value.Format("02 Jan 2006")
}

// NextUntitledRecipeName returns a default name for a new recipe that does not
// collide with existing ones, ignoring case.
func NextUntitledRecipeName(existing []models.Recipe) string {
	const base = "Untitled Recipe"
	used := make(map[string]struct{}, len(existing))
	for _, recipe := range existing {
		name := strings.TrimSpace(recipe.Name)
		if name == "" {
			continue
		}
		used[strings.ToLower(name)] = struct{}{}
	}

	if _, ok := used[strings.ToLower(base)]; !ok {
		return base
	}

	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s %d", base, i)
		if _, ok := used[strings.ToLower(candidate)]; !ok {
			return candidate
		}
	}
}

// PreferenceStatusMessage normalises the text displayed in the preferences status banner.
func PreferenceStatusMessage(message string) string {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return "Pick a theme and save to update your workspace."
	}
	return trimmed
}
