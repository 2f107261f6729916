package costing

import (
	"errors"
	"math"
	"strings"
)

var (
	// ErrUnknownUnit is returned when a unit tag is not part of the supported set.
	ErrUnknownUnit = errors.New("costing: unknown unit")
	// ErrInvalidPurchaseQuantity is returned when a purchase quantity cannot produce a finite unit price.
	ErrInvalidPurchaseQuantity = errors.New("costing: invalid purchase quantity")
)

// Unit identifies how an ingredient quantity is measured.
type Unit string

const (
	UnitKilogram   Unit = "kg"
	UnitGram       Unit = "g"
	UnitLiter      Unit = "l"
	UnitMilliliter Unit = "ml"
	UnitItem       Unit = "un"
)

type unitInfo struct {
	multiplier float64
	base       Unit
	label      string
}

// The order and multipliers are part of the persisted record contract.
var units = []Unit{UnitKilogram, UnitGram, UnitLiter, UnitMilliliter, UnitItem}

var unitTable = map[Unit]unitInfo{
	UnitKilogram:   {multiplier: 1000, base: UnitGram, label: "Kilogram (kg)"},
	UnitGram:       {multiplier: 1, base: UnitGram, label: "Gram (g)"},
	UnitLiter:      {multiplier: 1000, base: UnitMilliliter, label: "Liter (l)"},
	UnitMilliliter: {multiplier: 1, base: UnitMilliliter, label: "Milliliter (ml)"},
	UnitItem:       {multiplier: 1, base: UnitItem, label: "Item (un)"},
}

var unitAliases = map[string]Unit{
	"kg":          UnitKilogram,
	"kgs":         UnitKilogram,
	"kilo":        UnitKilogram,
	"kilos":       UnitKilogram,
	"kilogram":    UnitKilogram,
	"kilograms":   UnitKilogram,
	"quilo":       UnitKilogram,
	"quilograma":  UnitKilogram,
	"quilogramas": UnitKilogram,
	"g":           UnitGram,
	"gr":          UnitGram,
	"gram":        UnitGram,
	"grams":       UnitGram,
	"grama":       UnitGram,
	"gramas":      UnitGram,
	"l":           UnitLiter,
	"lt":          UnitLiter,
	"liter":       UnitLiter,
	"liters":      UnitLiter,
	"litre":       UnitLiter,
	"litres":      UnitLiter,
	"litro":       UnitLiter,
	"litros":      UnitLiter,
	"ml":          UnitMilliliter,
	"milliliter":  UnitMilliliter,
	"milliliters": UnitMilliliter,
	"millilitre":  UnitMilliliter,
	"mililitro":   UnitMilliliter,
	"mililitros":  UnitMilliliter,
	"un":          UnitItem,
	"und":         UnitItem,
	"unid":        UnitItem,
	"unidade":     UnitItem,
	"unidades":    UnitItem,
	"item":        UnitItem,
	"items":       UnitItem,
	"unit":        UnitItem,
	"units":       UnitItem,
	"pc":          UnitItem,
	"pcs":         UnitItem,
}

// Units returns the supported units in their canonical order.
func Units() []Unit {
	out := make([]Unit, len(units))
	copy(out, units)
	return out
}

// ParseUnit resolves a unit tag or one of its common spellings.
func ParseUnit(value string) (Unit, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	key = strings.TrimSuffix(key, ".")
	if unit, ok := unitAliases[key]; ok {
		return unit, nil
	}
	return "", ErrUnknownUnit
}

// Valid reports whether u is one of the supported units.
func (u Unit) Valid() bool {
	_, ok := unitTable[u]
	return ok
}

// Multiplier converts one u into its base unit. Values outside the supported
// set fall back to 1; use ParseUnit to reject them up front.
func (u Unit) Multiplier() float64 {
	if info, ok := unitTable[u]; ok {
		return info.multiplier
	}
	return 1
}

// BaseUnit returns the canonical unit prices are stored against.
func (u Unit) BaseUnit() Unit {
	if info, ok := unitTable[u]; ok {
		return info.base
	}
	return u
}

// Label returns a human readable name for the unit.
func (u Unit) Label() string {
	if info, ok := unitTable[u]; ok {
		return info.label
	}
	return string(u)
}

func (u Unit) String() string {
	return string(u)
}

// ToBase converts quantity expressed in u into base units.
func (u Unit) ToBase(quantity float64) float64 {
	return quantity * u.Multiplier()
}

// UnitPrice is the unguarded base-unit price formula. A zero quantity yields
// a non-finite result.
func UnitPrice(price, quantity float64, unit Unit) float64 {
	return price / (quantity * unit.Multiplier())
}

// Normalize converts the price paid for one purchased pack into a price per
// base unit (gram, milliliter or item).
func Normalize(price, quantity float64, unit Unit) (float64, error) {
	if !unit.Valid() {
		return 0, ErrUnknownUnit
	}
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity <= 0 {
		return 0, ErrInvalidPurchaseQuantity
	}
	return UnitPrice(price, quantity, unit), nil
}
