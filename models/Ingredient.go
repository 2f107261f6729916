package models

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"pizzacost/internal/costing"
)

// ErrIngredientNameRequired is returned when saving an ingredient without a name.
var ErrIngredientNameRequired = errors.New("ingredient name is required")

// ErrInvalidPurchasePrice is returned when the purchase price is negative or
// not a number.
var ErrInvalidPurchasePrice = errors.New("purchase price must be zero or more")

// Ingredient is a purchasable raw material. BaseUnitPrice is derived from the
// purchase fields on every save and is never edited directly.
type Ingredient struct {
	gorm.Model
	OwnerID          uint    `gorm:"not null;index" json:"owner_id"`
	Name             string  `gorm:"not null" json:"name"`
	PurchasePrice    float64 `gorm:"not null;default:0" json:"purchase_price"`
	PurchaseQuantity float64 `gorm:"not null" json:"purchase_quantity"`
	PurchaseUnit     string  `gorm:"type:varchar(8);not null" json:"purchase_unit"`
	BaseUnitPrice    float64 `gorm:"not null;default:0" json:"base_unit_price"`
}

// Unit returns the purchase unit as a costing unit.
func (i Ingredient) Unit() costing.Unit {
	return costing.Unit(i.PurchaseUnit)
}

// Reprice validates the purchase fields and recomputes BaseUnitPrice.
func (i *Ingredient) Reprice() error {
	i.Name = strings.TrimSpace(i.Name)
	if i.Name == "" {
		return ErrIngredientNameRequired
	}
	if !nonNegative(i.PurchasePrice) {
		return fmt.Errorf("%w: %v", ErrInvalidPurchasePrice, i.PurchasePrice)
	}
	unit, err := costing.ParseUnit(i.PurchaseUnit)
	if err != nil {
		return fmt.Errorf("purchase unit %q: %w", i.PurchaseUnit, err)
	}
	price, err := costing.Normalize(i.PurchasePrice, i.PurchaseQuantity, unit)
	if err != nil {
		return err
	}
	i.PurchaseUnit = unit.String()
	i.BaseUnitPrice = price
	return nil
}

// BeforeSave keeps BaseUnitPrice in step with the purchase fields.
func (i *Ingredient) BeforeSave(tx *gorm.DB) error {
	return i.Reprice()
}

// PriceCatalog indexes the current base-unit price of each ingredient by id.
func PriceCatalog(ingredients []Ingredient) costing.PriceCatalog {
	catalog := make(costing.PriceCatalog, len(ingredients))
	for _, ingredient := range ingredients {
		catalog[ingredient.ID] = ingredient.BaseUnitPrice
	}
	return catalog
}
