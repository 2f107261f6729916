// Package store holds the gorm queries shared by the HTTP handlers, the
// command line tools and the mock seed. Every query is scoped to an owner.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pizzacost/internal/costing"
	"pizzacost/models"
)

// ErrNilDatabase is returned when a query is issued without a database handle.
var ErrNilDatabase = errors.New("database handle is nil")

// ErrDuplicateIngredient is returned when another of the owner's ingredients
// already uses a name, compared case-insensitively.
var ErrDuplicateIngredient = errors.New("an ingredient with that name already exists")

func nameFilter(tx *gorm.DB, query string) *gorm.DB {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return tx
	}
	return tx.Where("lower(name) LIKE ?", "%"+query+"%")
}

// ListIngredients returns the owner's ingredients ordered by name. A non-empty
// query filters by case-insensitive substring of the name.
func ListIngredients(ctx context.Context, db *gorm.DB, ownerID uint, query string) ([]models.Ingredient, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	var ingredients []models.Ingredient
	tx := db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if err := nameFilter(tx, query).Order("lower(name) asc").Order("id asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// FindIngredient loads one ingredient owned by ownerID.
func FindIngredient(ctx context.Context, db *gorm.DB, ownerID, id uint) (*models.Ingredient, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	var ingredient models.Ingredient
	if err := db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&ingredient, id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// LoadCatalog returns the owner's current base-unit prices. Deleted
// ingredients are absent, so references to them cost nothing.
func LoadCatalog(ctx context.Context, db *gorm.DB, ownerID uint) (costing.PriceCatalog, error) {
	ingredients, err := ListIngredients(ctx, db, ownerID, "")
	if err != nil {
		return nil, err
	}
	return models.PriceCatalog(ingredients), nil
}

// CheckIngredientName returns ErrDuplicateIngredient when a live ingredient
// of the owner other than exceptID already carries name.
func CheckIngredientName(ctx context.Context, db *gorm.DB, ownerID uint, name string, exceptID uint) error {
	if db == nil {
		return ErrNilDatabase
	}
	tx := db.WithContext(ctx).Model(&models.Ingredient{}).
		Where("owner_id = ? AND lower(name) = ?", ownerID, strings.ToLower(strings.TrimSpace(name)))
	if exceptID != 0 {
		tx = tx.Where("id <> ?", exceptID)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateIngredient, strings.TrimSpace(name))
	}
	return nil
}

// UpsertIngredient creates the ingredient or, when the owner already has one
// with the same name ignoring case, overwrites its purchase fields. The save
// hook recomputes the base price in both cases.
func UpsertIngredient(ctx context.Context, db *gorm.DB, ownerID uint, incoming models.Ingredient) (*models.Ingredient, bool, error) {
	if db == nil {
		return nil, false, ErrNilDatabase
	}
	name := strings.TrimSpace(incoming.Name)
	if name == "" {
		return nil, false, models.ErrIngredientNameRequired
	}

	var (
		result  models.Ingredient
		created bool
	)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Ingredient
		err := tx.Where("owner_id = ? AND lower(name) = ?", ownerID, strings.ToLower(name)).First(&existing).Error
		switch {
		case err == nil:
			existing.PurchasePrice = incoming.PurchasePrice
			existing.PurchaseQuantity = incoming.PurchaseQuantity
			existing.PurchaseUnit = incoming.PurchaseUnit
			if err := tx.Save(&existing).Error; err != nil {
				return fmt.Errorf("update ingredient %q: %w", name, err)
			}
			result = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			fresh := models.Ingredient{
				OwnerID:          ownerID,
				Name:             name,
				PurchasePrice:    incoming.PurchasePrice,
				PurchaseQuantity: incoming.PurchaseQuantity,
				PurchaseUnit:     incoming.PurchaseUnit,
			}
			if err := tx.Create(&fresh).Error; err != nil {
				return fmt.Errorf("create ingredient %q: %w", name, err)
			}
			result = fresh
			created = true
		default:
			return fmt.Errorf("find ingredient %q: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &result, created, nil
}

func preloadSheets(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Sizes").
		Preload("Sizes.Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc").Order("id asc")
		})
}

// ListRecipes returns the owner's recipes with their sheets, ordered by name.
func ListRecipes(ctx context.Context, db *gorm.DB, ownerID uint, query string) ([]models.Recipe, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	var recipes []models.Recipe
	tx := preloadSheets(db.WithContext(ctx)).Where("owner_id = ?", ownerID)
	if err := nameFilter(tx, query).Order("lower(name) asc").Order("id asc").Find(&recipes).Error; err != nil {
		return nil, err
	}
	for i := range recipes {
		recipes[i].EnsureSizes()
	}
	return recipes, nil
}

// FindRecipe loads one recipe with every sheet in size order.
func FindRecipe(ctx context.Context, db *gorm.DB, ownerID, id uint) (*models.Recipe, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	var recipe models.Recipe
	if err := preloadSheets(db.WithContext(ctx)).Where("owner_id = ?", ownerID).First(&recipe, id).Error; err != nil {
		return nil, err
	}
	recipe.EnsureSizes()
	return &recipe, nil
}

// SaveRecipe validates the recipe, prices it against the owner's current
// catalog and persists it together with its sheets. Existing sheets are
// replaced wholesale.
func SaveRecipe(ctx context.Context, db *gorm.DB, recipe *models.Recipe) (costing.RecipeCost, error) {
	if db == nil {
		return costing.RecipeCost{}, ErrNilDatabase
	}
	recipe.Name = strings.TrimSpace(recipe.Name)
	if err := recipe.Validate(); err != nil {
		return costing.RecipeCost{}, err
	}

	catalog, err := LoadCatalog(ctx, db, recipe.OwnerID)
	if err != nil {
		return costing.RecipeCost{}, fmt.Errorf("load catalog: %w", err)
	}
	result := recipe.Recompute(catalog)

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if recipe.ID == 0 {
			if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
				return fmt.Errorf("create recipe: %w", err)
			}
		} else {
			if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
				return fmt.Errorf("update recipe: %w", err)
			}
			if err := deleteSheets(tx, recipe.ID); err != nil {
				return err
			}
		}

		for i := range recipe.Sizes {
			sheet := &recipe.Sizes[i]
			sheet.Model = gorm.Model{}
			sheet.RecipeID = recipe.ID
			for j := range sheet.Ingredients {
				sheet.Ingredients[j].Model = gorm.Model{}
				sheet.Ingredients[j].RecipeSizeID = 0
				sheet.Ingredients[j].Position = j
				sheet.Ingredients[j].Unit = costing.Unit(sheet.Ingredients[j].Unit).String()
			}
			if err := tx.Create(sheet).Error; err != nil {
				return fmt.Errorf("create %s sheet: %w", sheet.Size, err)
			}
		}
		return nil
	})
	if err != nil {
		return costing.RecipeCost{}, err
	}
	return result, nil
}

func deleteSheets(tx *gorm.DB, recipeID uint) error {
	sheetIDs := tx.Model(&models.RecipeSize{}).Select("id").Where("recipe_id = ?", recipeID)
	if err := tx.Unscoped().Where("recipe_size_id IN (?)", sheetIDs).Delete(&models.RecipeSizeIngredient{}).Error; err != nil {
		return fmt.Errorf("delete sheet ingredients: %w", err)
	}
	if err := tx.Unscoped().Where("recipe_id = ?", recipeID).Delete(&models.RecipeSize{}).Error; err != nil {
		return fmt.Errorf("delete sheets: %w", err)
	}
	return nil
}

// DeleteRecipe removes a recipe and its sheets.
func DeleteRecipe(ctx context.Context, db *gorm.DB, ownerID, id uint) error {
	if db == nil {
		return ErrNilDatabase
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("owner_id = ?", ownerID).First(&recipe, id).Error; err != nil {
			return err
		}
		if err := deleteSheets(tx, recipe.ID); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

// Quote prices every size of the stored recipe against the current catalog
// without writing anything back.
func Quote(ctx context.Context, db *gorm.DB, ownerID, id uint) (*models.Recipe, costing.RecipeCost, error) {
	recipe, err := FindRecipe(ctx, db, ownerID, id)
	if err != nil {
		return nil, costing.RecipeCost{}, err
	}
	catalog, err := LoadCatalog(ctx, db, ownerID)
	if err != nil {
		return nil, costing.RecipeCost{}, err
	}
	return recipe, recipe.Recompute(catalog), nil
}

// RecipePrice is the headline price of one recipe for the dashboard.
type RecipePrice struct {
	RecipeID       uint    `json:"recipe_id"`
	Name           string  `json:"name"`
	SuggestedPrice float64 `json:"suggested_price"`
}

// Stats summarises an owner's workspace.
type Stats struct {
	Ingredients      int           `json:"ingredients"`
	Recipes          int           `json:"recipes"`
	Sheets           int           `json:"sheets"`
	AverageTotalCost float64       `json:"average_total_cost"`
	Featured         []RecipePrice `json:"featured"`
}

// FeaturedLimit caps the number of recipes highlighted on the dashboard.
const FeaturedLimit = 5

// LoadStats counts the owner's records and prices every recipe live.
func LoadStats(ctx context.Context, db *gorm.DB, ownerID uint) (Stats, error) {
	ingredients, err := ListIngredients(ctx, db, ownerID, "")
	if err != nil {
		return Stats{}, err
	}
	recipes, err := ListRecipes(ctx, db, ownerID, "")
	if err != nil {
		return Stats{}, err
	}
	return Summarize(ingredients, recipes), nil
}

// Summarize prices recipes against ingredients and aggregates the results.
// Every configured size counts as a sheet, including sizes without ingredient
// lines. Featured recipes are the oldest ones. The cached costs on recipes are refreshed in place.
func Summarize(ingredients []models.Ingredient, recipes []models.Recipe) Stats {
	catalog := models.PriceCatalog(ingredients)

	order := make([]int, len(recipes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return recipes[order[a]].ID < recipes[order[b]].ID })

	stats := Stats{Ingredients: len(ingredients), Recipes: len(recipes), Featured: []RecipePrice{}}
	var total float64
	for _, i := range order {
		result := recipes[i].Recompute(catalog)
		for _, sheet := range recipes[i].Sizes {
			stats.Sheets++
			total += sheet.TotalCost
		}
		if len(stats.Featured) < FeaturedLimit {
			large, _ := result.For(costing.SizeLarge)
			stats.Featured = append(stats.Featured, RecipePrice{
				RecipeID:       recipes[i].ID,
				Name:           recipes[i].Name,
				SuggestedPrice: large.SuggestedPrice,
			})
		}
	}
	if stats.Sheets > 0 {
		stats.AverageTotalCost = total / float64(stats.Sheets)
	}
	return stats
}

// ResolveOwner returns the user with the given email, or the oldest user when
// email is blank.
func ResolveOwner(ctx context.Context, db *gorm.DB, email string) (*models.User, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	var user models.User
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		if err := db.WithContext(ctx).Where("lower(email) = ?", email).First(&user).Error; err != nil {
			return nil, fmt.Errorf("find owner by email %q: %w", email, err)
		}
		return &user, nil
	}
	if err := db.WithContext(ctx).Order("id asc").First(&user).Error; err != nil {
		return nil, fmt.Errorf("find default owner: %w", err)
	}
	return &user, nil
}
