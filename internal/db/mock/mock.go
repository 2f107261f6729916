package mock

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pizzacost/internal/costing"
	"pizzacost/internal/db"
	applog "pizzacost/internal/log"
	"pizzacost/internal/store"
	"pizzacost/models"
)

const (
	// DemoEmail and DemoPassword sign in to the seeded workspace.
	DemoEmail    = "demo@pizzacost.app"
	DemoPassword = "forno1234"
)

// New returns an in-memory sqlite database seeded with a representative pizzeria.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := gorm.Open(sqlite.Open("file:pizzacost-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	var users int64
	if err := database.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		return nil, err
	}
	if users == 0 {
		if err := seed(ctx, database); err != nil {
			return nil, err
		}
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

type seedIngredient struct {
	name     string
	price    float64
	quantity float64
	unit     costing.Unit
}

var seedIngredients = []seedIngredient{
	{"Farinha de trigo", 25.00, 5, costing.UnitKilogram},
	{"Mussarela", 42.90, 1, costing.UnitKilogram},
	{"Molho de tomate", 18.00, 2, costing.UnitLiter},
	{"Calabresa", 32.00, 1, costing.UnitKilogram},
	{"Azeite de oliva", 38.00, 500, costing.UnitMilliliter},
	{"Orégano", 6.00, 100, costing.UnitGram},
	{"Manjericão", 4.50, 50, costing.UnitGram},
	{"Ovo", 15.00, 12, costing.UnitItem},
}

type seedLine struct {
	ingredient string
	quantity   float64
	unit       costing.Unit
}

// seedScale shrinks or grows the large sheet into the other sizes.
var seedScale = map[costing.Size]float64{
	costing.SizeSmall:      0.4,
	costing.SizeMedium:     0.7,
	costing.SizeLarge:      1,
	costing.SizeFamily:     1.4,
	costing.SizeExtraLarge: 1.2,
}

var seedRecipes = []struct {
	name  string
	lines []seedLine
}{
	{"Margherita", []seedLine{
		{"Farinha de trigo", 300, costing.UnitGram},
		{"Molho de tomate", 120, costing.UnitMilliliter},
		{"Mussarela", 250, costing.UnitGram},
		{"Manjericão", 5, costing.UnitGram},
		{"Azeite de oliva", 10, costing.UnitMilliliter},
	}},
	{"Calabresa", []seedLine{
		{"Farinha de trigo", 300, costing.UnitGram},
		{"Molho de tomate", 120, costing.UnitMilliliter},
		{"Mussarela", 200, costing.UnitGram},
		{"Calabresa", 180, costing.UnitGram},
		{"Orégano", 2, costing.UnitGram},
	}},
	{"Portuguesa", []seedLine{
		{"Farinha de trigo", 300, costing.UnitGram},
		{"Molho de tomate", 120, costing.UnitMilliliter},
		{"Mussarela", 220, costing.UnitGram},
		{"Ovo", 2, costing.UnitItem},
		{"Orégano", 2, costing.UnitGram},
	}},
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:         "Forno Demo",
		Email:        DemoEmail,
		PasswordHash: string(password),
	}
	if err := database.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}

	ids := make(map[string]uint, len(seedIngredients))
	for _, item := range seedIngredients {
		ingredient, _, err := store.UpsertIngredient(ctx, database, user.ID, models.Ingredient{
			Name:             item.name,
			PurchasePrice:    item.price,
			PurchaseQuantity: item.quantity,
			PurchaseUnit:     item.unit.String(),
		})
		if err != nil {
			return err
		}
		ids[item.name] = ingredient.ID
	}

	for _, entry := range seedRecipes {
		recipe := models.NewRecipe(user.ID, entry.name)
		for i := range recipe.Sizes {
			scale := seedScale[costing.Size(recipe.Sizes[i].Size)]
			for _, line := range entry.lines {
				recipe.Sizes[i].Ingredients = append(recipe.Sizes[i].Ingredients, models.RecipeSizeIngredient{
					IngredientID: ids[line.ingredient],
					Quantity:     line.quantity * scale,
					Unit:         line.unit.String(),
				})
			}
		}
		if _, err := store.SaveRecipe(ctx, database, &recipe); err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded",
		"ingredients", len(seedIngredients),
		"recipes", len(seedRecipes),
	)
	return nil
}
