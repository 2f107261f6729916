package export

import (
	"bytes"
	"math"
	"testing"

	"github.com/xuri/excelize/v2"

	"pizzacost/internal/costing"
	"pizzacost/models"
)

func TestLinesCoverEveryRecipeAndSize(t *testing.T) {
	t.Parallel()

	margherita := models.NewRecipe(1, "Margherita")
	margherita.SizeFor(costing.SizeLarge).Ingredients = []models.RecipeSizeIngredient{
		{IngredientID: 1, Quantity: 300, Unit: "g"},
	}
	calabresa := models.NewRecipe(1, "Calabresa")

	lines := Lines([]models.Recipe{margherita, calabresa}, costing.PriceCatalog{1: 0.005})
	if len(lines) != 2*len(costing.Sizes()) {
		t.Fatalf("expected %d lines, got %d", 2*len(costing.Sizes()), len(lines))
	}
	if lines[0].Recipe != "Margherita" || lines[0].Cost.Size != costing.SizeSmall {
		t.Fatalf("expected recipe then size order, got %+v", lines[0])
	}
	large := lines[2]
	if large.Cost.Size != costing.SizeLarge || math.Abs(large.Cost.TotalCost-8.7) > 1e-9 {
		t.Fatalf("unexpected large line: %+v", large)
	}
}

func TestWriteProducesReadableWorkbook(t *testing.T) {
	t.Parallel()

	recipe := models.NewRecipe(1, "Margherita")
	recipe.SizeFor(costing.SizeLarge).Ingredients = []models.RecipeSizeIngredient{
		{IngredientID: 1, Quantity: 300, Unit: "g"},
		{IngredientID: 2, Quantity: 250, Unit: "g"},
	}

	var buf bytes.Buffer
	if err := Write(&buf, []models.Recipe{recipe}, costing.PriceCatalog{1: 0.005, 2: 0.04}, "BRL"); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	workbook, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer workbook.Close()

	rows, err := workbook.GetRows(SheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 1+len(costing.Sizes()) {
		t.Fatalf("expected header plus %d rows, got %d", len(costing.Sizes()), len(rows))
	}
	if rows[0][0] != "Recipe" || rows[0][6] != "Suggested price" {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	// 1.50 + 10.00 ingredients, 2.20 packaging, 5.00 overhead
	total, err := workbook.GetCellValue(SheetName, "F4", excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("read total: %v", err)
	}
	if total != "18.7" {
		t.Fatalf("expected total 18.7, got %q", total)
	}
	size, err := workbook.GetCellValue(SheetName, "B4")
	if err != nil {
		t.Fatalf("read size: %v", err)
	}
	if size != "G" {
		t.Fatalf("expected size G on row 4, got %q", size)
	}
}

func TestAmountCellBlanksNonFiniteValues(t *testing.T) {
	t.Parallel()

	if got := amountCell(math.NaN()); got != "" {
		t.Fatalf("expected blank cell for NaN, got %v", got)
	}
	if got := amountCell(math.Inf(1)); got != "" {
		t.Fatalf("expected blank cell for +Inf, got %v", got)
	}
	if got := amountCell(2.345); got != 2.35 {
		t.Fatalf("expected 2.35, got %v", got)
	}
}
