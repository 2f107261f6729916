// Package export writes recipe price sheets as spreadsheets.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"pizzacost/internal/costing"
	"pizzacost/internal/money"
	"pizzacost/models"
)

// SheetName is the name of the worksheet holding the price table.
const SheetName = "Prices"

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Header lists the column titles of the price table.
var Header = []string{"Recipe", "Size", "Ingredient cost", "Packaging", "Overhead", "Total cost", "Suggested price", "Margin %"}

// Line is one recipe and size pair of the price table.
type Line struct {
	Recipe    string
	MarginPct float64
	Cost      costing.SizeCost
}

// Lines prices every recipe against catalog and flattens the result into one
// line per recipe and size, in recipe then size order.
func Lines(recipes []models.Recipe, catalog costing.Catalog) []Line {
	lines := make([]Line, 0, len(recipes)*len(costing.Sizes()))
	for i := range recipes {
		result := recipes[i].Recompute(catalog)
		for _, sheet := range result.Sizes {
			lines = append(lines, Line{
				Recipe:    recipes[i].Name,
				MarginPct: recipes[i].MarginPct,
				Cost:      sheet,
			})
		}
	}
	return lines
}

func amountCell(value float64) any {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ""
	}
	return money.Round(value).InexactFloat64()
}

// Build returns a workbook with the header row followed by lines.
func Build(lines []Line, currencyCode string) (*excelize.File, error) {
	workbook := excelize.NewFile()
	if err := workbook.SetSheetName(workbook.GetSheetName(0), SheetName); err != nil {
		workbook.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, 0, len(Header))
	for _, title := range Header {
		header = append(header, title)
	}
	if err := workbook.SetSheetRow(SheetName, "A1", &header); err != nil {
		workbook.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, line := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			workbook.Close()
			return nil, err
		}
		row := []any{
			line.Recipe,
			line.Cost.Size.String(),
			amountCell(line.Cost.IngredientCost),
			amountCell(line.Cost.Packaging),
			amountCell(line.Cost.Overhead),
			amountCell(line.Cost.TotalCost),
			amountCell(line.Cost.SuggestedPrice),
			line.MarginPct,
		}
		if err := workbook.SetSheetRow(SheetName, cell, &row); err != nil {
			workbook.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if len(lines) > 0 {
		style, err := workbook.NewStyle(&excelize.Style{NumFmt: 4})
		if err != nil {
			workbook.Close()
			return nil, fmt.Errorf("create amount style: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(7, len(lines)+1)
		if err != nil {
			workbook.Close()
			return nil, err
		}
		if err := workbook.SetCellStyle(SheetName, "C2", last, style); err != nil {
			workbook.Close()
			return nil, fmt.Errorf("apply amount style: %w", err)
		}
	}

	if err := workbook.SetColWidth(SheetName, "A", "A", 28); err != nil {
		workbook.Close()
		return nil, err
	}
	if err := workbook.SetColWidth(SheetName, "C", "H", 16); err != nil {
		workbook.Close()
		return nil, err
	}
	if currencyCode != "" {
		if err := workbook.SetDocProps(&excelize.DocProperties{
			Title:       "Price sheet",
			Description: "Amounts in " + currencyCode,
		}); err != nil {
			workbook.Close()
			return nil, err
		}
	}
	return workbook, nil
}

// Write prices recipes and streams the workbook to w.
func Write(w io.Writer, recipes []models.Recipe, catalog costing.Catalog, currencyCode string) error {
	workbook, err := Build(Lines(recipes, catalog), currencyCode)
	if err != nil {
		return err
	}
	defer workbook.Close()

	if err := workbook.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
