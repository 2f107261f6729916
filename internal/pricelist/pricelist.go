// Package pricelist reads supplier price lists and applies them to an owner's
// ingredients. CSV, XLSX and PDF inputs are accepted; each data row carries a
// name, a purchase price, a purchase quantity and a unit.
package pricelist

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pizzacost/internal/costing"
	applog "pizzacost/internal/log"
	"pizzacost/internal/store"
	"pizzacost/models"
)

// Format identifies a supported price-list encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

var (
	// ErrUnsupportedFormat is returned for files that are not CSV, XLSX or PDF.
	ErrUnsupportedFormat = errors.New("unsupported price list format")
	// ErrEmpty is returned when a file carries no data rows.
	ErrEmpty = errors.New("price list is empty")
	// ErrInvalidNumber is returned for price or quantity cells that are not numbers.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrMissingField is returned for rows that lack one of the four fields.
	ErrMissingField = errors.New("missing field")
)

// Row is one parsed price-list entry. Line is 1-based in the source file.
type Row struct {
	Line     int
	Name     string
	Price    float64
	Quantity float64
	Unit     costing.Unit
}

// RowError reports a source line that could not be used.
type RowError struct {
	Line int    `json:"line"`
	Text string `json:"text"`
	Err  error  `json:"-"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Result is the outcome of parsing a file.
type Result struct {
	Rows   []Row
	Errors []RowError
}

// DetectFormat picks a format from the file name, falling back to the MIME type.
func DetectFormat(name, mime string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".pdf":
		return FormatPDF, nil
	}
	lower := strings.ToLower(mime)
	switch {
	case strings.Contains(lower, "pdf"):
		return FormatPDF, nil
	case strings.Contains(lower, "spreadsheetml"):
		return FormatXLSX, nil
	case strings.Contains(lower, "csv"), strings.HasPrefix(lower, "text/"):
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// Parse decodes data according to format.
func Parse(format Format, data []byte) (Result, error) {
	var (
		result Result
		err    error
	)
	switch format {
	case FormatCSV:
		result, err = ParseCSV(data)
	case FormatXLSX:
		result, err = ParseXLSX(data)
	case FormatPDF:
		result, err = ParsePDF(data)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return Result{}, err
	}
	if len(result.Rows) == 0 && len(result.Errors) == 0 {
		return Result{}, ErrEmpty
	}
	return result, nil
}

// numberPattern is what remains of a valid amount once currency symbols and
// unit suffixes are trimmed: an optional sign, then digits and separators.
var numberPattern = regexp.MustCompile(`^-?[.,]?\d[\d.,]*$`)

// ParseNumber reads a price or quantity written with either decimal
// separator. A leading currency symbol, a trailing unit and surrounding
// whitespace are ignored; anything else mixed into the digits is an error.
func ParseNumber(value string) (float64, error) {
	cleaned := strings.TrimLeftFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsLetter(r) || unicode.IsSymbol(r)
	})
	cleaned = strings.TrimRightFunc(cleaned, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsLetter(r) || unicode.IsSymbol(r)
	})
	if !numberPattern.MatchString(cleaned) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, value)
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(cleaned, ",") > 1 {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		}
	case strings.Count(cleaned, ".") > 1:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	number, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, value)
	}
	return number.InexactFloat64(), nil
}

// buildRow validates the four raw fields of one entry.
func buildRow(line int, name, price, quantity, unit string) (Row, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Row{}, fmt.Errorf("%w: name", ErrMissingField)
	}
	if strings.TrimSpace(price) == "" {
		return Row{}, fmt.Errorf("%w: price", ErrMissingField)
	}
	if strings.TrimSpace(quantity) == "" {
		return Row{}, fmt.Errorf("%w: quantity", ErrMissingField)
	}
	parsedPrice, err := ParseNumber(price)
	if err != nil {
		return Row{}, fmt.Errorf("price: %w", err)
	}
	parsedQuantity, err := ParseNumber(quantity)
	if err != nil {
		return Row{}, fmt.Errorf("quantity: %w", err)
	}
	parsedUnit, err := costing.ParseUnit(unit)
	if err != nil {
		return Row{}, fmt.Errorf("unit %q: %w", strings.TrimSpace(unit), err)
	}
	if _, err := costing.Normalize(parsedPrice, parsedQuantity, parsedUnit); err != nil {
		return Row{}, err
	}
	return Row{
		Line:     line,
		Name:     name,
		Price:    parsedPrice,
		Quantity: parsedQuantity,
		Unit:     parsedUnit,
	}, nil
}

// Summary reports what Apply changed.
type Summary struct {
	Created int        `json:"created"`
	Updated int        `json:"updated"`
	Skipped []RowError `json:"skipped"`
}

// Total is the number of ingredients written.
func (s Summary) Total() int {
	return s.Created + s.Updated
}

// Apply upserts every row into the owner's ingredients by case-insensitive
// name. Rows that fail to save are reported in the summary and do not stop
// the import.
func Apply(ctx context.Context, db *gorm.DB, ownerID uint, result Result) (Summary, error) {
	if db == nil {
		return Summary{}, store.ErrNilDatabase
	}

	summary := Summary{Skipped: append([]RowError(nil), result.Errors...)}
	for _, row := range result.Rows {
		_, created, err := store.UpsertIngredient(ctx, db, ownerID, models.Ingredient{
			Name:             row.Name,
			PurchasePrice:    row.Price,
			PurchaseQuantity: row.Quantity,
			PurchaseUnit:     row.Unit.String(),
		})
		if err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			summary.Skipped = append(summary.Skipped, RowError{Line: row.Line, Text: row.Name, Err: err})
			continue
		}
		if created {
			summary.Created++
		} else {
			summary.Updated++
		}
	}

	applog.Info(ctx, "price list applied",
		"owner_id", ownerID,
		"created", summary.Created,
		"updated", summary.Updated,
		"skipped", len(summary.Skipped),
	)
	return summary, nil
}
