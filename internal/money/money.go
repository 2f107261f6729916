// Package money rounds and formats currency amounts for display. Cost values
// stay unrounded float64 everywhere else; rounding happens only here.
package money

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// DefaultCurrency is the ISO 4217 code used when none is configured.
	DefaultCurrency = "BRL"
	// DefaultLocale is the BCP 47 tag used when none is configured.
	DefaultLocale = "pt-BR"

	displayPlaces = 2
	unitPlaces    = 4
	missingValue  = "—"
)

// Round returns amount rounded half away from zero to two decimal places.
func Round(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(displayPlaces)
}

// Fixed renders amount with exactly two decimals and a dot separator, for
// machine-readable output such as CSV or spreadsheet cells.
func Fixed(amount float64) string {
	if !finite(amount) {
		return ""
	}
	return Round(amount).StringFixed(displayPlaces)
}

// Formatter renders amounts in a currency using locale conventions.
type Formatter struct {
	code    string
	symbol  string
	printer *message.Printer
}

// NewFormatter builds a Formatter for an ISO currency code and a locale tag.
func NewFormatter(code, locale string) (Formatter, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = DefaultLocale
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return Formatter{}, fmt.Errorf("parse currency %q: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return Formatter{}, fmt.Errorf("parse locale %q: %w", locale, err)
	}

	printer := message.NewPrinter(tag)
	return Formatter{
		code:    unit.String(),
		symbol:  strings.TrimSpace(printer.Sprint(currency.Symbol(unit))),
		printer: printer,
	}, nil
}

// MustFormatter is NewFormatter that panics on invalid input.
func MustFormatter(code, locale string) Formatter {
	f, err := NewFormatter(code, locale)
	if err != nil {
		panic(err)
	}
	return f
}

// Default returns the BRL / pt-BR formatter.
func Default() Formatter {
	return MustFormatter(DefaultCurrency, DefaultLocale)
}

// Code returns the ISO currency code.
func (f Formatter) Code() string {
	return f.code
}

// Symbol returns the currency symbol for the formatter's locale.
func (f Formatter) Symbol() string {
	return f.symbol
}

// Format renders amount with the currency symbol and two localized decimals.
// Non-finite amounts render as a dash.
func (f Formatter) Format(amount float64) string {
	if !finite(amount) {
		return missingValue
	}
	if f.printer == nil {
		return Fixed(amount)
	}
	value, _ := Round(amount).Float64()
	return fmt.Sprintf("%s %s", f.symbol, f.printer.Sprintf("%.2f", value))
}

// Number renders amount with two localized decimals and no symbol.
func (f Formatter) Number(amount float64) string {
	if !finite(amount) {
		return missingValue
	}
	if f.printer == nil {
		return Fixed(amount)
	}
	value, _ := Round(amount).Float64()
	return f.printer.Sprintf("%.2f", value)
}

// UnitPrice renders a base-unit price with the currency symbol and four
// decimals, since prices per gram or milliliter are usually fractions of a cent.
func (f Formatter) UnitPrice(amount float64) string {
	if !finite(amount) {
		return missingValue
	}
	value, _ := decimal.NewFromFloat(amount).Round(unitPlaces).Float64()
	if f.printer == nil {
		return decimal.NewFromFloat(value).StringFixed(unitPlaces)
	}
	return fmt.Sprintf("%s %s", f.symbol, f.printer.Sprintf("%.4f", value))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
