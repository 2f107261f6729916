package pricelist

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// priceLinePattern matches "name [sep] [R$] price [sep] quantity unit".
var priceLinePattern = regexp.MustCompile(`^(.*?\S)\s*[;|\t]?\s+(?:R\$\s*)?(\d[\d.,]*)\s*[;|\t]?\s+(\d[\d.,]*)\s*([A-Za-zÀ-ÿ]+)\.?$`)

// ExtractPDFText returns the plain text of every page, one page after another.
func ExtractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read page %d: %w", i, err)
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// ParsePDF extracts the text of a PDF price list and parses it line by line.
func ParsePDF(data []byte) (Result, error) {
	text, err := ExtractPDFText(data)
	if err != nil {
		return Result{}, err
	}
	return ParseText(text), nil
}

// ParseText reads free-form price lines such as
// "Mussarela R$ 42,90 1 kg". Lines that do not look like a price entry,
// such as titles and headers, are ignored.
func ParseText(text string) Result {
	var result Result
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		match := priceLinePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		row, err := buildRow(i+1, match[1], match[2], match[3], match[4])
		if err != nil {
			result.Errors = append(result.Errors, RowError{Line: i + 1, Text: line, Err: err})
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	return result
}
