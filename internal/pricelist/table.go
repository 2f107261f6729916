package pricelist

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type field int

const (
	fieldName field = iota
	fieldPrice
	fieldQuantity
	fieldUnit
	fieldCount
)

// headerScanRows bounds how far down a sheet the header row is searched for.
const headerScanRows = 10

var fieldKeywords = [fieldCount][]string{
	fieldName:     {"name", "nome", "ingrediente", "ingredient", "produto", "product", "item", "descri"},
	fieldPrice:    {"price", "preço", "preco", "valor", "custo", "cost"},
	fieldQuantity: {"quantity", "quantidade", "qtd", "qtde", "qty", "peso", "volume"},
	fieldUnit:     {"unit", "unidade", "medida", "unid"},
}

func classifyHeader(cell string) (field, bool) {
	cell = strings.ToLower(strings.TrimSpace(strings.Trim(cell, "\"'\t")))
	if cell == "" {
		return 0, false
	}
	if cell == "un" || cell == "u.m." || cell == "um" {
		return fieldUnit, true
	}
	for _, f := range []field{fieldPrice, fieldQuantity, fieldUnit, fieldName} {
		for _, keyword := range fieldKeywords[f] {
			if strings.Contains(cell, keyword) {
				return f, true
			}
		}
	}
	return 0, false
}

// columnMap returns the column index of every field when record is a header.
func columnMap(record []string) ([fieldCount]int, int) {
	columns := [fieldCount]int{-1, -1, -1, -1}
	matches := 0
	for i, cell := range record {
		f, ok := classifyHeader(cell)
		if !ok || columns[f] >= 0 {
			continue
		}
		columns[f] = i
		matches++
	}
	return columns, matches
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cell(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return record[index]
}

// parseTable turns spreadsheet-like records into rows. lines holds the
// 1-based source line of each record. Without a recognisable header the
// columns are read positionally as name, price, quantity, unit.
func parseTable(records [][]string, lines []int) Result {
	columns := [fieldCount]int{0, 1, 2, 3}
	start := 0

	best := 0
	for i := 0; i < len(records) && i < headerScanRows; i++ {
		candidate, matches := columnMap(records[i])
		if matches > best && candidate[fieldName] >= 0 && candidate[fieldPrice] >= 0 {
			best = matches
			columns = candidate
			start = i + 1
		}
	}
	if best > 0 {
		// A header without quantity or unit columns falls back to the
		// positions that follow the price column.
		if columns[fieldQuantity] < 0 {
			columns[fieldQuantity] = columns[fieldPrice] + 1
		}
		if columns[fieldUnit] < 0 {
			columns[fieldUnit] = columns[fieldQuantity] + 1
		}
	}

	var result Result
	for i := start; i < len(records); i++ {
		record := records[i]
		if blank(record) {
			continue
		}
		row, err := buildRow(lines[i],
			cell(record, columns[fieldName]),
			cell(record, columns[fieldPrice]),
			cell(record, columns[fieldQuantity]),
			cell(record, columns[fieldUnit]),
		)
		if err != nil {
			result.Errors = append(result.Errors, RowError{
				Line: lines[i],
				Text: strings.Join(record, ", "),
				Err:  err,
			})
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	return result
}

// decodeText converts legacy single-byte exports to UTF-8 and drops a BOM.
func decodeText(data []byte) []byte {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return data
	}
	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return data
	}
	return decoded
}

// detectDelimiter picks the most frequent separator in the leading sample.
func detectDelimiter(data []byte) rune {
	sample := data
	if len(sample) > 1000 {
		sample = sample[:1000]
	}
	delimiter := ','
	best := bytes.Count(sample, []byte(","))
	for _, candidate := range []rune{';', '\t', '|'} {
		if count := bytes.Count(sample, []byte(string(candidate))); count > best {
			best = count
			delimiter = candidate
		}
	}
	return delimiter
}

// ParseCSV reads a delimited text price list.
func ParseCSV(data []byte) (Result, error) {
	data = decodeText(data)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var (
		records [][]string
		lines   []int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		records = append(records, record)
		lines = append(lines, line)
	}
	return parseTable(records, lines), nil
}

// ParseXLSX reads the first sheet of a workbook.
func ParseXLSX(data []byte) (Result, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return Result{}, ErrEmpty
	}
	records, err := workbook.GetRows(sheets[0])
	if err != nil {
		return Result{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	lines := make([]int, len(records))
	for i := range lines {
		lines[i] = i + 1
	}
	return parseTable(records, lines), nil
}
