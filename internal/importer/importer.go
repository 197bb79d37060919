// Package importer parses expense CSV files into create params. It accepts
// the loose CSVs that spreadsheet apps and banking sites produce: comma or
// semicolon delimited, optional preamble rows before the header, localized
// decimal separators, and non-UTF-8 charsets (handled by internal/encoding).
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	enc "github.com/Jamessshhh/Expense-Odyssey/internal/encoding"
	"github.com/Jamessshhh/Expense-Odyssey/internal/expense"
)

// Column aliases matched case-insensitively against header cells.
var (
	dateCols     = []string{"date", "data", "day"}
	amountCols   = []string{"amount", "value", "montante", "importo", "price"}
	categoryCols = []string{"category", "categoria"}
	noteCols     = []string{"note", "notes", "description", "descricao", "descrição", "memo"}
)

var dateLayouts = []string{
	time.DateOnly,
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"02.01.2006",
}

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// columns holds the resolved header indices; -1 means the column is absent.
type columns struct {
	date     int
	amount   int
	category int
	note     int
}

// Parse reads the CSV and returns one CreateParams per data row. Rows whose
// date or amount cell does not parse are skipped (footers, running totals
// and blank lines are common in real exports). It is an error only when no
// recognizable header row exists at all.
func (p *Parser) Parse(r io.Reader) ([]expense.CreateParams, error) {
	utf8r, err := enc.ToUTF8(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	for _, comma := range []rune{',', ';'} {
		rows, err := readAll(raw, comma)
		if err != nil {
			continue
		}

		cols, headerIdx, found := detectHeader(rows)
		if !found {
			continue
		}

		return parseRows(cols, rows[headerIdx+1:]), nil
	}

	return nil, fmt.Errorf("no header row with date and amount columns found")
}

func readAll(raw []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// detectHeader scans for the first row naming at least a date and an amount
// column.
func detectHeader(rows [][]string) (columns, int, bool) {
	for rowIdx, row := range rows {
		cols := columns{date: -1, amount: -1, category: -1, note: -1}

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))

			switch {
			case cols.date == -1 && matches(name, dateCols):
				cols.date = i
			case cols.amount == -1 && matches(name, amountCols):
				cols.amount = i
			case cols.category == -1 && matches(name, categoryCols):
				cols.category = i
			case cols.note == -1 && matches(name, noteCols):
				cols.note = i
			}
		}

		if cols.date != -1 && cols.amount != -1 {
			return cols, rowIdx, true
		}
	}

	return columns{}, 0, false
}

func matches(name string, aliases []string) bool {
	for _, a := range aliases {
		if name == a {
			return true
		}
	}

	return false
}

func parseRows(cols columns, rows [][]string) []expense.CreateParams {
	var params []expense.CreateParams

	for _, row := range rows {
		date, ok := parseDate(cell(row, cols.date))
		if !ok {
			continue
		}

		amount, err := parseAmount(cell(row, cols.amount))
		if err != nil {
			continue
		}

		category := expense.Category(cell(row, cols.category))
		if category == expense.CategoryAll {
			category = expense.CategoryOther
		}

		params = append(params, expense.CreateParams{
			Amount:   amount,
			Category: category,
			Date:     date,
			Note:     cell(row, cols.note),
		})
	}

	return params
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseAmount handles plain decimals plus the "1.234,56" and "1,234.56"
// localized forms. Exports often write expenses as negative movements, so
// the sign is dropped and the absolute value imported.
func parseAmount(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.Trim(clean, "€$£ ")

	dot := strings.LastIndex(clean, ".")
	comma := strings.LastIndex(clean, ",")

	switch {
	case dot != -1 && comma != -1 && comma > dot:
		// 1.234,56 — dots are thousands separators.
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case dot != -1 && comma != -1:
		// 1,234.56
		clean = strings.ReplaceAll(clean, ",", "")
	case comma != -1:
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	val, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, err
	}

	return int64(math.Round(math.Abs(val) * 100)), nil
}
