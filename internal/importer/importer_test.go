package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jamessshhh/Expense-Odyssey/internal/expense"
	"github.com/Jamessshhh/Expense-Odyssey/internal/importer"
)

func TestParser_Parse_CommaCSV(t *testing.T) {
	input := strings.Join([]string{
		"Date,Amount,Category,Note",
		"2024-01-01,12.50,Food,lunch",
		"2024-01-02,30.00,Transport,taxi",
	}, "\n")

	got, err := importer.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(1250), got[0].Amount)
	assert.Equal(t, expense.CategoryFood, got[0].Category)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), got[0].Date)
	assert.Equal(t, "lunch", got[0].Note)

	assert.Equal(t, int64(3000), got[1].Amount)
	assert.Equal(t, expense.CategoryTransport, got[1].Category)
}

func TestParser_Parse_SemicolonWithPreamble(t *testing.T) {
	// Bank-style export: metadata rows before the header, localized
	// decimals, negative movements, a footer that is not a record.
	input := strings.Join([]string{
		"Account;PT50 0000 0000;;",
		";;;",
		"Data;Montante;Categoria;Descrição",
		"02-01-2024;-1.234,56;Housing;rent",
		"03-01-2024;-9,99;;coffee",
		"Total;;-1.244,55;",
	}, "\n")

	got, err := importer.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(123456), got[0].Amount)
	assert.Equal(t, expense.CategoryHousing, got[0].Category)
	assert.Equal(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), got[0].Date)

	// Missing category falls back to Other; sign is dropped.
	assert.Equal(t, int64(999), got[1].Amount)
	assert.Equal(t, expense.CategoryOther, got[1].Category)
	assert.Equal(t, "coffee", got[1].Note)
}

func TestParser_Parse_SkipsBadRows(t *testing.T) {
	input := strings.Join([]string{
		"Date,Amount",
		"not-a-date,10.00",
		"2024-05-01,not-a-number",
		"2024-05-02,5.00",
		"",
	}, "\n")

	got, err := importer.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(500), got[0].Amount)
}

func TestParser_Parse_NoHeader(t *testing.T) {
	input := "just,some,cells\nwithout,a,header\n"

	_, err := importer.New().Parse(strings.NewReader(input))
	assert.Error(t, err)
}

func TestParser_Parse_USThousands(t *testing.T) {
	input := "Date,Amount,Category\n2024-03-01,\"1,234.56\",Shopping\n"

	got, err := importer.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(123456), got[0].Amount)
}
