package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jamessshhh/Expense-Odyssey/internal/expense"
)

func TestRenderChart(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		got := renderChart(map[expense.Category]int64{}, 24)

		assert.Equal(t, "Nothing to chart yet.", got)
	})

	t.Run("AllZeroTotals", func(t *testing.T) {
		got := renderChart(map[expense.Category]int64{
			expense.CategoryFood: 0,
		}, 24)

		assert.Contains(t, got, "Food")
		assert.Contains(t, got, "0.00")
		assert.NotContains(t, got, "█")
	})

	t.Run("BarsScaleToLargestTotal", func(t *testing.T) {
		got := renderChart(map[expense.Category]int64{
			expense.CategoryFood:      4000,
			expense.CategoryTransport: 1000,
		}, 24)

		lines := strings.Split(got, "\n")
		assert.Len(t, lines, 2)
		assert.Equal(t, 24, strings.Count(lines[0], "█"))
		assert.Equal(t, 6, strings.Count(lines[1], "█"))
	})

	t.Run("SmallTotalStillVisible", func(t *testing.T) {
		got := renderChart(map[expense.Category]int64{
			expense.CategoryFood:   100000,
			expense.CategoryHealth: 1,
		}, 24)

		lines := strings.Split(got, "\n")
		assert.Len(t, lines, 2)
		assert.Equal(t, 1, strings.Count(lines[1], "█"))
	})
}
