package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDays(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Whole days", func(t *testing.T) {
		assert.Equal(t, 3, Days(start, start.AddDate(0, 0, 3)))
	})

	t.Run("Partial day rounds up", func(t *testing.T) {
		assert.Equal(t, 3, Days(start, start.AddDate(0, 0, 2).Add(6*time.Hour)))
	})

	t.Run("Same instant is zero", func(t *testing.T) {
		assert.Equal(t, 0, Days(start, start))
	})

	t.Run("Reversed range is negative", func(t *testing.T) {
		assert.LessOrEqual(t, Days(start, start.AddDate(0, 0, -1)), 0)
	})
}

func TestQuote(t *testing.T) {
	t.Run("With driver", func(t *testing.T) {
		base, driver, total := Quote(500000, 200000, 3, true)
		assert.Equal(t, float64(1500000), base)
		assert.Equal(t, float64(600000), driver)
		assert.Equal(t, float64(2100000), total)
		assert.Equal(t, float64(630000), Deposit(total))
	})

	t.Run("Without driver", func(t *testing.T) {
		base, driver, total := Quote(500000, 200000, 3, false)
		assert.Equal(t, float64(1500000), base)
		assert.Equal(t, float64(0), driver)
		assert.Equal(t, float64(1500000), total)
	})

	t.Run("Driver requested but car has no driver price", func(t *testing.T) {
		_, driver, total := Quote(100, 0, 2, true)
		assert.Equal(t, float64(0), driver)
		assert.Equal(t, float64(200), total)
	})
}

func TestTotalWithFees(t *testing.T) {
	fees := Fees{Cleaning: 10, Damage: 20, Overtime: 5, Fuel: 15, Other: 50}

	t.Run("Sums all five fee fields", func(t *testing.T) {
		assert.Equal(t, float64(1100), TotalWithFees(800, 200, fees))
	})

	t.Run("Idempotent for identical fees", func(t *testing.T) {
		first := TotalWithFees(800, 200, fees)
		second := TotalWithFees(800, 200, fees)
		assert.Equal(t, first, second)
	})

	t.Run("Zero fees restore the creation total", func(t *testing.T) {
		assert.Equal(t, float64(1000), TotalWithFees(800, 200, Fees{}))
	})
}
