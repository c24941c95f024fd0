package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestItemAmount(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		unitPrice string
		expected  string
	}{
		{"Whole Numbers", 2, "10", "20"},
		{"Single Unit", 1, "5", "5"},
		{"Fractional Price", 3, "19.99", "59.97"},
		{"Zero Price", 4, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price := decimal.RequireFromString(tt.unitPrice)
			amount := ItemAmount(tt.quantity, price)
			assert.True(t, amount.Equal(decimal.RequireFromString(tt.expected)),
				"got %s, want %s", amount, tt.expected)
		})
	}
}

func TestCalculateTotal(t *testing.T) {
	items := []InvoiceItem{
		{Quantity: 2, UnitPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(20)},
		{Quantity: 1, UnitPrice: decimal.NewFromInt(5), Amount: decimal.NewFromInt(5)},
	}

	total := CalculateTotal(items)
	assert.True(t, total.Equal(decimal.NewFromInt(25)), "got %s, want 25", total)
}

func TestCalculateTotalEmpty(t *testing.T) {
	total := CalculateTotal(nil)
	assert.True(t, total.IsZero())

	total = CalculateTotal([]InvoiceItem{})
	assert.True(t, total.IsZero())
}

func TestCalculateTotalMatchesItemAmounts(t *testing.T) {
	pairs := []struct {
		qty   int
		price string
	}{
		{3, "2.50"}, {7, "0.99"}, {1, "100"}, {12, "4.75"},
	}

	var items []InvoiceItem
	expected := decimal.Zero
	for _, p := range pairs {
		price := decimal.RequireFromString(p.price)
		amount := ItemAmount(p.qty, price)
		items = append(items, InvoiceItem{Quantity: p.qty, UnitPrice: price, Amount: amount})
		expected = expected.Add(price.Mul(decimal.NewFromInt(int64(p.qty))))
	}

	assert.True(t, CalculateTotal(items).Equal(expected))
}
