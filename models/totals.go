package models

import "github.com/shopspring/decimal"

// ItemAmount computes a line item's amount as quantity * unit price.
func ItemAmount(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// CalculateTotal sums the amounts of all line items. An empty item list
// yields zero. Every write that touches an invoice's items must go through
// this so the stored total stays equal to the sum of its items.
func CalculateTotal(items []InvoiceItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}
