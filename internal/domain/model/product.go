package model

import "github.com/shopspring/decimal"

// Product is a read-only catalog entry referenced by order details.
type Product struct {
	ID         int64
	Title      string
	Author     string
	ISBN       string
	CategoryID int64
	ListPrice  decimal.Decimal
	Price50    decimal.Decimal
	Price100   decimal.Decimal
}

// PriceFor returns the unit price tier for the given quantity.
func (p Product) PriceFor(count int) decimal.Decimal {
	switch {
	case count <= 50:
		return p.ListPrice
	case count <= 100:
		return p.Price50
	default:
		return p.Price100
	}
}
