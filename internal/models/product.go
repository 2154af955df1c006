package models

import "github.com/shopspring/decimal"

// Product is a single catalog slot of the machine
type Product struct {
	Code  string          `json:"code" validate:"required"`
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock" validate:"gte=0"`
}

// InStock reports whether at least one unit can be dispensed
func (p Product) InStock() bool {
	return p.Stock > 0
}
