package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the immutable record of one completed purchase
type Transaction struct {
	ID             string          `json:"id"`
	ProductCode    string          `json:"product_code"`
	ProductName    string          `json:"product_name"`
	Price          decimal.Decimal `json:"price"`           // amount consumed from the balance
	AmountTendered decimal.Decimal `json:"amount_tendered"` // balance at the time of purchase
	Change         decimal.Decimal `json:"change"`
	CreatedAt      time.Time       `json:"created_at"`
}
