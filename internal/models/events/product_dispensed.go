package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TopicProductDispensed = "product_dispensed"
	TopicBalanceRefunded  = "balance_refunded"
)

type ProductDispensed struct {
	TransactionID  string          `json:"transaction_id"`
	ProductCode    string          `json:"product_code"`
	ProductName    string          `json:"product_name"`
	Price          decimal.Decimal `json:"price"`
	AmountTendered decimal.Decimal `json:"amount_tendered"`
	Change         decimal.Decimal `json:"change"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

type BalanceRefunded struct {
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
}
