// Package format renders machine state and purchase outcomes as text.
//
// Amounts are always printed with one or two fractional digits: 0.5, 2.0, 2.25.
package format

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/vending-machine/internal/models"
)

const productListHeader = "Available Products:"

// Money renders an amount rounded to cents, keeping at least one fractional digit.
func Money(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	return strings.TrimSuffix(s, "0")
}

// TransactionDetails is the one-line summary shared by the transaction log and dispense messages.
func TransactionDetails(tx models.Transaction) string {
	return fmt.Sprintf("%s - Paid: %s - Change: %s",
		tx.ProductName, Money(tx.AmountTendered), Money(tx.Change))
}

func Dispensed(productName string, change decimal.Decimal) string {
	return fmt.Sprintf("Dispensed %s with change %s", productName, Money(change))
}

// TransactionResult is the full message returned for a successful selection.
func TransactionResult(tx models.Transaction) string {
	return Dispensed(tx.ProductName, tx.Change) + "\nTransaction details: " + TransactionDetails(tx)
}

func Refund(amount decimal.Decimal) string {
	return "Returned " + Money(amount)
}

// ProductList renders one "CODE - Name - price" line per product in the given order.
func ProductList(products []models.Product) string {
	var b strings.Builder
	b.WriteString(productListHeader)
	for _, p := range products {
		fmt.Fprintf(&b, "\n%s - %s - %s", p.Code, p.Name, Money(p.Price))
		if !p.InStock() {
			b.WriteString(" (sold out)")
		}
	}
	return b.String()
}
