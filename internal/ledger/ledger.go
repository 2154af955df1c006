package ledger

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/vending-machine/internal/models"
)

// CentPlaces is the precision money is kept at
const CentPlaces = 2

// BalanceLedger holds the funds inserted into the machine and not yet spent or refunded.
// The balance is never negative; every mutation goes through Add, Deduct or Reset.
type BalanceLedger struct {
	mu      sync.RWMutex    // protects balance from concurrent access
	balance decimal.Decimal // current inserted funds, always whole cents
}

// NewBalanceLedger returns a ledger with a zero balance
func NewBalanceLedger() *BalanceLedger {
	return &BalanceLedger{
		balance: decimal.Zero, // machine starts empty
	}
}

// IsWholeCents reports whether amount has no digits below a cent.
func IsWholeCents(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(CentPlaces))
}

// validAmount rejects negative amounts and fractions of a cent
func validAmount(amount decimal.Decimal) error {
	if amount.IsNegative() || !IsWholeCents(amount) {
		return models.NewInvalidAmountError(amount)
	}
	return nil
}

// Add credits amount to the balance. Negative amounts and fractions of a cent
// are rejected and leave the balance unchanged.
func (l *BalanceLedger) Add(amount decimal.Decimal) error {
	if err := validAmount(amount); err != nil {
		return err
	}

	l.mu.Lock()         // lock the mutex to prevent concurrent writes
	defer l.mu.Unlock() // unlock automatically when function exits

	l.balance = l.balance.Add(amount)
	return nil
}

// Deduct debits amount from the balance. Deducting the exact balance leaves zero.
func (l *BalanceLedger) Deduct(amount decimal.Decimal) error {
	if err := validAmount(amount); err != nil {
		return err
	}

	l.mu.Lock()         // lock so the check and the subtraction see the same balance
	defer l.mu.Unlock() // unlock automatically when function exits

	// never let the balance go below zero
	if amount.GreaterThan(l.balance) {
		return models.NewInsufficientFundsError(amount, l.balance)
	}

	l.balance = l.balance.Sub(amount)
	return nil
}

// Reset zeroes the balance and returns what was refunded.
func (l *BalanceLedger) Reset() decimal.Decimal {
	l.mu.Lock()         // lock the mutex to prevent concurrent writes
	defer l.mu.Unlock() // unlock automatically when function exits

	refunded := l.balance    // capture before clearing
	l.balance = decimal.Zero // refund everything
	return refunded
}

// Balance returns the current balance without changing it
func (l *BalanceLedger) Balance() decimal.Decimal {
	l.mu.RLock()         // read lock, many readers allowed
	defer l.mu.RUnlock() // release the read lock on return
	return l.balance
}
