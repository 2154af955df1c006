package vending_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/vending-machine/internal/vending"
)

// Drives a machine through a long random sequence of operations and checks the
// balance, stock and history invariants after every step.
func TestMachine_RandomOperationSequence(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	m := newMachine(t)

	codes := []string{"A1", "B2", "C3", "Z9"}
	amounts := []string{"-1", "0", "0.25", "0.5", "1", "2"}

	purchases := 0
	for step := 0; step < 500; step++ {
		before := m.Balance()

		switch rng.Intn(3) {
		case 0:
			amount := d(amounts[rng.Intn(len(amounts))])
			after := m.Insert(amount)
			if amount.IsNegative() {
				assert.True(t, after.Equal(before), "step %d", step)
			} else {
				assert.True(t, after.Equal(before.Add(amount)), "step %d", step)
			}
		case 1:
			code := codes[rng.Intn(len(codes))]
			result, err := m.SelectProduct(ctx, code)
			require.NoError(t, err)

			switch result {
			case vending.MsgInvalidProduct, vending.MsgInsufficientFunds, vending.MsgOutOfStock:
				assert.True(t, m.Balance().Equal(before), "step %d", step)
			default:
				purchases++
				history, err := m.History(ctx)
				require.NoError(t, err)
				require.Len(t, history, purchases)

				last := history[len(history)-1]
				assert.True(t, last.AmountTendered.Equal(before), "step %d", step)
				assert.True(t, last.Change.Equal(before.Sub(last.Price)), "step %d", step)
				assert.True(t, m.Balance().Equal(last.Change), "step %d", step)
			}
		case 2:
			m.Cancel(ctx)
			assert.True(t, m.Balance().IsZero(), "step %d", step)
		}

		assert.False(t, m.Balance().LessThan(decimal.Zero), "step %d", step)
		for _, p := range m.Products() {
			assert.GreaterOrEqual(t, p.Stock, 0, "step %d", step)
		}
	}

	sold := 0
	for _, p := range m.Products() {
		sold += 3 - p.Stock
	}
	assert.Equal(t, purchases, sold)
}
