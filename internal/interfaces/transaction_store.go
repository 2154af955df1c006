package interfaces

import (
	"context"

	"github.com/sheikh-saqib/vending-machine/internal/models"
)

// TransactionStore keeps the append-only purchase history
type TransactionStore interface {
	Append(ctx context.Context, tx models.Transaction) error
	List(ctx context.Context) ([]models.Transaction, error)
}
