package memory

import (
	"context" // request-scoped cancellation for store calls
	"sync"    // concurrency primitives like RWMutex

	interfaces "github.com/sheikh-saqib/vending-machine/internal/interfaces" // interface TransactionStore
	"github.com/sheikh-saqib/vending-machine/internal/models"                // domain models: Transaction
)

// MemoryTransactionStore is an in-memory implementation of interfaces.TransactionStore.
// Transactions are kept in insertion order and the store is safe for concurrent use.
type MemoryTransactionStore struct {
	mu           sync.RWMutex         // protects transactions from concurrent access
	transactions []models.Transaction // append-only history, oldest first
}

// NewMemoryTransactionStore creates an empty store
func NewMemoryTransactionStore() *MemoryTransactionStore {
	return &MemoryTransactionStore{
		transactions: make([]models.Transaction, 0), // start with an empty history
	}
}

// Append adds a transaction to the end of the history.
// Implements the TransactionStore interface.
func (m *MemoryTransactionStore) Append(ctx context.Context, tx models.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err // caller gave up, don't record anything
	}

	m.mu.Lock()         // lock the mutex to prevent concurrent writes
	defer m.mu.Unlock() // unlock automatically when function exits

	m.transactions = append(m.transactions, tx) // append keeps chronological order
	return nil                                  // always succeeds in memory
}

// List returns a copy of the history so callers can't modify internal state.
func (m *MemoryTransactionStore) List(ctx context.Context) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()         // read lock, concurrent readers are fine
	defer m.mu.RUnlock() // release the read lock on return

	copied := make([]models.Transaction, len(m.transactions))
	copy(copied, m.transactions) // copy so external code can't modify internal state
	return copied, nil
}

// Compile-time check: ensure MemoryTransactionStore implements TransactionStore interface
var _ interfaces.TransactionStore = (*MemoryTransactionStore)(nil)
