package transactions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/vending-machine/internal/format"
	interfaces "github.com/sheikh-saqib/vending-machine/internal/interfaces"
	"github.com/sheikh-saqib/vending-machine/internal/models"
)

// Log records completed purchases into an append-only TransactionStore.
type Log struct {
	store  interfaces.TransactionStore
	mu     sync.Mutex // serializes Record so history order matches commit order
	now    func() time.Time
	logger *zap.Logger
}

type Option func(*Log)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Log) {
		l.now = now
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Log) {
		l.logger = logger
	}
}

// NewLog builds a transaction log on top of store. A nil store is a programming error.
func NewLog(store interfaces.TransactionStore, opts ...Option) (*Log, error) {
	if store == nil {
		return nil, models.NewMissingDependencyError("transaction store")
	}

	l := &Log{
		store:  store,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// ComputeChange returns tendered - price. Callers must have checked tendered >= price.
func ComputeChange(price, tendered decimal.Decimal) decimal.Decimal {
	return tendered.Sub(price)
}

// Record computes the change for product against tendered and appends the purchase.
// Nothing is appended when the store fails.
func (l *Log) Record(ctx context.Context, product models.Product, tendered decimal.Decimal) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx := models.Transaction{
		ID:             uuid.NewString(),
		ProductCode:    product.Code,
		ProductName:    product.Name,
		Price:          product.Price,
		AmountTendered: tendered,
		Change:         ComputeChange(product.Price, tendered),
		CreatedAt:      l.now().UTC(),
	}

	if err := l.store.Append(ctx, tx); err != nil {
		return models.Transaction{}, fmt.Errorf("append transaction %s: %w", tx.ID, err)
	}

	l.logger.Debug("transaction recorded",
		zap.String("transaction_id", tx.ID),
		zap.String("product_code", tx.ProductCode),
		zap.String("change", tx.Change.String()),
	)
	return tx, nil
}

// History returns every recorded transaction, oldest first.
func (l *Log) History(ctx context.Context) ([]models.Transaction, error) {
	history, err := l.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return history, nil
}

// LastTransactionSummary formats the most recent transaction, or returns "" if there is none.
func (l *Log) LastTransactionSummary(ctx context.Context) (string, error) {
	history, err := l.History(ctx)
	if err != nil {
		return "", err
	}
	if len(history) == 0 {
		return "", nil
	}
	return format.TransactionDetails(history[len(history)-1]), nil
}
