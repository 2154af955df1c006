package vending

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/vending-machine/internal/catalog"
	"github.com/sheikh-saqib/vending-machine/internal/format"
	interfaces "github.com/sheikh-saqib/vending-machine/internal/interfaces"
	"github.com/sheikh-saqib/vending-machine/internal/ledger"
	"github.com/sheikh-saqib/vending-machine/internal/models"
	"github.com/sheikh-saqib/vending-machine/internal/models/events"
	"github.com/sheikh-saqib/vending-machine/internal/storage/memory"
	"github.com/sheikh-saqib/vending-machine/internal/transactions"
)

// Result messages for rejected selections.
const (
	MsgInvalidProduct    = "Invalid product"
	MsgInsufficientFunds = "Insufficient funds"
	MsgOutOfStock        = "Product out of stock"
)

// Machine coordinates the balance ledger, the product catalog and the transaction log.
//
// Insert, SelectProduct and Cancel run under an exclusive lock for their whole duration,
// so two selections can never both pass validation against the same unit of stock or
// the same balance. Read accessors share a read lock.
type Machine struct {
	mu        sync.RWMutex
	balance   *ledger.BalanceLedger
	catalog   *catalog.Catalog
	log       *transactions.Log
	publisher interfaces.EventPublisher
	logger    *zap.Logger
}

type Option func(*Machine)

func WithLogger(logger *zap.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithPublisher sends ProductDispensed and BalanceRefunded events after each committed operation.
// Events are published after the machine lock is released, so concurrent operations may
// publish in a different order than they committed. OccurredAt is stamped while the lock
// is held; consumers that need commit order should sort on it.
func WithPublisher(publisher interfaces.EventPublisher) Option {
	return func(m *Machine) {
		m.publisher = publisher
	}
}

func NewMachine(balance *ledger.BalanceLedger, products *catalog.Catalog, log *transactions.Log, opts ...Option) (*Machine, error) {
	if balance == nil {
		return nil, models.NewMissingDependencyError("balance ledger")
	}
	if products == nil {
		return nil, models.NewMissingDependencyError("product catalog")
	}
	if log == nil {
		return nil, models.NewMissingDependencyError("transaction log")
	}

	m := &Machine{
		balance: balance,
		catalog: products,
		log:     log,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// NewDefault builds a machine with a zero balance, the default catalog and an in-memory history.
func NewDefault(opts ...Option) (*Machine, error) {
	products, err := catalog.New(catalog.Default()...)
	if err != nil {
		return nil, err
	}

	log, err := transactions.NewLog(memory.NewMemoryTransactionStore())
	if err != nil {
		return nil, err
	}

	return NewMachine(ledger.NewBalanceLedger(), products, log, opts...)
}

// Insert adds amount to the balance and returns the resulting balance.
// Negative amounts are ignored.
func (m *Machine) Insert(amount decimal.Decimal) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.balance.Add(amount); err != nil {
		m.logger.Warn("insert rejected", zap.String("amount", amount.String()), zap.Error(err))
	}
	return m.balance.Balance()
}

// SelectProduct tries to buy one unit of code with the current balance.
//
// Rejections (unknown code, insufficient funds, out of stock) come back as the
// message with a nil error and change nothing. An error is returned only when the
// purchase could not be recorded; stock and balance are then left as they were.
func (m *Machine) SelectProduct(ctx context.Context, code string) (string, error) {
	msg, tx, err := m.selectProduct(ctx, code)
	if err != nil || tx == nil {
		return msg, err
	}

	m.publish(ctx, events.TopicProductDispensed, events.ProductDispensed{
		TransactionID:  tx.ID,
		ProductCode:    tx.ProductCode,
		ProductName:    tx.ProductName,
		Price:          tx.Price,
		AmountTendered: tx.AmountTendered,
		Change:         tx.Change,
		OccurredAt:     tx.CreatedAt,
	})
	return msg, nil
}

func (m *Machine) selectProduct(ctx context.Context, code string) (string, *models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	logger := m.logger.With(zap.String("product_code", code))

	product, ok := m.catalog.FindProduct(code)
	if !ok {
		logger.Info("selection rejected", zap.String("reason", models.ErrCodeInvalidProductCode))
		return MsgInvalidProduct, nil, nil
	}

	tendered := m.balance.Balance()
	if tendered.LessThan(product.Price) {
		logger.Info("selection rejected",
			zap.String("reason", models.ErrCodeInsufficientFunds),
			zap.String("balance", tendered.String()),
			zap.String("price", product.Price.String()),
		)
		return MsgInsufficientFunds, nil, nil
	}

	if !product.InStock() {
		logger.Info("selection rejected", zap.String("reason", models.ErrCodeOutOfStock))
		return MsgOutOfStock, nil, nil
	}

	if err := m.catalog.DecrementStock(code); err != nil {
		if models.IsErrorCode(err, models.ErrCodeOutOfStock) {
			return MsgOutOfStock, nil, nil
		}
		return "", nil, fmt.Errorf("decrement stock for %s: %w", code, err)
	}

	tx, err := m.log.Record(ctx, product, tendered)
	if err != nil {
		m.compensateStock(logger, code)
		return "", nil, fmt.Errorf("record purchase of %s: %w", code, err)
	}

	// Cannot fail: tendered >= price was checked under the same lock.
	if err := m.balance.Deduct(product.Price); err != nil {
		logger.Error("balance deduction failed after recording purchase",
			zap.String("transaction_id", tx.ID),
			zap.Error(err),
		)
		return "", nil, fmt.Errorf("deduct %s for transaction %s: %w", product.Price.String(), tx.ID, err)
	}

	logger.Info("product dispensed",
		zap.String("transaction_id", tx.ID),
		zap.String("price", tx.Price.String()),
		zap.String("change", tx.Change.String()),
	)
	return format.TransactionResult(tx), &tx, nil
}

func (m *Machine) compensateStock(logger *zap.Logger, code string) {
	if err := m.catalog.RestoreStock(code); err != nil {
		logger.Error("failed to restore stock", zap.Error(err))
	}
}

// Cancel refunds the whole balance.
func (m *Machine) Cancel(ctx context.Context) string {
	m.mu.Lock()
	refunded := m.balance.Reset()
	refundedAt := time.Now().UTC()
	m.mu.Unlock()

	m.logger.Info("balance refunded", zap.String("amount", refunded.String()))

	if refunded.IsPositive() {
		m.publish(ctx, events.TopicBalanceRefunded, events.BalanceRefunded{
			Amount:     refunded,
			OccurredAt: refundedAt,
		})
	}
	return format.Refund(refunded)
}

func (m *Machine) Balance() decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balance.Balance()
}

// Products returns the catalog with current stock, in display order.
func (m *Machine) Products() []models.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.catalog.AllProducts()
}

func (m *Machine) DisplayProducts() string {
	return format.ProductList(m.Products())
}

func (m *Machine) History(ctx context.Context) ([]models.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.log.History(ctx)
}

func (m *Machine) LastTransactionSummary(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.log.LastTransactionSummary(ctx)
}

// publish runs outside the machine lock. A failed publish never undoes a committed operation.
func (m *Machine) publish(ctx context.Context, topic string, event any) {
	if m.publisher == nil {
		return
	}
	if err := m.publisher.Publish(ctx, topic, event); err != nil {
		if errors.Is(err, context.Canceled) {
			m.logger.Debug("event publish cancelled", zap.String("topic", topic))
			return
		}
		m.logger.Error("failed to publish event", zap.String("topic", topic), zap.Error(err))
	}
}
