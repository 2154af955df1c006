package postgres

import (
	"context"
	"database/sql"

	interfaces "github.com/sheikh-saqib/vending-machine/internal/interfaces"
	"github.com/sheikh-saqib/vending-machine/internal/models"
)

// PostgresTransactionStore journals purchases into the transactions table.
type PostgresTransactionStore struct {
	db *sql.DB
}

func NewPostgresTransactionStore(db *sql.DB) *PostgresTransactionStore {
	return &PostgresTransactionStore{
		db: db,
	}
}

func (p *PostgresTransactionStore) Append(ctx context.Context, tx models.Transaction) error {
	const query = `INSERT INTO transactions (id, product_code, product_name, price, amount_tendered, change, created_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err := p.db.ExecContext(ctx, query,
		tx.ID,
		tx.ProductCode,
		tx.ProductName,
		tx.Price,
		tx.AmountTendered,
		tx.Change,
		tx.CreatedAt,
	)
	return err
}

func (p *PostgresTransactionStore) List(ctx context.Context) ([]models.Transaction, error) {
	const query = `SELECT id, product_code, product_name, price, amount_tendered, change, created_at
	FROM transactions ORDER BY seq`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		var tx models.Transaction
		err := rows.Scan(
			&tx.ID,
			&tx.ProductCode,
			&tx.ProductName,
			&tx.Price,
			&tx.AmountTendered,
			&tx.Change,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}

var _ interfaces.TransactionStore = (*PostgresTransactionStore)(nil)
