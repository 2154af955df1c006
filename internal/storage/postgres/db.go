package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/vending-machine/internal/config"
)

const schema = `CREATE TABLE IF NOT EXISTS transactions (
	seq             BIGSERIAL PRIMARY KEY,
	id              UUID NOT NULL UNIQUE,
	product_code    TEXT NOT NULL,
	product_name    TEXT NOT NULL,
	price           NUMERIC(12,2) NOT NULL CHECK (price >= 0),
	amount_tendered NUMERIC(12,2) NOT NULL,
	change          NUMERIC(12,2) NOT NULL CHECK (change >= 0),
	created_at      TIMESTAMPTZ NOT NULL
)`

// Connect opens a lib/pq pool, checks it is reachable and makes sure the journal table exists.
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("connected to database",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("name", cfg.Name),
	)
	return db, nil
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create transactions table: %w", err)
	}
	return nil
}
