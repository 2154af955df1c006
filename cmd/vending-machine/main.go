package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/sheikh-saqib/vending-machine/internal/catalog"
	"github.com/sheikh-saqib/vending-machine/internal/config"
	"github.com/sheikh-saqib/vending-machine/internal/events/kafka"
	interfaces "github.com/sheikh-saqib/vending-machine/internal/interfaces"
	"github.com/sheikh-saqib/vending-machine/internal/ledger"
	"github.com/sheikh-saqib/vending-machine/internal/logging"
	"github.com/sheikh-saqib/vending-machine/internal/storage/memory"
	"github.com/sheikh-saqib/vending-machine/internal/storage/postgres"
	"github.com/sheikh-saqib/vending-machine/internal/transactions"
	"github.com/sheikh-saqib/vending-machine/internal/vending"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Primary.Env, cfg.Logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()

	if err != nil {
		logger.Error("vending machine stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	store, closeStore, err := newTransactionStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	seed := catalog.Default()
	if cfg.Catalog.File != "" {
		seed, err = catalog.LoadFile(cfg.Catalog.File)
		if err != nil {
			return err
		}
	}
	products, err := catalog.New(seed...)
	if err != nil {
		return err
	}

	txLog, err := transactions.NewLog(store, transactions.WithLogger(logger))
	if err != nil {
		return err
	}

	opts := []vending.Option{vending.WithLogger(logger)}
	if cfg.Kafka.Enabled {
		publisher := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix, cfg.Kafka.WriteTimeout)
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Warn("failed to close kafka publisher", zap.Error(err))
			}
		}()
		opts = append(opts, vending.WithPublisher(publisher))
	}

	machine, err := vending.NewMachine(ledger.NewBalanceLedger(), products, txLog, opts...)
	if err != nil {
		return err
	}

	logger.Info("vending machine ready",
		zap.String("env", cfg.Primary.Env),
		zap.String("store", cfg.Store.Driver),
		zap.Bool("kafka", cfg.Kafka.Enabled),
		zap.Int("products", len(seed)),
	)

	return newConsole(machine, os.Stdin, os.Stdout).Run(ctx)
}

func newTransactionStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (interfaces.TransactionStore, func(), error) {
	if cfg.Store.Driver != config.StorePostgres {
		return memory.NewMemoryTransactionStore(), func() {}, nil
	}

	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}

	closeDB := func() {
		if err := db.Close(); err != nil && err != sql.ErrConnDone {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}
	return postgres.NewPostgresTransactionStore(db), closeDB, nil
}
