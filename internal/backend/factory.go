package backend

import (
	"context"
	"fmt"
	"log/slog"

	"hisab/internal/adapters"
	"hisab/internal/amqp"
	"hisab/internal/core"
	"hisab/internal/ledger/memory"
	"hisab/internal/services"
	"hisab/internal/storage"
)

type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize SQLite repository: %w", err)
	}

	// AMQP is optional; without it saves skip the backup queue and the
	// worker's catch-up scan carries the load.
	var amqpClient *amqp.Client
	if config.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without backup queue", "error", err)
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	service := services.NewTransactionService(repo, repo, amqpClient)
	adapter := adapters.NewSQLiteAdapter(repo, service)

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", amqpClient != nil)

	return &Result{
		Backend:      adapter,
		Transactions: service,
		Cleanup: func() error {
			if err := service.Close(); err != nil {
				return err
			}
			return repo.Close()
		},
	}, nil
}

func (f *DefaultFactory) createMemoryBackend() (*Result, error) {
	store := memory.New()
	service := services.NewTransactionService(store, store, nil)

	f.logger.Info("Initialized memory backend")

	return &Result{
		Backend:      &memoryBackend{Store: store, service: service},
		Transactions: service,
		Cleanup:      service.Close,
	}, nil
}

// memoryBackend routes writes through the transaction service so the memory
// backend behaves like the SQLite one from the handlers' point of view.
type memoryBackend struct {
	*memory.Store
	service *services.TransactionService
}

func (b *memoryBackend) CreateTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	return b.service.Record(ctx, t)
}
