// Package adapters bridges the SQLite repository and the transaction
// service into the ledger port set the HTTP handlers consume. Handlers stay
// backend-agnostic; only the factory knows which adapter is behind them.
package adapters

import (
	"context"

	"hisab/internal/core"
	"hisab/internal/ledger"
	"hisab/internal/services"
	"hisab/internal/storage"
)

// SQLiteAdapter routes writes through the transaction service, so every save
// also enqueues its backup sync, while reads go straight to the repository.
type SQLiteAdapter struct {
	storage *storage.SQLiteRepository
	service *services.TransactionService
}

func NewSQLiteAdapter(storage *storage.SQLiteRepository, service *services.TransactionService) *SQLiteAdapter {
	return &SQLiteAdapter{
		storage: storage,
		service: service,
	}
}

// CreateTransaction implements ledger.TransactionWriter.
func (a *SQLiteAdapter) CreateTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	return a.service.Record(ctx, t)
}

// ListTransactions implements ledger.TransactionLister.
func (a *SQLiteAdapter) ListTransactions(ctx context.Context, kind core.TransactionKind, f ledger.TransactionFilter) ([]core.Transaction, error) {
	return a.storage.ListTransactions(ctx, kind, f)
}

// ListRecent implements ledger.RecentLister.
func (a *SQLiteAdapter) ListRecent(ctx context.Context, limit int) ([]core.Transaction, error) {
	return a.storage.ListRecent(ctx, limit)
}

// CreateDonor implements ledger.DonorRegistry.
func (a *SQLiteAdapter) CreateDonor(ctx context.Context, d core.Donor) (int64, error) {
	return a.storage.CreateDonor(ctx, d)
}

// ListDonors implements ledger.DonorRegistry.
func (a *SQLiteAdapter) ListDonors(ctx context.Context, search string) ([]core.Donor, error) {
	return a.storage.ListDonors(ctx, search)
}

// ListSections implements ledger.SectionDirectory.
func (a *SQLiteAdapter) ListSections(ctx context.Context) ([]core.Section, error) {
	return a.storage.ListSections(ctx)
}
