package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"hisab/internal/cache"
	"hisab/internal/core"
	"hisab/internal/ledger"
	"hisab/internal/ledger/memory"
	"hisab/internal/report"

	"github.com/stretchr/testify/require"
)

// failingLister breaks one side of the ledger to exercise degraded reports.
type failingLister struct {
	inner    ledger.TransactionLister
	failKind core.TransactionKind
}

func (f *failingLister) ListTransactions(ctx context.Context, kind core.TransactionKind, filter ledger.TransactionFilter) ([]core.Transaction, error) {
	if kind == f.failKind {
		return nil, errors.New("backend unavailable")
	}
	return f.inner.ListTransactions(ctx, kind, filter)
}

func seedLedger(t *testing.T, store *memory.Store) {
	t.Helper()
	rows := []struct {
		kind     core.TransactionKind
		paise    int64
		category string
		date     string
	}{
		{core.Income, 5000000, "zakat", "2024-10-03"},
		{core.Income, 2500000, "sadaqah", "2024-10-15"},
		{core.Expense, 1200000, "salaries", "2024-10-20"},
		{core.Income, 1000000, "donation", "2024-09-10"}, // outside this month
	}
	for _, r := range rows {
		d, err := core.ParseDate(r.date)
		require.NoError(t, err)
		_, err = store.CreateTransaction(context.Background(), core.Transaction{
			Kind: r.kind, Date: d, Amount: core.Money{Paise: r.paise},
			Category: r.category, Method: core.Cash, SectionID: 1,
		})
		require.NoError(t, err)
	}
}

func TestSnapshotThisMonth(t *testing.T) {
	store := memory.New()
	seedLedger(t, store)
	svc := NewReportService(store, nil)

	now := time.Date(2024, 10, 25, 12, 0, 0, 0, time.UTC)
	snap, err := svc.Snapshot(context.Background(), report.SelectorMonth, 0, now)
	require.NoError(t, err)

	require.Equal(t, int64(7500000), snap.Income.Total.Paise)
	require.Equal(t, int64(1200000), snap.Expense.Total.Paise)
	require.Equal(t, int64(6300000), snap.Balance.Paise)
	require.Equal(t, report.Surplus, snap.Classification)
	require.True(t, snap.Income.Available)
	require.True(t, snap.Expense.Available)
}

func TestSnapshotDegradesOnPartialFailure(t *testing.T) {
	store := memory.New()
	seedLedger(t, store)
	svc := NewReportService(&failingLister{inner: store, failKind: core.Expense}, nil)

	now := time.Date(2024, 10, 25, 12, 0, 0, 0, time.UTC)
	snap, err := svc.Snapshot(context.Background(), report.SelectorMonth, 0, now)
	require.NoError(t, err)

	require.True(t, snap.Income.Available)
	require.False(t, snap.Expense.Available)
	require.Equal(t, int64(7500000), snap.Income.Total.Paise)
}

func TestSnapshotCacheInvalidatedByWrite(t *testing.T) {
	store := memory.New()
	seedLedger(t, store)

	snapshots := cache.NewLRUCache[*report.Snapshot](16, time.Minute)
	reports := NewReportService(store, snapshots)
	tx := NewTransactionService(store, store, nil)
	tx.OnWrite(reports.Invalidate)

	ctx := context.Background()
	now := time.Date(2024, 10, 25, 12, 0, 0, 0, time.UTC)

	first, err := reports.Snapshot(ctx, report.SelectorMonth, 0, now)
	require.NoError(t, err)
	require.Equal(t, int64(7500000), first.Income.Total.Paise)

	_, err = tx.Record(ctx, core.Transaction{
		Kind: core.Income, Date: core.NewDate(2024, 10, 26),
		Amount: core.Money{Paise: 500000}, Category: "fitrana", Method: core.Cash,
	})
	require.NoError(t, err)

	second, err := reports.Snapshot(ctx, report.SelectorMonth, 0, now)
	require.NoError(t, err)
	require.Equal(t, int64(8000000), second.Income.Total.Paise)
}

func TestSnapshotNeverCachesDegradedResult(t *testing.T) {
	store := memory.New()
	seedLedger(t, store)

	snapshots := cache.NewLRUCache[*report.Snapshot](16, time.Minute)
	flaky := &failingLister{inner: store, failKind: core.Expense}
	svc := NewReportService(flaky, snapshots)

	ctx := context.Background()
	now := time.Date(2024, 10, 25, 12, 0, 0, 0, time.UTC)

	degraded, err := svc.Snapshot(ctx, report.SelectorMonth, 0, now)
	require.NoError(t, err)
	require.False(t, degraded.Expense.Available)

	// Backend recovers; the degraded snapshot must not have been cached.
	flaky.failKind = ""
	recovered, err := svc.Snapshot(ctx, report.SelectorMonth, 0, now)
	require.NoError(t, err)
	require.True(t, recovered.Expense.Available)
	require.Equal(t, int64(1200000), recovered.Expense.Total.Paise)
}
