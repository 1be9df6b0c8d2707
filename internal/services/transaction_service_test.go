package services

import (
	"context"
	"testing"

	"hisab/internal/core"
	"hisab/internal/ledger"
	"hisab/internal/ledger/memory"

	"github.com/stretchr/testify/require"
)

func TestRecordDefaultsToFirstSection(t *testing.T) {
	store := memory.New()
	svc := NewTransactionService(store, store, nil)

	ctx := context.Background()
	id, err := svc.Record(ctx, core.Transaction{
		Kind:     core.Income,
		Date:     core.NewDate(2024, 10, 5),
		Amount:   core.Money{Paise: 100000},
		Category: "zakat",
		Method:   core.Cash,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	sections, err := store.ListSections(ctx)
	require.NoError(t, err)

	rows, err := store.ListTransactions(ctx, core.Income, ledger.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, sections[0].ID, rows[0].SectionID)
}

func TestRecordKeepsExplicitSection(t *testing.T) {
	store := memory.New()
	svc := NewTransactionService(store, store, nil)

	_, err := svc.Record(context.Background(), core.Transaction{
		Kind:      core.Expense,
		Date:      core.NewDate(2024, 10, 5),
		Amount:    core.Money{Paise: 50000},
		Category:  "food",
		Method:    core.Cash,
		SectionID: 4,
	})
	require.NoError(t, err)

	rows, err := store.ListTransactions(context.Background(), core.Expense, ledger.TransactionFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(4), rows[0].SectionID)
}

func TestRecordFiresWriteHook(t *testing.T) {
	store := memory.New()
	svc := NewTransactionService(store, store, nil)

	fired := 0
	svc.OnWrite(func() { fired++ })

	_, err := svc.Record(context.Background(), core.Transaction{
		Kind:     core.Income,
		Date:     core.NewDate(2024, 10, 5),
		Amount:   core.Money{Paise: 100000},
		Category: "donation",
		Method:   core.Bank,
	})
	require.NoError(t, err)
	require.Equal(t, 1, fired)

	// A rejected save must not fire the hook.
	_, err = svc.Record(context.Background(), core.Transaction{Kind: core.Income})
	require.Error(t, err)
	require.Equal(t, 1, fired)
}
