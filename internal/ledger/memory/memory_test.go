package memory

import (
	"context"
	"testing"

	"hisab/internal/core"
	"hisab/internal/ledger"

	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s *Store, kind core.TransactionKind, paise int64, category, date string) {
	t.Helper()
	d, err := core.ParseDate(date)
	require.NoError(t, err)
	tx := core.Transaction{Kind: kind, Date: d, Amount: core.Money{Paise: paise}, Category: category, Method: core.Cash}
	if kind == core.Income {
		tx.DonorName = "Ahmed Khan"
	}
	_, err = s.CreateTransaction(context.Background(), tx)
	require.NoError(t, err)
}

func TestFilterAndOrdering(t *testing.T) {
	s := New()
	seed(t, s, core.Income, 200000, "sadaqah", "2024-10-10")
	seed(t, s, core.Income, 100000, "zakat", "2024-10-01")
	seed(t, s, core.Income, 300000, "zakat", "2024-11-01")

	rows, err := s.ListTransactions(context.Background(), core.Income, ledger.TransactionFilter{
		Start: core.NewDate(2024, 10, 1),
		End:   core.NewDate(2024, 10, 31),
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "2024-10-01", rows[0].Date.String())
	require.Equal(t, "2024-10-10", rows[1].Date.String())

	newest, err := s.ListTransactions(context.Background(), core.Income, ledger.TransactionFilter{NewestFirst: true})
	require.NoError(t, err)
	require.Equal(t, "2024-11-01", newest[0].Date.String())
}

func TestRecentMergesKinds(t *testing.T) {
	s := New()
	seed(t, s, core.Income, 100000, "zakat", "2024-10-01")
	seed(t, s, core.Expense, 50000, "food", "2024-10-02")

	rows, err := s.ListRecent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, core.Expense, rows[0].Kind)
}

func TestDonorSearch(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, err := s.CreateDonor(ctx, core.Donor{Name: "Ahmed Khan", Phone: "0300-1234567"})
	require.NoError(t, err)
	_, err = s.CreateDonor(ctx, core.Donor{Name: "Bilal Siddiqui", Email: "bilal@example.com"})
	require.NoError(t, err)

	got, err := s.ListDonors(ctx, "bilal@")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Bilal Siddiqui", got[0].Name)
}

func TestAppendBackupValidates(t *testing.T) {
	s := New()
	_, err := s.AppendBackup(context.Background(), core.Transaction{})
	require.Error(t, err)

	ref, err := s.AppendBackup(context.Background(), core.Transaction{
		Kind: core.Expense, Date: core.NewDate(2024, 10, 1),
		Amount: core.Money{Paise: 1000}, Category: "food", Method: core.Cash,
	})
	require.NoError(t, err)
	require.Equal(t, "mem:1", ref)
}
