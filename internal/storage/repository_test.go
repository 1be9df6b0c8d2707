package storage

import (
	"context"
	"path/filepath"
	"testing"

	"hisab/internal/core"
	"hisab/internal/ledger"

	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "hisab.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedTx(t *testing.T, repo *SQLiteRepository, kind core.TransactionKind, paise int64, category, date string) int64 {
	t.Helper()
	d, err := core.ParseDate(date)
	require.NoError(t, err)
	tx := core.Transaction{
		Kind:     kind,
		Date:     d,
		Amount:   core.Money{Paise: paise},
		Category: category,
		Method:   core.Cash,
	}
	if kind == core.Income {
		tx.DonorName = "Ahmed Khan"
	}
	id, err := repo.CreateTransaction(context.Background(), tx)
	require.NoError(t, err)
	return id
}

func TestCreateAndGetTransaction(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := seedTx(t, repo, core.Income, 500000, "zakat", "2024-10-05")

	got, err := repo.GetTransaction(ctx, core.Income, id)
	require.NoError(t, err)
	require.Equal(t, core.Income, got.Kind)
	require.Equal(t, int64(500000), got.Amount.Paise)
	require.Equal(t, "zakat", got.Category)
	require.Equal(t, "Ahmed Khan", got.DonorName)
	require.Equal(t, "2024-10-05", got.Date.String())
}

func TestCreateTransactionRejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.CreateTransaction(context.Background(), core.Transaction{
		Kind:     core.Income,
		Date:     core.NewDate(2024, 10, 5),
		Amount:   core.Money{Paise: 1000},
		Category: "salaries", // expense category on an income row
		Method:   core.Cash,
	})
	require.ErrorIs(t, err, core.ErrInvalidCategory)
}

func TestListTransactionsAscendingWithinRange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedTx(t, repo, core.Income, 300000, "donation", "2024-10-20")
	seedTx(t, repo, core.Income, 100000, "zakat", "2024-10-01")
	seedTx(t, repo, core.Income, 200000, "sadaqah", "2024-10-10")
	seedTx(t, repo, core.Income, 999900, "zakat", "2024-11-01") // outside range

	rows, err := repo.ListTransactions(ctx, core.Income, ledger.TransactionFilter{
		Start: core.NewDate(2024, 10, 1),
		End:   core.NewDate(2024, 10, 31),
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "2024-10-01", rows[0].Date.String())
	require.Equal(t, "2024-10-10", rows[1].Date.String())
	require.Equal(t, "2024-10-20", rows[2].Date.String())
}

func TestListTransactionsNewestFirst(t *testing.T) {
	repo := newTestRepo(t)

	seedTx(t, repo, core.Expense, 50000, "food", "2024-10-01")
	seedTx(t, repo, core.Expense, 60000, "utilities", "2024-10-15")

	rows, err := repo.ListTransactions(context.Background(), core.Expense, ledger.TransactionFilter{NewestFirst: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "2024-10-15", rows[0].Date.String())
}

func TestListRecentMergesKinds(t *testing.T) {
	repo := newTestRepo(t)

	seedTx(t, repo, core.Income, 100000, "zakat", "2024-10-01")
	seedTx(t, repo, core.Expense, 40000, "food", "2024-10-02")
	seedTx(t, repo, core.Income, 200000, "donation", "2024-10-03")

	rows, err := repo.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, core.Income, rows[0].Kind)
	require.Equal(t, "2024-10-03", rows[0].Date.String())
	require.Equal(t, core.Expense, rows[1].Kind)
}

func TestDonorSearch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, d := range []core.Donor{
		{Name: "Ahmed Khan", Phone: "0300-1234567", Email: "ahmed@example.com"},
		{Name: "Bilal Siddiqui", Phone: "0321-7654321"},
	} {
		_, err := repo.CreateDonor(ctx, d)
		require.NoError(t, err)
	}

	byName, err := repo.ListDonors(ctx, "Ahmed")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	require.Equal(t, "Ahmed Khan", byName[0].Name)

	byPhone, err := repo.ListDonors(ctx, "0321")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	require.Equal(t, "Bilal Siddiqui", byPhone[0].Name)

	all, err := repo.ListDonors(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestSeededSections(t *testing.T) {
	sections, err := newTestRepo(t).ListSections(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, sections)

	names := make(map[string]bool)
	for _, s := range sections {
		names[s.Name] = true
	}
	require.True(t, names["Hifz"])
	require.True(t, names["Kitchen"])
}

func TestSyncBookkeeping(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	incomeID := seedTx(t, repo, core.Income, 100000, "zakat", "2024-10-01")
	expenseID := seedTx(t, repo, core.Expense, 50000, "food", "2024-10-02")

	pending, err := repo.GetPendingSync(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	require.NoError(t, repo.MarkSynced(ctx, core.Income, incomeID))

	pending, err = repo.GetPendingSync(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, core.Expense, pending[0].Kind)
	require.Equal(t, expenseID, pending[0].ID)

	require.NoError(t, repo.MarkSyncError(ctx, core.Expense, expenseID))
	pending, err = repo.GetPendingSync(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
}
