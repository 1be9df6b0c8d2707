package worker

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"hisab/internal/amqp"
	"hisab/internal/core"
	"hisab/internal/storage"

	"github.com/stretchr/testify/require"
)

type fakeBackup struct {
	appended []core.Transaction
	fail     bool
}

func (f *fakeBackup) AppendBackup(_ context.Context, t core.Transaction) (string, error) {
	if f.fail {
		return "", errors.New("spreadsheet unreachable")
	}
	f.appended = append(f.appended, t)
	return fmt.Sprintf("2024 Income!A%d:F%d", len(f.appended), len(f.appended)), nil
}

func newWorkerFixture(t *testing.T) (*storage.SQLiteRepository, *fakeBackup, *BackupWorker) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "hisab.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	backup := &fakeBackup{}
	return repo, backup, NewBackupWorker(repo, backup, 10)
}

func saveTx(t *testing.T, repo *storage.SQLiteRepository, kind core.TransactionKind, category string) int64 {
	t.Helper()
	tx := core.Transaction{
		Kind:     kind,
		Date:     core.NewDate(2024, 10, 5),
		Amount:   core.Money{Paise: 250000},
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

func TestHandleSyncMessageMirrorsRow(t *testing.T) {
	repo, backup, w := newWorkerFixture(t)
	ctx := context.Background()

	id := saveTx(t, repo, core.Income, "zakat")

	err := w.HandleSyncMessage(ctx, amqp.NewTransactionSyncMessage(core.Income, id, 1))
	require.NoError(t, err)
	require.Len(t, backup.appended, 1)
	require.Equal(t, "zakat", backup.appended[0].Category)

	pending, err := repo.GetPendingSync(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestHandleSyncMessageMissingRow(t *testing.T) {
	_, _, w := newWorkerFixture(t)

	err := w.HandleSyncMessage(context.Background(), amqp.NewTransactionSyncMessage(core.Income, 999, 1))
	require.Error(t, err)
}

func TestProcessPendingCatchesUp(t *testing.T) {
	repo, backup, w := newWorkerFixture(t)
	ctx := context.Background()

	saveTx(t, repo, core.Income, "donation")
	saveTx(t, repo, core.Expense, "food")

	require.NoError(t, w.ProcessPending(ctx))
	require.Len(t, backup.appended, 2)

	pending, err := repo.GetPendingSync(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestBackupFailureFlagsRowAndKeepsItPending(t *testing.T) {
	repo, backup, w := newWorkerFixture(t)
	ctx := context.Background()

	saveTx(t, repo, core.Expense, "utilities")
	backup.fail = true

	require.NoError(t, w.ProcessPending(ctx)) // batch survives row failures

	pending, err := repo.GetPendingSync(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	// Retry after recovery succeeds.
	backup.fail = false
	require.NoError(t, w.ProcessPending(ctx))
	pending, err = repo.GetPendingSync(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestStartupSyncCheck(t *testing.T) {
	repo, backup, w := newWorkerFixture(t)

	for i := 0; i < 3; i++ {
		saveTx(t, repo, core.Income, "sadaqah")
	}

	require.NoError(t, w.StartupSyncCheck(context.Background()))
	require.Len(t, backup.appended, 3)
}
