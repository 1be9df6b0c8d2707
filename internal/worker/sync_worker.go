// Package worker mirrors saved ledger rows to the spreadsheet backup.
// Messages from the queue drive the fast path; a periodic scan of unsynced
// rows covers lost messages and worker downtime.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"hisab/internal/amqp"
	"hisab/internal/core"
	"hisab/internal/ledger"
	"hisab/internal/storage"
)

type BackupWorker struct {
	storage   *storage.SQLiteRepository
	backup    ledger.BackupWriter
	batchSize int
}

func NewBackupWorker(storage *storage.SQLiteRepository, backup ledger.BackupWriter, batchSize int) *BackupWorker {
	return &BackupWorker{
		storage:   storage,
		backup:    backup,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes one sync message from the queue. The message
// carries only kind and id; the authoritative row comes from storage.
func (w *BackupWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"kind", string(msg.Kind),
		"id", msg.ID,
		"version", msg.Version)

	t, err := w.storage.GetTransaction(ctx, msg.Kind, msg.ID)
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	if err := w.mirrorTransaction(ctx, t); err != nil {
		return fmt.Errorf("mirror transaction to backup: %w", err)
	}
	return nil
}

// ProcessPending mirrors rows the queue never delivered. Errors on single
// rows are flagged and skipped so one bad row cannot stall the batch.
func (w *BackupWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.GetPendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending sync rows: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending transactions", "count", len(pending))

	for _, p := range pending {
		t, err := w.storage.GetTransaction(ctx, p.Kind, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to load pending transaction",
				"kind", string(p.Kind), "id", p.ID, "error", err)
			if err := w.storage.MarkSyncError(ctx, p.Kind, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error",
					"kind", string(p.Kind), "id", p.ID, "error", err)
			}
			continue
		}

		if err := w.mirrorTransaction(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror pending transaction",
				"kind", string(p.Kind), "id", p.ID, "error", err)
			continue
		}
	}
	return nil
}

// StartupSyncCheck drains a larger pending batch once at worker startup to
// recover from downtime.
func (w *BackupWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingSync(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending sync rows for startup check: %w", err)
	}
	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending transactions found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending transactions on startup, processing...",
		"count", len(pending))

	synced := 0
	failed := 0
	for _, p := range pending {
		t, err := w.storage.GetTransaction(ctx, p.Kind, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to load transaction for startup sync",
				"kind", string(p.Kind), "id", p.ID, "error", err)
			if err := w.storage.MarkSyncError(ctx, p.Kind, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error",
					"kind", string(p.Kind), "id", p.ID, "error", err)
			}
			failed++
			continue
		}

		if err := w.mirrorTransaction(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror transaction during startup",
				"kind", string(p.Kind), "id", p.ID, "error", err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", synced,
		"errors", failed)
	return nil
}

func (w *BackupWorker) mirrorTransaction(ctx context.Context, t core.Transaction) error {
	ref, err := w.backup.AppendBackup(ctx, t)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, t.Kind, t.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error",
				"kind", string(t.Kind), "id", t.ID, "error", markErr)
		}
		return fmt.Errorf("append to backup: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, t.Kind, t.ID); err != nil {
		// The append succeeded, so keep going; the row will be retried and
		// appended twice, which the committee tolerates over losing it.
		slog.ErrorContext(ctx, "Failed to mark as synced",
			"kind", string(t.Kind), "id", t.ID, "error", err)
	}

	slog.InfoContext(ctx, "Transaction mirrored to backup",
		"kind", string(t.Kind),
		"id", t.ID,
		"backup_ref", ref,
		"amount_paise", t.Amount.Paise)
	return nil
}
