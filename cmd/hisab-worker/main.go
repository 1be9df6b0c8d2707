package main

import (
	"context"
	"os"
	"time"

	"hisab/internal/amqp"
	"hisab/internal/cli"
	"hisab/internal/ledger/google"
	"hisab/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting hisab-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("Backup worker requires GOOGLE_SPREADSHEET_ID")
		os.Exit(1)
	}
	backupClient, err := google.NewFromEnv(context.Background())
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	backupWorker := worker.NewBackupWorker(repo, backupClient, cfg.SyncBatchSize)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	// Mirror anything that accumulated while the worker was down.
	logger.Info("Performing startup sync check")
	if err := backupWorker.StartupSyncCheck(ctx); err != nil {
		logger.Error("Startup sync check failed", "error", err)
	}

	go func() {
		handler := func(msg *amqp.TransactionSyncMessage) error {
			return backupWorker.HandleSyncMessage(ctx, msg)
		}
		if err := amqpClient.ConsumeTransactionSync(ctx, handler); err != nil && err != context.Canceled {
			logger.Error("Message consumption failed", "error", err)
		}
	}()

	// The periodic scan catches rows whose sync message was lost.
	ticker := time.NewTicker(cfg.SyncInterval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := backupWorker.ProcessPending(ctx); err != nil {
					logger.Error("Periodic sync failed", "error", err)
				}
			}
		}
	}()

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
