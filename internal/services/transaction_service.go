// Package services orchestrates the ledger backends: writes fan out to
// storage and the backup queue, reads feed the reporting engine.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"hisab/internal/amqp"
	"hisab/internal/core"
	"hisab/internal/ledger"
)

// TransactionService saves transactions and enqueues their backup sync.
// The local write is authoritative; a failed publish never fails the request,
// the worker's periodic catch-up scan picks the row up later.
type TransactionService struct {
	writer     ledger.TransactionWriter
	sections   ledger.SectionDirectory
	amqpClient *amqp.Client
	onWrite    func()
}

func NewTransactionService(writer ledger.TransactionWriter, sections ledger.SectionDirectory, amqpClient *amqp.Client) *TransactionService {
	return &TransactionService{
		writer:     writer,
		sections:   sections,
		amqpClient: amqpClient,
	}
}

// OnWrite registers a hook invoked after every successful save. The report
// service uses it to drop cached snapshots.
func (s *TransactionService) OnWrite(fn func()) {
	s.onWrite = fn
}

// Record validates and saves a transaction. A transaction entered with no
// section is attributed to the first section in the directory.
func (s *TransactionService) Record(ctx context.Context, t core.Transaction) (int64, error) {
	if t.SectionID == 0 && s.sections != nil {
		sections, err := s.sections.ListSections(ctx)
		if err == nil && len(sections) > 0 {
			t.SectionID = sections[0].ID
		}
	}

	id, err := s.writer.CreateTransaction(ctx, t)
	if err != nil {
		return 0, fmt.Errorf("save transaction: %w", err)
	}

	if s.onWrite != nil {
		s.onWrite()
	}

	// New rows start at version 1.
	if err := s.publishSyncMessage(ctx, t.Kind, id, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"kind", string(t.Kind), "id", id, "error", err)
	}

	return id, nil
}

func (s *TransactionService) publishSyncMessage(ctx context.Context, kind core.TransactionKind, id, version int64) error {
	if s.amqpClient == nil {
		return nil
	}
	return s.amqpClient.PublishTransactionSync(ctx, kind, id, version)
}

func (s *TransactionService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close amqp client: %w", err)
		}
	}
	return nil
}
