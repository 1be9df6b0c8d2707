// Package backend assembles a ledger backend from configuration. The HTTP
// server only sees the Backend interface; which store sits behind it is the
// factory's business.
package backend

import (
	"context"

	"hisab/internal/ledger"
	"hisab/internal/services"
)

// Backend bundles every ledger port the web surface needs.
type Backend interface {
	ledger.TransactionWriter
	ledger.TransactionLister
	ledger.RecentLister
	ledger.DonorRegistry
	ledger.SectionDirectory
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result is a constructed backend plus the transaction service behind its
// write path, exposed so the server can hook report invalidation into it.
type Result struct {
	Backend      Backend
	Transactions *services.TransactionService
	Cleanup      CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Config holds configuration for backend creation.
type Config struct {
	Type BackendType

	// SQLite specific.
	SQLiteDBPath string
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}
