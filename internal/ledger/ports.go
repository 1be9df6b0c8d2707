// Package ledger defines the outbound ports of the application: transaction
// and donor persistence, section lookup, and the external backup ledger.
package ledger

import (
	"context"

	"hisab/internal/core"
)

// TransactionFilter narrows a transaction listing. Zero values disable a
// clause. Results are ordered date ascending (then id) unless NewestFirst
// is set; the reporting engine depends on the ascending order.
type TransactionFilter struct {
	Start       core.Date // inclusive
	End         core.Date // inclusive
	SectionID   int64     // 0 means all sections
	Category    string
	DonorSearch string // income only, substring match
	NewestFirst bool
	Limit       int
}

// Ports for outbound adapters.
type (
	TransactionWriter interface {
		CreateTransaction(ctx context.Context, t core.Transaction) (int64, error)
	}

	TransactionLister interface {
		ListTransactions(ctx context.Context, kind core.TransactionKind, f TransactionFilter) ([]core.Transaction, error)
	}

	// RecentLister returns the latest entries of both kinds merged,
	// newest first, for the dashboard.
	RecentLister interface {
		ListRecent(ctx context.Context, limit int) ([]core.Transaction, error)
	}

	DonorRegistry interface {
		CreateDonor(ctx context.Context, d core.Donor) (int64, error)
		// ListDonors matches search against name, phone, or email;
		// empty search lists all, newest first.
		ListDonors(ctx context.Context, search string) ([]core.Donor, error)
	}

	SectionDirectory interface {
		ListSections(ctx context.Context) ([]core.Section, error)
	}

	// BackupWriter appends one transaction row to the external backup
	// ledger (a Google spreadsheet in production).
	BackupWriter interface {
		AppendBackup(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}
)
