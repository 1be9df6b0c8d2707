package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"hisab/internal/cache"
	"hisab/internal/core"
	"hisab/internal/ledger"
	"hisab/internal/report"

	"golang.org/x/sync/errgroup"
)

// ReportService builds period snapshots over the ledger. Income and expense
// rows are fetched concurrently; if one side fails the snapshot is still
// built with that side marked unavailable rather than shown as zero.
type ReportService struct {
	lister    ledger.TransactionLister
	snapshots *cache.LRUCache[*report.Snapshot]

	// generation is bumped on every write. A snapshot computed against an
	// older generation is returned to its caller but never cached, so a
	// slow fetch cannot resurrect pre-write data.
	generation atomic.Int64
}

func NewReportService(lister ledger.TransactionLister, snapshots *cache.LRUCache[*report.Snapshot]) *ReportService {
	return &ReportService{
		lister:    lister,
		snapshots: snapshots,
	}
}

// Invalidate drops cached snapshots; wired to TransactionService.OnWrite.
func (s *ReportService) Invalidate() {
	s.generation.Add(1)
	if s.snapshots != nil {
		s.snapshots.Clear()
	}
}

// Snapshot resolves the selector against now and builds (or serves from
// cache) the report for the selected section. SectionID zero means all
// sections.
func (s *ReportService) Snapshot(ctx context.Context, sel report.Selector, sectionID int64, now time.Time) (*report.Snapshot, error) {
	period := report.Resolve(sel, now)
	key := fmt.Sprintf("%s:%d:%s:%s", sel, sectionID, period.Start, period.End)

	if s.snapshots != nil {
		if snap, ok := s.snapshots.Get(key); ok {
			return snap, nil
		}
	}

	gen := s.generation.Load()
	income, expense := s.fetch(ctx, period, sectionID)

	snap, err := report.BuildSnapshot(sel, period, sectionID, income, expense)
	if err != nil {
		return nil, fmt.Errorf("build report snapshot: %w", err)
	}

	if s.snapshots != nil && s.generation.Load() == gen && income.Available && expense.Available {
		s.snapshots.Set(key, snap)
	}
	return snap, nil
}

// fetch loads both sides of the ledger concurrently. Failures degrade the
// affected side instead of failing the whole report.
func (s *ReportService) fetch(ctx context.Context, period report.Period, sectionID int64) (income, expense report.Input) {
	filter := ledger.TransactionFilter{
		Start:     period.Start,
		End:       period.End,
		SectionID: sectionID,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.lister.ListTransactions(gctx, core.Income, filter)
		if err != nil {
			slog.ErrorContext(gctx, "Income fetch failed, reporting side as unavailable", "error", err)
			return nil
		}
		income = report.Input{Rows: rows, Available: true}
		return nil
	})
	g.Go(func() error {
		rows, err := s.lister.ListTransactions(gctx, core.Expense, filter)
		if err != nil {
			slog.ErrorContext(gctx, "Expense fetch failed, reporting side as unavailable", "error", err)
			return nil
		}
		expense = report.Input{Rows: rows, Available: true}
		return nil
	})
	g.Wait()
	return income, expense
}
