// Package memory is the in-memory ledger backend used for development and
// handler tests. It mirrors the SQLite backend's ordering so the reporting
// engine behaves identically against either.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"hisab/internal/core"
	"hisab/internal/ledger"
)

type Store struct {
	mu       sync.Mutex
	nextID   int64
	income   []core.Transaction
	expense  []core.Transaction
	donors   []core.Donor
	sections []core.Section
	backups  int
}

func New() *Store {
	return &Store{
		nextID: 1,
		sections: []core.Section{
			{ID: 1, Name: "Hifz", Type: "academic"},
			{ID: 2, Name: "Nazra", Type: "academic"},
			{ID: 3, Name: "Hostel", Type: "boarding"},
			{ID: 4, Name: "Kitchen", Type: "operations"},
			{ID: 5, Name: "Administration", Type: "operations"},
		},
	}
}

// CreateTransaction implements ledger.TransactionWriter.
func (s *Store) CreateTransaction(_ context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.nextID++
	if t.Kind == core.Income {
		s.income = append(s.income, t)
	} else {
		s.expense = append(s.expense, t)
	}
	return t.ID, nil
}

// ListTransactions implements ledger.TransactionLister.
func (s *Store) ListTransactions(_ context.Context, kind core.TransactionKind, f ledger.TransactionFilter) ([]core.Transaction, error) {
	s.mu.Lock()
	src := s.income
	if kind == core.Expense {
		src = s.expense
	}
	rows := append([]core.Transaction(nil), src...)
	s.mu.Unlock()

	out := rows[:0]
	for _, t := range rows {
		if !f.Start.IsZero() && t.Date.Before(f.Start.Time) {
			continue
		}
		if !f.End.IsZero() && t.Date.After(f.End.Time) {
			continue
		}
		if f.SectionID != 0 && t.SectionID != f.SectionID {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.DonorSearch != "" && !strings.Contains(strings.ToLower(t.DonorName), strings.ToLower(f.DonorSearch)) {
			continue
		}
		out = append(out, t)
	}

	sortRows(out, f.NewestFirst)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// ListRecent implements ledger.RecentLister.
func (s *Store) ListRecent(_ context.Context, limit int) ([]core.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}
	s.mu.Lock()
	merged := make([]core.Transaction, 0, len(s.income)+len(s.expense))
	merged = append(merged, s.income...)
	merged = append(merged, s.expense...)
	s.mu.Unlock()

	sortRows(merged, true)
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

// CreateDonor implements ledger.DonorRegistry.
func (s *Store) CreateDonor(_ context.Context, d core.Donor) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.nextID
	s.nextID++
	d.CreatedAt = time.Now()
	s.donors = append(s.donors, d)
	return d.ID, nil
}

// ListDonors matches search against name, phone, or email; newest first.
func (s *Store) ListDonors(_ context.Context, search string) ([]core.Donor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Donor
	q := strings.ToLower(search)
	for i := len(s.donors) - 1; i >= 0; i-- {
		d := s.donors[i]
		if q == "" ||
			strings.Contains(strings.ToLower(d.Name), q) ||
			strings.Contains(strings.ToLower(d.Phone), q) ||
			strings.Contains(strings.ToLower(d.Email), q) {
			out = append(out, d)
		}
	}
	return out, nil
}

// ListSections implements ledger.SectionDirectory.
func (s *Store) ListSections(_ context.Context) ([]core.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Section(nil), s.sections...), nil
}

// AppendBackup implements ledger.BackupWriter with a synthetic row reference.
func (s *Store) AppendBackup(_ context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backups++
	return fmt.Sprintf("mem:%d", s.backups), nil
}

func sortRows(rows []core.Transaction, newestFirst bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date.Time) {
			if newestFirst {
				return rows[i].Date.After(rows[j].Date.Time)
			}
			return rows[i].Date.Before(rows[j].Date.Time)
		}
		if newestFirst {
			return rows[i].ID > rows[j].ID
		}
		return rows[i].ID < rows[j].ID
	})
}
