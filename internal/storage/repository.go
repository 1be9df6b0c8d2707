// Package storage is the SQLite persistence layer. Income and expense rows
// live in separate tables, mirroring the double-entry form of the printed
// registers the madrasa keeps.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hisab/internal/core"
	"hisab/internal/ledger"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

// PendingSync identifies a row the backup worker still has to mirror.
type PendingSync struct {
	Kind    core.TransactionKind
	ID      int64
	Version int64
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func tableFor(kind core.TransactionKind) string {
	if kind == core.Income {
		return "income_transactions"
	}
	return "expense_transactions"
}

// CreateTransaction implements ledger.TransactionWriter.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}

	var sectionID any
	if t.SectionID != 0 {
		sectionID = t.SectionID
	}

	var res sql.Result
	var err error
	if t.Kind == core.Income {
		res, err = r.db.ExecContext(ctx, `
			INSERT INTO income_transactions (date, amount_paise, category, payment_method, donor_name, description, section_id)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.Date.String(), t.Amount.Paise, t.Category, string(t.Method), t.DonorName, t.Description, sectionID)
	} else {
		res, err = r.db.ExecContext(ctx, `
			INSERT INTO expense_transactions (date, amount_paise, category, payment_method, description, section_id)
			VALUES (?, ?, ?, ?, ?, ?)`,
			t.Date.String(), t.Amount.Paise, t.Category, string(t.Method), t.Description, sectionID)
	}
	if err != nil {
		return 0, fmt.Errorf("insert %s transaction: %w", t.Kind, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"kind", string(t.Kind),
		"id", id,
		"amount_paise", t.Amount.Paise,
		"category", t.Category,
		"date", t.Date.String())

	return id, nil
}

// GetTransaction loads one row by kind and id.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, kind core.TransactionKind, id int64) (core.Transaction, error) {
	donorCol := "donor_name"
	if kind == core.Expense {
		donorCol = "''"
	}
	row := r.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT id, date, amount_paise, category, payment_method, %s, description, COALESCE(section_id, 0)
		FROM %s WHERE id = ?`, donorCol, tableFor(kind)), id)

	t, err := scanTransaction(row, kind)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get %s transaction %d: %w", kind, id, err)
	}
	return t, nil
}

// ListTransactions implements ledger.TransactionLister. Results come back
// date ascending (then id) unless the filter flips the order; the reporting
// engine depends on the ascending form.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, kind core.TransactionKind, f ledger.TransactionFilter) ([]core.Transaction, error) {
	donorCol := "donor_name"
	if kind == core.Expense {
		donorCol = "''"
	}

	var where []string
	var args []any
	if !f.Start.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, f.Start.String())
	}
	if !f.End.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, f.End.String())
	}
	if f.SectionID != 0 {
		where = append(where, "section_id = ?")
		args = append(args, f.SectionID)
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.DonorSearch != "" && kind == core.Income {
		where = append(where, "donor_name LIKE ?")
		args = append(args, "%"+f.DonorSearch+"%")
	}

	q := fmt.Sprintf("SELECT id, date, amount_paise, category, payment_method, %s, description, COALESCE(section_id, 0) FROM %s",
		donorCol, tableFor(kind))
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	if f.NewestFirst {
		q += " ORDER BY date DESC, id DESC"
	} else {
		q += " ORDER BY date ASC, id ASC"
	}
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s transactions: %w", kind, err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows, kind)
		if err != nil {
			return nil, fmt.Errorf("scan %s transaction: %w", kind, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListRecent implements ledger.RecentLister: both kinds merged, newest first.
func (r *SQLiteRepository) ListRecent(ctx context.Context, limit int) ([]core.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT 'income', id, date, amount_paise, category, payment_method, donor_name, description, COALESCE(section_id, 0)
		FROM income_transactions
		UNION ALL
		SELECT 'expense', id, date, amount_paise, category, payment_method, '', description, COALESCE(section_id, 0)
		FROM expense_transactions
		ORDER BY date DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var t core.Transaction
		var kind, date, method string
		if err := rows.Scan(&kind, &t.ID, &date, &t.Amount.Paise, &t.Category, &method, &t.DonorName, &t.Description, &t.SectionID); err != nil {
			return nil, fmt.Errorf("scan recent transaction: %w", err)
		}
		t.Kind = core.TransactionKind(kind)
		t.Method = core.PaymentMethod(method)
		if t.Date, err = core.ParseDate(date); err != nil {
			return nil, fmt.Errorf("recent transaction %d: %w", t.ID, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner, kind core.TransactionKind) (core.Transaction, error) {
	var t core.Transaction
	var date, method string
	if err := row.Scan(&t.ID, &date, &t.Amount.Paise, &t.Category, &method, &t.DonorName, &t.Description, &t.SectionID); err != nil {
		return core.Transaction{}, err
	}
	t.Kind = kind
	t.Method = core.PaymentMethod(method)
	var err error
	if t.Date, err = core.ParseDate(date); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

// CreateDonor implements ledger.DonorRegistry.
func (r *SQLiteRepository) CreateDonor(ctx context.Context, d core.Donor) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO donors (name, email, phone, address, cnic, is_regular, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.Name, d.Email, d.Phone, d.Address, d.CNIC, d.IsRegular, d.Notes)
	if err != nil {
		return 0, fmt.Errorf("insert donor: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	slog.InfoContext(ctx, "Donor saved", "id", id, "name", d.Name)
	return id, nil
}

// ListDonors matches search against name, phone, or email; empty search
// returns everyone, newest first.
func (r *SQLiteRepository) ListDonors(ctx context.Context, search string) ([]core.Donor, error) {
	q := `SELECT id, name, email, phone, address, cnic, is_regular, notes, created_at FROM donors`
	var args []any
	if search != "" {
		q += ` WHERE name LIKE ? OR phone LIKE ? OR email LIKE ?`
		pat := "%" + search + "%"
		args = append(args, pat, pat, pat)
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list donors: %w", err)
	}
	defer rows.Close()

	var out []core.Donor
	for rows.Next() {
		var d core.Donor
		var created string
		if err := rows.Scan(&d.ID, &d.Name, &d.Email, &d.Phone, &d.Address, &d.CNIC, &d.IsRegular, &d.Notes, &created); err != nil {
			return nil, fmt.Errorf("scan donor: %w", err)
		}
		d.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", created)
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListSections implements ledger.SectionDirectory, ordered by name as the
// section selector displays them.
func (r *SQLiteRepository) ListSections(ctx context.Context) ([]core.Section, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, type FROM sections ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	var out []core.Section
	for rows.Next() {
		var s core.Section
		if err := rows.Scan(&s.ID, &s.Name, &s.Type); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CreateSection registers a new section.
func (r *SQLiteRepository) CreateSection(ctx context.Context, s core.Section) (int64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `INSERT INTO sections (name, type) VALUES (?, ?)`, s.Name, s.Type)
	if err != nil {
		return 0, fmt.Errorf("insert section: %w", err)
	}
	return res.LastInsertId()
}

// GetPendingSync returns rows the backup worker has not mirrored yet,
// oldest first, across both transaction tables.
func (r *SQLiteRepository) GetPendingSync(ctx context.Context, limit int) ([]PendingSync, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT 'income', id, version, created_at FROM income_transactions WHERE synced = 0
		UNION ALL
		SELECT 'expense', id, version, created_at FROM expense_transactions WHERE synced = 0
		ORDER BY created_at ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync rows: %w", err)
	}
	defer rows.Close()

	var out []PendingSync
	for rows.Next() {
		var p PendingSync
		var kind, created string
		if err := rows.Scan(&kind, &p.ID, &p.Version, &created); err != nil {
			return nil, fmt.Errorf("scan pending sync row: %w", err)
		}
		p.Kind = core.TransactionKind(kind)
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkSynced records a successful backup append.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, kind core.TransactionKind, id int64) error {
	_, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET synced = 1, sync_error = 0 WHERE id = ?`, tableFor(kind)), id)
	if err != nil {
		return fmt.Errorf("mark %s %d synced: %w", kind, id, err)
	}
	slog.InfoContext(ctx, "Transaction marked as synced", "kind", string(kind), "id", id)
	return nil
}

// MarkSyncError flags a row whose backup append failed; the periodic
// catch-up scan will retry it.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, kind core.TransactionKind, id int64) error {
	_, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET sync_error = 1 WHERE id = ?`, tableFor(kind)), id)
	if err != nil {
		return fmt.Errorf("mark %s %d sync error: %w", kind, id, err)
	}
	slog.WarnContext(ctx, "Transaction marked with sync error", "kind", string(kind), "id", id)
	return nil
}
