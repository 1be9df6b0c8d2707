package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"hisab/internal/core"
	"hisab/internal/export"
	"hisab/internal/i18n"
	"hisab/internal/ledger"
	applog "hisab/internal/log"
	"hisab/internal/report"
)

type bucketView struct {
	Name   string
	Amount string
	Width  int
}

type monthView struct {
	Label   string
	Income  string
	Expense string
}

type ledgerRowView struct {
	Date        string
	Amount      string
	Category    string
	DonorName   string
	Description string
}

type pageView struct {
	Number         int // 1-based for display
	ShowCarried    bool
	IncomeRows     []ledgerRowView
	ExpenseRows    []ledgerRowView
	IncomeTotal    string
	ExpenseTotal   string
	CarriedIncome  string
	CarriedExpense string
	RunningIncome  string
	RunningExpense string
	RunningBalance string
}

type reportView struct {
	Selector       string
	SectionID      int64
	PeriodStart    string
	PeriodEnd      string
	Income         string
	Expense        string
	Balance        string
	Surplus        bool
	IncomeOK       bool
	ExpenseOK      bool
	IncomeCount    int
	ExpenseCount   int
	IncomeBuckets  []bucketView
	ExpenseBuckets []bucketView
	Months         []monthView
	Pages          []pageView
	Sections       []core.Section
}

func buckets(in []report.CategoryBucket, total core.Money) []bucketView {
	out := make([]bucketView, 0, len(in))
	for _, b := range in {
		width := 0
		if total.Paise > 0 && b.Amount.Paise > 0 {
			width = int((b.Amount.Paise*100 + total.Paise/2) / total.Paise)
			if width > 0 && width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		out = append(out, bucketView{Name: b.Name, Amount: b.Amount.String(), Width: width})
	}
	return out
}

func ledgerRowViews(rows []core.Transaction) []ledgerRowView {
	out := make([]ledgerRowView, 0, len(rows))
	for _, t := range rows {
		out = append(out, ledgerRowView{
			Date:        t.Date.String(),
			Amount:      t.Amount.String(),
			Category:    t.Category,
			DonorName:   t.DonorName,
			Description: t.Description,
		})
	}
	return out
}

func buildReportView(snap *report.Snapshot, sections []core.Section) reportView {
	v := reportView{
		Selector:       string(snap.Selector),
		SectionID:      snap.SectionID,
		PeriodStart:    snap.Period.Start.String(),
		PeriodEnd:      snap.Period.End.String(),
		Income:         snap.Income.Total.String(),
		Expense:        snap.Expense.Total.String(),
		Balance:        snap.Balance.String(),
		Surplus:        snap.Classification == report.Surplus,
		IncomeOK:       snap.Income.Available,
		ExpenseOK:      snap.Expense.Available,
		IncomeCount:    snap.Income.Count,
		ExpenseCount:   snap.Expense.Count,
		IncomeBuckets:  buckets(snap.Income.ByCategory, snap.Income.Total),
		ExpenseBuckets: buckets(snap.Expense.ByCategory, snap.Expense.Total),
		Sections:       sections,
	}
	for _, m := range snap.Months {
		v.Months = append(v.Months, monthView{
			Label:   fmt.Sprintf("%04d-%02d", m.Year, m.Month),
			Income:  m.Income.String(),
			Expense: m.Expense.String(),
		})
	}
	for _, p := range snap.Pages {
		v.Pages = append(v.Pages, pageView{
			Number:         p.Index + 1,
			ShowCarried:    p.Index > 0,
			IncomeRows:     ledgerRowViews(p.IncomeRows),
			ExpenseRows:    ledgerRowViews(p.ExpenseRows),
			IncomeTotal:    p.IncomeTotal.String(),
			ExpenseTotal:   p.ExpenseTotal.String(),
			CarriedIncome:  p.CarriedIncome.String(),
			CarriedExpense: p.CarriedExpense.String(),
			RunningIncome:  p.RunningIncome.String(),
			RunningExpense: p.RunningExpense.String(),
			RunningBalance: p.RunningBalance.String(),
		})
	}
	return v
}

func (s *Server) reportViewFor(r *http.Request) (reportView, error) {
	sel, sectionID := parseReportQuery(r)

	snap, err := s.reports.Snapshot(r.Context(), sel, sectionID, time.Now())
	if err != nil {
		return reportView{}, err
	}

	sections, err := s.backend.ListSections(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Sections list error", "error", err)
	}
	return buildReportView(snap, sections), nil
}

// handleReports renders the interactive report screen.
func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	view, err := s.reportViewFor(r)
	if err != nil {
		s.httpLog.LogError(r.Context(), "Report snapshot error", err, applog.ComponentReport, "snapshot", applog.NewFields())
		http.Error(w, "report unavailable", http.StatusInternalServerError)
		return
	}

	if err := s.templates.ExecuteTemplate(w, "reports.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Report template execution failed", "error", err, "template", "reports.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleReportPrint renders the paginated printable ledger. Every page
// repeats the column headers; pages after the first open with the
// carried-forward block.
func (s *Server) handleReportPrint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	view, err := s.reportViewFor(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Print snapshot error", "error", err)
		http.Error(w, "report unavailable", http.StatusInternalServerError)
		return
	}

	if err := s.templates.ExecuteTemplate(w, "report_print.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Print template execution failed", "error", err, "template", "report_print.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleReportSummaryPartial renders just the totals block, refreshed when
// the selector or section changes.
func (s *Server) handleReportSummaryPartial(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	view, err := s.reportViewFor(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report summary error", "error", err)
		_, _ = w.Write([]byte(`<div class="placeholder">Unavailable</div>`))
		return
	}

	if err := s.templates.ExecuteTemplate(w, "report_summary.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Report summary execution failed", "error", err, "template", "report_summary.html")
		_, _ = w.Write([]byte(`<div class="placeholder">Unavailable</div>`))
	}
}

// handleReportExport streams the selected period's ledger as CSV.
func (s *Server) handleReportExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sel, sectionID := parseReportQuery(r)
	period := report.Resolve(sel, time.Now())
	filter := ledger.TransactionFilter{
		Start:     period.Start,
		End:       period.End,
		SectionID: sectionID,
	}

	income, err := s.backend.ListTransactions(r.Context(), core.Income, filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "CSV export income error", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	expense, err := s.backend.ListTransactions(r.Context(), core.Expense, filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "CSV export expense error", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	sections, err := s.backend.ListSections(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "CSV export sections error", "error", err)
	}

	filename := fmt.Sprintf("ledger_%s_%s.csv", period.Start, period.End)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.WriteLedger(w, income, expense, sections); err != nil {
		slog.ErrorContext(r.Context(), "CSV export write error", "error", err)
	}
}

// handleLanguageToggle flips the interface language and returns to the page
// the user came from.
func (s *Server) handleLanguageToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	next := i18n.Toggle()
	slog.InfoContext(r.Context(), "Language toggled", "locale", string(next))

	target := r.Header.Get("Referer")
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
