package http

import (
	"log/slog"
	"net/http"
	"time"

	"hisab/internal/core"
	"hisab/internal/report"
)

const recentLimit = 10

type recentRow struct {
	Kind        string
	Date        string
	Amount      string
	Category    string
	DonorName   string
	Description string
}

func recentRows(rows []core.Transaction) []recentRow {
	out := make([]recentRow, 0, len(rows))
	for _, t := range rows {
		out = append(out, recentRow{
			Kind:        string(t.Kind),
			Date:        t.Date.String(),
			Amount:      t.Amount.String(),
			Category:    t.Category,
			DonorName:   t.DonorName,
			Description: t.Description,
		})
	}
	return out
}

// handleDashboard renders the landing page: this month's summary and the
// latest entries across both ledgers.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	snap, err := s.reports.Snapshot(r.Context(), report.SelectorMonth, 0, time.Now())
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard snapshot error", "error", err)
		http.Error(w, "report unavailable", http.StatusInternalServerError)
		return
	}

	recent, err := s.backend.ListRecent(r.Context(), recentLimit)
	if err != nil {
		slog.ErrorContext(r.Context(), "Recent transactions error", "error", err)
	}

	data := struct {
		Snapshot *report.Snapshot
		Income   string
		Expense  string
		Balance  string
		Surplus  bool
		Recent   []recentRow
	}{
		Snapshot: snap,
		Income:   snap.Income.Total.String(),
		Expense:  snap.Expense.Total.String(),
		Balance:  snap.Balance.String(),
		Surplus:  snap.Classification == report.Surplus,
		Recent:   recentRows(recent),
	}

	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Dashboard template execution failed", "error", err, "template", "dashboard.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleRecentPartial renders the recent-transactions fragment.
func (s *Server) handleRecentPartial(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	recent, err := s.backend.ListRecent(r.Context(), recentLimit)
	if err != nil {
		slog.ErrorContext(r.Context(), "Recent transactions error", "error", err)
		_, _ = w.Write([]byte(`<div class="placeholder">` + "Unavailable" + `</div>`))
		return
	}

	data := struct{ Recent []recentRow }{Recent: recentRows(recent)}
	if err := s.templates.ExecuteTemplate(w, "recent.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Recent partial execution failed", "error", err, "template", "recent.html")
		_, _ = w.Write([]byte(`<div class="placeholder">Unavailable</div>`))
	}
}
