package http

import (
	"html/template"
	"log/slog"
	"net/http"

	"hisab/internal/core"
	"hisab/internal/ledger"
)

func (s *Server) handleIncome(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.renderIncomePage(w, r)
	case http.MethodPost:
		s.handleCreateIncome(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) renderIncomePage(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	sections, err := s.backend.ListSections(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Sections list error", "error", err)
	}

	rows, err := s.backend.ListTransactions(r.Context(), core.Income, ledger.TransactionFilter{
		NewestFirst: true,
		Limit:       50,
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "Income list error", "error", err)
	}

	data := struct {
		Categories []string
		Methods    []string
		Sections   []core.Section
		Rows       []recentRow
	}{
		Categories: core.IncomeCategories,
		Methods:    []string{string(core.Cash), string(core.Bank), string(core.Online)},
		Sections:   sections,
		Rows:       recentRows(rows),
	}

	if err := s.templates.ExecuteTemplate(w, "income.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Income template execution failed", "error", err, "template", "income.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	t, err := parseTransactionForm(r, core.Income)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid amount or date</div>`))
		return
	}
	if err := t.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid entry: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	if _, err := s.backend.CreateTransaction(r.Context(), t); err != nil {
		slog.ErrorContext(r.Context(), "Income create error", "error", err, "category", t.Category, "amount_paise", t.Amount.Paise)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Failed to save entry</div>`))
		return
	}

	s.httpLog.LogTransactionRecorded(r.Context(), string(t.Kind), t.Amount.Paise, t.Category, t.SectionID)
	http.Redirect(w, r, "/income", http.StatusSeeOther)
}
