package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"hisab/internal/core"
)

func (s *Server) handleDonors(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.renderDonorPage(w, r)
	case http.MethodPost:
		s.handleCreateDonor(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) renderDonorPage(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	search := sanitizeInput(r.URL.Query().Get("q"))
	donors, err := s.backend.ListDonors(r.Context(), search)
	if err != nil {
		slog.ErrorContext(r.Context(), "Donor list error", "error", err, "search", search)
	}

	data := struct {
		Search string
		Donors []core.Donor
	}{
		Search: search,
		Donors: donors,
	}

	if err := s.templates.ExecuteTemplate(w, "donors.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Donor template execution failed", "error", err, "template", "donors.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateDonor(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	d := core.Donor{
		Name:      sanitizeInput(r.Form.Get("name")),
		Email:     sanitizeInput(r.Form.Get("email")),
		Phone:     sanitizeInput(r.Form.Get("phone")),
		Address:   sanitizeInput(r.Form.Get("address")),
		CNIC:      sanitizeInput(r.Form.Get("cnic")),
		IsRegular: strings.EqualFold(r.Form.Get("is_regular"), "on") || r.Form.Get("is_regular") == "true",
		Notes:     sanitizeInput(r.Form.Get("notes")),
	}

	if err := d.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid donor: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	id, err := s.backend.CreateDonor(r.Context(), d)
	if err != nil {
		slog.ErrorContext(r.Context(), "Donor create error", "error", err, "name", d.Name)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Failed to save donor</div>`))
		return
	}

	slog.InfoContext(r.Context(), "Donor registered", "id", id, "name", d.Name)
	http.Redirect(w, r, "/donors", http.StatusSeeOther)
}
