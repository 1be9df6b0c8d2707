package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hisab/internal/core"
	"hisab/internal/report"
)

// parseReportQuery extracts the period selector and section filter from the
// query string. Unknown selectors default to the current month; an absent or
// malformed section means all sections.
func parseReportQuery(r *http.Request) (report.Selector, int64) {
	sel := report.ParseSelector(strings.TrimSpace(r.URL.Query().Get("period")))

	var sectionID int64
	if v := strings.TrimSpace(r.URL.Query().Get("section")); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			sectionID = id
		}
	}
	return sel, sectionID
}

// parseTransactionForm reads the shared entry-form fields. The date defaults
// to today when the field is empty.
func parseTransactionForm(r *http.Request, kind core.TransactionKind) (core.Transaction, error) {
	t := core.Transaction{Kind: kind}

	dateStr := strings.TrimSpace(r.Form.Get("date"))
	if dateStr == "" {
		now := time.Now()
		t.Date = core.NewDate(now.Year(), int(now.Month()), now.Day())
	} else {
		d, err := core.ParseDate(dateStr)
		if err != nil {
			return t, err
		}
		t.Date = d
	}

	amount, err := core.ParseAmount(strings.TrimSpace(r.Form.Get("amount")))
	if err != nil {
		return t, err
	}
	t.Amount = amount

	t.Category = sanitizeInput(r.Form.Get("category"))
	if t.Category == "" && kind == core.Income {
		t.Category = "donation"
	}
	t.Method = core.PaymentMethod(sanitizeInput(r.Form.Get("payment_method")))
	if t.Method == "" {
		t.Method = core.Cash
	}
	t.Description = sanitizeInput(r.Form.Get("description"))
	if kind == core.Income {
		t.DonorName = sanitizeInput(r.Form.Get("donor_name"))
	}

	if v := strings.TrimSpace(r.Form.Get("section")); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			t.SectionID = id
		}
	}

	return t, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
