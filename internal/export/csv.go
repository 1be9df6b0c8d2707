// Package export renders ledger rows as CSV for download into the
// committee's offline bookkeeping tools.
package export

import (
	"fmt"
	"io"
	"sort"

	"hisab/internal/core"

	"github.com/gocarina/gocsv"
)

// Row is one exported ledger line. Amounts are plain decimal rupees so the
// file opens cleanly in spreadsheet software.
type Row struct {
	Date        string `csv:"date"`
	Type        string `csv:"type"`
	Amount      string `csv:"amount_rs"`
	Category    string `csv:"category"`
	Method      string `csv:"payment_method"`
	Donor       string `csv:"donor"`
	Description string `csv:"description"`
	Section     string `csv:"section"`
}

// WriteLedger merges income and expense rows chronologically and writes them
// as CSV. Section names come from the directory; unknown ids are left blank.
func WriteLedger(w io.Writer, income, expense []core.Transaction, sections []core.Section) error {
	names := make(map[int64]string, len(sections))
	for _, s := range sections {
		names[s.ID] = s.Name
	}

	merged := make([]core.Transaction, 0, len(income)+len(expense))
	merged = append(merged, income...)
	merged = append(merged, expense...)
	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].Date.Equal(merged[j].Date.Time) {
			return merged[i].Date.Before(merged[j].Date.Time)
		}
		return merged[i].ID < merged[j].ID
	})

	rows := make([]Row, 0, len(merged))
	for _, t := range merged {
		rows = append(rows, Row{
			Date:        t.Date.String(),
			Type:        string(t.Kind),
			Amount:      t.Amount.Rupees().StringFixed(2),
			Category:    t.Category,
			Method:      string(t.Method),
			Donor:       t.DonorName,
			Description: t.Description,
			Section:     names[t.SectionID],
		})
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
