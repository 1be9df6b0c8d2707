package export

import (
	"bytes"
	"strings"
	"testing"

	"hisab/internal/core"

	"github.com/stretchr/testify/require"
)

func TestWriteLedger(t *testing.T) {
	income := []core.Transaction{
		{
			ID: 1, Kind: core.Income, Date: core.NewDate(2024, 10, 5),
			Amount: core.Money{Paise: 7500000}, Category: "zakat",
			Method: core.Bank, DonorName: "Ahmed Khan", SectionID: 1,
		},
	}
	expense := []core.Transaction{
		{
			ID: 2, Kind: core.Expense, Date: core.NewDate(2024, 10, 3),
			Amount: core.Money{Paise: 1200000}, Category: "salaries",
			Method: core.Cash, Description: "October salaries", SectionID: 5,
		},
	}
	sections := []core.Section{
		{ID: 1, Name: "Hifz", Type: "academic"},
		{ID: 5, Name: "Administration", Type: "operations"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLedger(&buf, income, expense, sections))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "date,type,amount_rs,category,payment_method,donor,description,section", lines[0])

	// Merged output is chronological, so the expense row comes first.
	require.Contains(t, lines[1], "2024-10-03,expense,12000.00,salaries,cash")
	require.Contains(t, lines[1], "Administration")
	require.Contains(t, lines[2], "2024-10-05,income,75000.00,zakat,bank,Ahmed Khan")
	require.Contains(t, lines[2], "Hifz")
}

func TestWriteLedgerEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLedger(&buf, nil, nil, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1) // header only
}
