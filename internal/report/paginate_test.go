package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hisab/internal/core"
)

func incomeRows(n int, paiseEach int64) []core.Transaction {
	rows := make([]core.Transaction, n)
	for i := range rows {
		rows[i] = tx(core.Income, paiseEach, "donation",
			fmt.Sprintf("2024-%02d-%02d", 1+i/28, 1+i%28))
	}
	return rows
}

func TestPaginateEmptyHasOnePage(t *testing.T) {
	pages := Paginate(nil, nil)
	require.Len(t, pages, 1)
	assert.Empty(t, pages[0].IncomeRows)
	assert.Empty(t, pages[0].ExpenseRows)
	assert.Zero(t, pages[0].RunningBalance.Paise)
}

// 45 rows of 1000 rupees each across three pages, exercising the
// carry-forward figures of a multi-page printed ledger.
func TestPaginateCarryForward(t *testing.T) {
	rows := incomeRows(45, 100000)
	pages := Paginate(rows, nil)
	require.Len(t, pages, 3)

	assert.Equal(t, int64(2000000), pages[0].IncomeTotal.Paise)
	assert.Zero(t, pages[0].CarriedIncome.Paise)

	assert.Equal(t, int64(2000000), pages[1].IncomeTotal.Paise)
	assert.Equal(t, int64(2000000), pages[1].CarriedIncome.Paise)

	assert.Equal(t, int64(500000), pages[2].IncomeTotal.Paise)
	assert.Equal(t, int64(4000000), pages[2].CarriedIncome.Paise)
	assert.Equal(t, int64(4500000), pages[2].RunningIncome.Paise)
}

// Concatenating all page slices in order must reproduce the input exactly.
func TestPaginateLossless(t *testing.T) {
	income := incomeRows(53, 100)
	expense := incomeRows(7, 250)
	pages := Paginate(income, expense)
	require.Len(t, pages, 3)

	var gotIncome, gotExpense []core.Transaction
	for _, p := range pages {
		gotIncome = append(gotIncome, p.IncomeRows...)
		gotExpense = append(gotExpense, p.ExpenseRows...)
	}
	assert.Equal(t, income, gotIncome)
	assert.Equal(t, expense, gotExpense)

	// The shorter collection runs out of rows after its last page.
	assert.Empty(t, pages[1].ExpenseRows)
	assert.Empty(t, pages[2].ExpenseRows)
}

// Prefix-sum consistency: carry(i) + pageTotal(i) == carry(i+1).
func TestPaginatePrefixSumConsistency(t *testing.T) {
	income := incomeRows(67, 12345)
	expense := incomeRows(41, 999)
	pages := Paginate(income, expense)
	for i := 0; i+1 < len(pages); i++ {
		assert.Equal(t,
			pages[i].CarriedIncome.Add(pages[i].IncomeTotal).Paise,
			pages[i+1].CarriedIncome.Paise, "income page %d", i)
		assert.Equal(t,
			pages[i].CarriedExpense.Add(pages[i].ExpenseTotal).Paise,
			pages[i+1].CarriedExpense.Paise, "expense page %d", i)
	}
	last := pages[len(pages)-1]
	assert.Equal(t, Total(income).Paise, last.RunningIncome.Paise)
	assert.Equal(t, Total(expense).Paise, last.RunningExpense.Paise)
	assert.Equal(t, last.RunningIncome.Sub(last.RunningExpense).Paise, last.RunningBalance.Paise)
}
