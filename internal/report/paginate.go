package report

import "hisab/internal/core"

// PageSize is the fixed ledger rows-per-page for printed reports.
const PageSize = 20

// Page is one printable ledger page. Income and expense are paged
// independently but share the page index; the shorter collection simply
// runs out of rows first.
type Page struct {
	Index          int
	IncomeRows     []core.Transaction
	ExpenseRows    []core.Transaction
	IncomeTotal    core.Money
	ExpenseTotal   core.Money
	CarriedIncome  core.Money
	CarriedExpense core.Money
	RunningIncome  core.Money
	RunningExpense core.Money
	RunningBalance core.Money
}

// Paginate splits two date-ascending collections into PageSize pages.
// There is always at least one page, so an empty report still renders a
// header. Carry-forward values are prefix sums recomputed per page, not an
// iterated accumulator, so pages can be rendered in any order.
func Paginate(income, expense []core.Transaction) []Page {
	count := (max(len(income), len(expense)) + PageSize - 1) / PageSize
	if count == 0 {
		count = 1
	}

	pages := make([]Page, count)
	for i := range pages {
		incRows := slicePage(income, i)
		expRows := slicePage(expense, i)
		carriedInc := Total(income[:min(i*PageSize, len(income))])
		carriedExp := Total(expense[:min(i*PageSize, len(expense))])
		incTotal := Total(incRows)
		expTotal := Total(expRows)
		runInc := carriedInc.Add(incTotal)
		runExp := carriedExp.Add(expTotal)
		pages[i] = Page{
			Index:          i,
			IncomeRows:     incRows,
			ExpenseRows:    expRows,
			IncomeTotal:    incTotal,
			ExpenseTotal:   expTotal,
			CarriedIncome:  carriedInc,
			CarriedExpense: carriedExp,
			RunningIncome:  runInc,
			RunningExpense: runExp,
			RunningBalance: runInc.Sub(runExp),
		}
	}
	return pages
}

// slicePage returns rows [i*PageSize, (i+1)*PageSize); past the end it
// yields an empty slice, never an error.
func slicePage(rows []core.Transaction, i int) []core.Transaction {
	lo := i * PageSize
	if lo >= len(rows) {
		return nil
	}
	hi := lo + PageSize
	if hi > len(rows) {
		hi = len(rows)
	}
	return rows[lo:hi]
}
