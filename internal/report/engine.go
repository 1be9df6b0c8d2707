package report

import (
	"errors"

	"hisab/internal/core"
)

const (
	Surplus Classification = "surplus"
	Deficit Classification = "deficit"
)

// ErrUnordered is returned when a collection violates the ascending-date
// precondition. Storage always orders; hitting this means a broken source.
var ErrUnordered = errors.New("transaction rows not in ascending date order")

type (
	// Classification labels the sign of a balance. Zero counts as surplus.
	Classification string

	// CategoryBucket is one aggregated {category, summed amount} entry.
	CategoryBucket struct {
		Name   string
		Amount core.Money
	}

	// ComparisonEntry is one bar of the income-vs-expense chart.
	ComparisonEntry struct {
		Label  string
		Amount core.Money
	}

	// MonthPoint is one calendar month of the comparison series.
	MonthPoint struct {
		Year    int
		Month   int // 1-12
		Income  core.Money
		Expense core.Money
	}

	// Input is one fetched collection. Available distinguishes "the query
	// failed" from "zero rows"; an unavailable collection renders as
	// unknown, never as a silent zero.
	Input struct {
		Rows      []core.Transaction
		Available bool
	}

	// Collection is the reduced form of one transaction collection.
	Collection struct {
		Available  bool
		Rows       []core.Transaction
		Count      int
		Total      core.Money
		ByCategory []CategoryBucket
	}

	// Snapshot is the complete derived report for one {period, section}
	// pair. It is recomputed from scratch on every input change and never
	// persisted.
	Snapshot struct {
		Selector       Selector
		Period         Period
		SectionID      int64 // 0 means all sections
		Income         Collection
		Expense        Collection
		Balance        core.Money
		Classification Classification
		Comparison     []ComparisonEntry
		Months         []MonthPoint
		Pages          []Page
	}
)

// Total sums a collection exactly; an empty collection totals zero.
func Total(rows []core.Transaction) core.Money {
	var sum core.Money
	for _, r := range rows {
		sum = sum.Add(r.Amount)
	}
	return sum
}

// ByCategory reduces rows into buckets in a single pass. Bucket order is
// first-seen order, which downstream legends and tables reproduce verbatim.
func ByCategory(rows []core.Transaction) []CategoryBucket {
	var buckets []CategoryBucket
	index := make(map[string]int, 8)
	for _, r := range rows {
		if i, ok := index[r.Category]; ok {
			buckets[i].Amount = buckets[i].Amount.Add(r.Amount)
			continue
		}
		index[r.Category] = len(buckets)
		buckets = append(buckets, CategoryBucket{Name: r.Category, Amount: r.Amount})
	}
	return buckets
}

// Classify applies the non-negative boundary rule: a zero balance is surplus.
func Classify(balance core.Money) Classification {
	if balance.Paise < 0 {
		return Deficit
	}
	return Surplus
}

func ascending(rows []core.Transaction) bool {
	for i := 1; i < len(rows); i++ {
		if rows[i].Date.Before(rows[i-1].Date.Time) {
			return false
		}
	}
	return true
}

func reduce(in Input) (Collection, error) {
	if !in.Available {
		return Collection{}, nil
	}
	if !ascending(in.Rows) {
		return Collection{}, ErrUnordered
	}
	return Collection{
		Available:  true,
		Rows:       in.Rows,
		Count:      len(in.Rows),
		Total:      Total(in.Rows),
		ByCategory: ByCategory(in.Rows),
	}, nil
}

// BuildSnapshot reduces the two fetched collections into a full report.
// An unavailable collection contributes nothing and keeps its Available flag
// down; the other side still aggregates so partial data renders. Rows must
// arrive date-ascending.
func BuildSnapshot(sel Selector, period Period, sectionID int64, income, expense Input) (*Snapshot, error) {
	inc, err := reduce(income)
	if err != nil {
		return nil, err
	}
	exp, err := reduce(expense)
	if err != nil {
		return nil, err
	}

	balance := inc.Total.Sub(exp.Total)
	s := &Snapshot{
		Selector:       sel,
		Period:         period,
		SectionID:      sectionID,
		Income:         inc,
		Expense:        exp,
		Balance:        balance,
		Classification: Classify(balance),
		Comparison: []ComparisonEntry{
			{Label: "income", Amount: inc.Total},
			{Label: "expense", Amount: exp.Total},
		},
		Months: monthlySeries(period, inc.Rows, exp.Rows),
		Pages:  Paginate(inc.Rows, exp.Rows),
	}
	return s, nil
}

// monthlySeries buckets both collections per calendar month across the
// period, zero-filled so charts keep a continuous axis.
func monthlySeries(period Period, income, expense []core.Transaction) []MonthPoint {
	months := period.Months()
	points := make([]MonthPoint, len(months))
	index := make(map[[2]int]int, len(months))
	for i, m := range months {
		points[i] = MonthPoint{Year: m.Year(), Month: int(m.Month())}
		index[[2]int{m.Year(), int(m.Month())}] = i
	}
	for _, r := range income {
		if i, ok := index[[2]int{r.Date.Year(), int(r.Date.Month())}]; ok {
			points[i].Income = points[i].Income.Add(r.Amount)
		}
	}
	for _, r := range expense {
		if i, ok := index[[2]int{r.Date.Year(), int(r.Date.Month())}]; ok {
			points[i].Expense = points[i].Expense.Add(r.Amount)
		}
	}
	return points
}
