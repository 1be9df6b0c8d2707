// Package report is the pure reporting core: period resolution, totals,
// category breakdowns, and ledger pagination with carry-forward balances.
// It performs no I/O and owns no state; callers fetch rows, the package
// reduces them.
package report

import (
	"time"

	"hisab/internal/core"
)

const (
	SelectorMonth       Selector = "month"
	SelectorLast3Months Selector = "last3months"
	SelectorYear        Selector = "year"
)

type (
	// Selector is the user-facing period shorthand.
	Selector string

	// Period is an inclusive calendar date range.
	Period struct {
		Start core.Date
		End   core.Date
	}
)

// ParseSelector maps arbitrary input to a Selector. Anything unrecognized
// resolves as the current month; a bad query parameter is not an error.
func ParseSelector(s string) Selector {
	switch Selector(s) {
	case SelectorLast3Months:
		return SelectorLast3Months
	case SelectorYear:
		return SelectorYear
	default:
		return SelectorMonth
	}
}

// Resolve anchors the selector to now's calendar:
//
//	month       first through last day of the current month
//	last3months first day of the month two months back through last day of
//	            the current month
//	year        first through last day of the current year
func Resolve(sel Selector, now time.Time) Period {
	y, m, _ := now.Date()
	switch sel {
	case SelectorLast3Months:
		start := time.Date(y, m-2, 1, 0, 0, 0, 0, time.UTC)
		return Period{
			Start: core.Date{Time: start},
			End:   endOfMonth(y, m),
		}
	case SelectorYear:
		return Period{
			Start: core.NewDate(y, 1, 1),
			End:   core.NewDate(y, 12, 31),
		}
	default:
		return Period{
			Start: core.NewDate(y, int(m), 1),
			End:   endOfMonth(y, m),
		}
	}
}

func endOfMonth(y int, m time.Month) core.Date {
	// Day 0 of the next month is the last day of this one.
	return core.Date{Time: time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC)}
}

// Contains reports whether d falls inside the inclusive range.
func (p Period) Contains(d core.Date) bool {
	return !d.Before(p.Start.Time) && !d.After(p.End.Time)
}

// Months enumerates the calendar months the period spans, for the monthly
// comparison series.
func (p Period) Months() []time.Time {
	var out []time.Time
	cur := time.Date(p.Start.Year(), p.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(p.End.Year(), p.End.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(last) {
		out = append(out, cur)
		cur = cur.AddDate(0, 1, 0)
	}
	return out
}
