// Package core holds the domain types of the madrasa ledger: transactions,
// donors, sections, and integer-paise money.
package core

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in paise (Rs minor unit). Calculations stay in int64
// paise end to end; decimals appear only at the parse and format edges.
type Money struct {
	Paise int64
}

// maxAmount caps parsed input well below int64 overflow territory.
var maxAmount = decimal.New(1, 13) // Rs 10^13

// ParseAmount converts a decimal rupee string to Money with half-up rounding
// on the third decimal place. Thousands separators ("12,500") are accepted.
// Zero and negative amounts are rejected; record an expense, not negative
// income.
func ParseAmount(s string) (Money, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || strings.HasPrefix(s, "+") {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if d.Sign() <= 0 || d.GreaterThanOrEqual(maxAmount) {
		return Money{}, ErrInvalidAmount
	}
	paise := d.Shift(2).Round(0).IntPart()
	if paise <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{Paise: paise}, nil
}

func (m Money) Validate() error {
	if m.Paise <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns m + o. Sums of valid amounts cannot overflow given the
// ParseAmount cap.
func (m Money) Add(o Money) Money {
	return Money{Paise: m.Paise + o.Paise}
}

// Sub returns m - o; the result may be negative (a deficit).
func (m Money) Sub(o Money) Money {
	return Money{Paise: m.Paise - o.Paise}
}

// Rupees returns the amount as a decimal for CSV export and display maths.
func (m Money) Rupees() decimal.Decimal {
	return decimal.New(m.Paise, -2)
}

// String formats as "Rs 1,234.56" with digit grouping, negative amounts as
// "-Rs 1,234.56".
func (m Money) String() string {
	p := m.Paise
	neg := p < 0
	if neg {
		p = -p
	}
	whole := strconv.FormatInt(p/100, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("Rs ")
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	rem := p % 100
	if rem < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(rem, 10))
	return b.String()
}
