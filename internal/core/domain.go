package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionKind = "income"
	Expense TransactionKind = "expense"
)

const (
	Cash   PaymentMethod = "cash"
	Bank   PaymentMethod = "bank"
	Online PaymentMethod = "online"
)

type (
	TransactionKind string

	PaymentMethod string

	// Date is a calendar date with no time-of-day component.
	Date struct {
		time.Time
	}

	// Transaction is a single income or expense entry. Exactly one kind
	// applies; income and expense rows live in separate tables and are
	// never merged at the source.
	Transaction struct {
		ID          int64
		Kind        TransactionKind
		Date        Date
		Amount      Money
		Category    string
		Method      PaymentMethod
		DonorName   string // income only
		Description string
		SectionID   int64 // 0 means unassigned
	}

	// Donor is a registry entry; transactions reference donors by name only.
	Donor struct {
		ID        int64
		Name      string
		Email     string
		Phone     string
		Address   string
		CNIC      string
		IsRegular bool
		Notes     string
		CreatedAt time.Time
	}

	// Section is an organizational sub-unit a transaction can be
	// attributed to (hifz, nazra, hostel, kitchen, ...).
	Section struct {
		ID   int64
		Name string
		Type string
	}
)

// IncomeCategories and ExpenseCategories are the closed category sets;
// order here is the form display order.
var (
	IncomeCategories  = []string{"zakat", "sadaqah", "fitrana", "qurbani", "donation", "other"}
	ExpenseCategories = []string{"salaries", "food", "utilities", "books", "furniture", "stationery", "construction", "repairs", "events", "other"}
)

var (
	ErrInvalidKind     = errors.New("invalid transaction kind")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidMethod   = errors.New("invalid payment method")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyName       = errors.New("empty name")
	ErrNameTooLong     = errors.New("name too long (max 100 characters)")
	ErrTextTooLong     = errors.New("description too long (max 500 characters)")
)

// NewDate builds a Date at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String formats as YYYY-MM-DD, the wire and storage form.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (k TransactionKind) IsValid() bool {
	return k == Income || k == Expense
}

// Categories returns the closed category set for the kind.
func (k TransactionKind) Categories() []string {
	if k == Income {
		return IncomeCategories
	}
	return ExpenseCategories
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case Cash, Bank, Online:
		return true
	}
	return false
}

func validCategory(kind TransactionKind, category string) bool {
	for _, c := range kind.Categories() {
		if c == category {
			return true
		}
	}
	return false
}

func (t Transaction) Validate() error {
	if !t.Kind.IsValid() {
		return ErrInvalidKind
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !validCategory(t.Kind, t.Category) {
		return ErrInvalidCategory
	}
	if !t.Method.IsValid() {
		return ErrInvalidMethod
	}
	if len(t.DonorName) > 100 {
		return ErrNameTooLong
	}
	if len(t.Description) > 500 {
		return ErrTextTooLong
	}
	return nil
}

func (d Donor) Validate() error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > 100 {
		return ErrNameTooLong
	}
	if len(d.Notes) > 500 || len(d.Address) > 500 {
		return ErrTextTooLong
	}
	return nil
}

func (s Section) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(s.Type) == "" {
		return errors.New("empty section type")
	}
	return nil
}
