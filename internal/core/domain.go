package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

// FallbackLabel is used when a transaction carries no category or source.
const FallbackLabel = "Other"

type (
	TxType string

	Date struct {
		time.Time
	}

	// Transaction is a single recorded income or expense event. Exactly one
	// of Category (expense) or Source (income) is active, selected by Type.
	Transaction struct {
		ID            string `json:"id"`
		Type          TxType `json:"type"`
		Amount        Money  `json:"amount"`
		Date          Date   `json:"date"`
		Description   string `json:"description,omitempty"`
		Category      string `json:"category,omitempty"`
		Source        string `json:"source,omitempty"`
		PaymentMethod string `json:"paymentMethod,omitempty"`
	}

	// Budget is a monthly spending ceiling. Set distinguishes an explicit
	// zero budget from no budget at all.
	Budget struct {
		Amount Money `json:"amount"`
		Set    bool  `json:"set"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrEmptyName     = errors.New("empty name")
)

const dateLayout = "2006-01-02"

// Valid reports whether the type is one of the two known kinds.
func (t TxType) Valid() bool {
	return t == Income || t == Expense
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Month returns the month as an int (1-12).
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// MonthKey returns the "YYYY-MM" bucket key used by trend views.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return ErrInvalidDate
	}
	d.Time = t
	return nil
}

// Label returns the active grouping label: the category for expenses, the
// source for incomes. Blank labels fall back to FallbackLabel so orphaned
// or unlabeled transactions still render.
func (t Transaction) Label() string {
	label := t.Source
	if t.Type == Expense {
		label = t.Category
	}
	if strings.TrimSpace(label) == "" {
		return FallbackLabel
	}
	return label
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	return t.Date.Validate()
}

// Normalized returns a copy with the type-inactive field cleared, blank
// labels replaced by FallbackLabel and a blank description replaced by the
// label.
func (t Transaction) Normalized() Transaction {
	t.Description = strings.TrimSpace(t.Description)
	t.Category = strings.TrimSpace(t.Category)
	t.Source = strings.TrimSpace(t.Source)
	t.PaymentMethod = strings.TrimSpace(t.PaymentMethod)
	switch t.Type {
	case Expense:
		t.Source = ""
		if t.Category == "" {
			t.Category = FallbackLabel
		}
	case Income:
		t.Category = ""
		t.PaymentMethod = ""
		if t.Source == "" {
			t.Source = FallbackLabel
		}
	}
	if t.Description == "" {
		t.Description = t.Label()
	}
	return t
}

func (b Budget) Validate() error {
	if b.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}
