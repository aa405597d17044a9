package core

const (
	BandUnset   Band = "unset"
	BandSafe    Band = "safe"
	BandWarning Band = "warning"
	BandDanger  Band = "danger"
)

type (
	// Band classifies budget usage severity.
	Band string

	// Progress describes spend against a monthly budget. Percentage is
	// clamped to 100 and Remaining to zero; the band comes from the
	// unclamped ratio, so overspending is always BandDanger.
	Progress struct {
		Percentage float64
		Remaining  Money
		Band       Band
	}
)

// BudgetProgress derives usage from an expense total and a budget. An
// unset or zero budget yields the zero Progress with BandUnset.
func BudgetProgress(expense Money, budget Budget) Progress {
	if !budget.Set || budget.Amount.Cents <= 0 {
		return Progress{Band: BandUnset}
	}
	ratio := float64(expense.Cents) / float64(budget.Amount.Cents) * 100

	p := Progress{Percentage: ratio}
	if p.Percentage > 100 {
		p.Percentage = 100
	}
	if rem := budget.Amount.Cents - expense.Cents; rem > 0 {
		p.Remaining = Money{Cents: rem}
	}
	switch {
	case ratio >= 90:
		p.Band = BandDanger
	case ratio >= 70:
		p.Band = BandWarning
	default:
		p.Band = BandSafe
	}
	return p
}
