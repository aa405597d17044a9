package core

import "time"

// Totals are the income and expense sums over a set of transactions and
// their difference. Amounts are exact integer cents, summed in input order.
type Totals struct {
	Income  Money
	Expense Money
	Balance Money
}

// DatePredicate scopes an aggregation to a period. A nil predicate matches
// every transaction.
type DatePredicate func(Date) bool

// InMonth matches dates within the given year and month.
func InMonth(year int, month int) DatePredicate {
	return func(d Date) bool {
		return d.Year() == year && d.Month() == month
	}
}

// CurrentMonth matches dates within the calendar month of now. This is the
// standard dashboard period.
func CurrentMonth(now time.Time) DatePredicate {
	return InMonth(now.Year(), int(now.Month()))
}

// Sum computes Totals over the slice. An empty or fully filtered input
// yields all zeros.
func Sum(txs []Transaction, pred DatePredicate) Totals {
	var t Totals
	for _, tx := range txs {
		if pred != nil && !pred(tx.Date) {
			continue
		}
		switch tx.Type {
		case Income:
			t.Income.Cents += tx.Amount.Cents
		case Expense:
			t.Expense.Cents += tx.Amount.Cents
		}
	}
	t.Balance.Cents = t.Income.Cents - t.Expense.Cents
	return t
}
