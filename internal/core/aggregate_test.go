package core

import "testing"

func tx(t TxType, cents int64, year, month, day int, label string) Transaction {
	out := Transaction{Type: t, Amount: Money{Cents: cents}, Date: NewDate(year, month, day)}
	if t == Expense {
		out.Category = label
	} else {
		out.Source = label
	}
	return out
}

func TestSumEmpty(t *testing.T) {
	got := Sum(nil, nil)
	if got.Income.Cents != 0 || got.Expense.Cents != 0 || got.Balance.Cents != 0 {
		t.Fatalf("expected zeros, got %+v", got)
	}
	got = Sum(nil, InMonth(2024, 3))
	if got != (Totals{}) {
		t.Fatalf("expected zeros with predicate, got %+v", got)
	}
}

func TestSumMonthScope(t *testing.T) {
	txs := []Transaction{
		tx(Expense, 50000, 2024, 3, 1, "Food"),
		tx(Income, 200000, 2024, 3, 5, "Salary"),
		tx(Expense, 99900, 2024, 4, 1, "Shopping"), // outside March
	}
	got := Sum(txs, InMonth(2024, 3))
	if got.Income.Cents != 200000 || got.Expense.Cents != 50000 || got.Balance.Cents != 150000 {
		t.Fatalf("march totals wrong: %+v", got)
	}

	all := Sum(txs, nil)
	if all.Expense.Cents != 149900 {
		t.Fatalf("unscoped expense wrong: %+v", all)
	}
	if all.Balance.Cents != all.Income.Cents-all.Expense.Cents {
		t.Fatalf("balance not income-expense: %+v", all)
	}
}

func TestSumOrderInvariant(t *testing.T) {
	a := []Transaction{
		tx(Income, 100, 2024, 1, 1, "A"),
		tx(Expense, 30, 2024, 1, 2, "B"),
		tx(Expense, 70, 2024, 1, 3, "C"),
	}
	b := []Transaction{a[2], a[0], a[1]}
	if Sum(a, nil) != Sum(b, nil) {
		t.Fatalf("sum changed under reordering")
	}
}
