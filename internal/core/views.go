package core

import "sort"

// FilterAll disables a type or category filter.
const FilterAll = "all"

const (
	SortDateDesc   SortKey = "date-desc"
	SortDateAsc    SortKey = "date-asc"
	SortAmountDesc SortKey = "amount-desc"
	SortAmountAsc  SortKey = "amount-asc"
)

type (
	SortKey string

	// TableFilter selects and orders transactions for table views.
	TableFilter struct {
		Type     string // FilterAll or a TxType value
		Category string // FilterAll or an exact label
		Sort     SortKey
	}
)

// FilterSort applies the type filter, then the category filter (matched
// against the active label, so income sources filter like categories),
// then sorts. The sort is stable: equal keys keep their relative input
// order. An unknown sort key leaves the input order untouched.
func FilterSort(txs []Transaction, f TableFilter) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Type != "" && f.Type != FilterAll && f.Type != string(tx.Type) {
			continue
		}
		if f.Category != "" && f.Category != FilterAll && f.Category != tx.Label() {
			continue
		}
		out = append(out, tx)
	}
	switch f.Sort {
	case SortDateDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[j].Date.Before(out[i].Date.Time) })
	case SortDateAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date.Time) })
	case SortAmountDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Amount.Cents > out[j].Amount.Cents })
	case SortAmountAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Amount.Cents < out[j].Amount.Cents })
	}
	return out
}

const (
	// BreakdownFixedAxis zero-fills every axis label so chart legends stay
	// stable across renders. Labels seen in the data but missing from the
	// axis are appended in first-seen order, so orphans still render.
	BreakdownFixedAxis BreakdownMode = iota
	// BreakdownDynamic emits only labels actually present, in first-seen
	// order, with no zero entries.
	BreakdownDynamic
)

type (
	BreakdownMode int

	// CategoryAmount is an amount aggregated under one label.
	CategoryAmount struct {
		Name   string
		Amount Money
	}
)

// CategoryBreakdown groups transactions of the given type by their active
// label and sums the amounts. The axis is only consulted in fixed-axis
// mode.
func CategoryBreakdown(txs []Transaction, t TxType, mode BreakdownMode, axis []string) []CategoryAmount {
	var out []CategoryAmount
	index := make(map[string]int)
	if mode == BreakdownFixedAxis {
		out = make([]CategoryAmount, 0, len(axis))
		for _, name := range axis {
			if _, ok := index[name]; ok {
				continue
			}
			index[name] = len(out)
			out = append(out, CategoryAmount{Name: name})
		}
	}
	for _, tx := range txs {
		if tx.Type != t {
			continue
		}
		label := tx.Label()
		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, CategoryAmount{Name: label})
		}
		out[i].Amount.Cents += tx.Amount.Cents
	}
	return out
}

// MonthTotals is one month's income and expense sums.
type MonthTotals struct {
	Income  Money
	Expense Money
}

// MonthlyBreakdown buckets transactions of the given year by calendar
// month. Months without transactions stay zero.
func MonthlyBreakdown(txs []Transaction, year int) [12]MonthTotals {
	var out [12]MonthTotals
	for _, tx := range txs {
		if tx.Date.Year() != year {
			continue
		}
		b := &out[tx.Date.Month()-1]
		switch tx.Type {
		case Income:
			b.Income.Cents += tx.Amount.Cents
		case Expense:
			b.Expense.Cents += tx.Amount.Cents
		}
	}
	return out
}

// TrendPoint is one "YYYY-MM" bucket of the all-time trend view.
type TrendPoint struct {
	Label   string
	Income  Money
	Expense Money
}

// MonthYearBreakdown buckets all transactions by "YYYY-MM" across years,
// sorted ascending by key. Lexical order on the key is chronological.
func MonthYearBreakdown(txs []Transaction) []TrendPoint {
	var out []TrendPoint
	index := make(map[string]int)
	for _, tx := range txs {
		key := tx.Date.MonthKey()
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, TrendPoint{Label: key})
		}
		switch tx.Type {
		case Income:
			out[i].Income.Cents += tx.Amount.Cents
		case Expense:
			out[i].Expense.Cents += tx.Amount.Cents
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
