package backup

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"bilancio/internal/core"
	"bilancio/internal/log"
	"bilancio/internal/persist/memory"
	"bilancio/internal/store"
)

func TestWriteCSV(t *testing.T) {
	txs := []core.Transaction{
		{
			ID: "a", Type: core.Expense, Amount: core.Money{Cents: 123456},
			Date: core.NewDate(2024, 3, 1), Description: "weekly, groceries", Category: "Food",
		},
		{
			ID: "b", Type: core.Income, Amount: core.Money{Cents: 200000},
			Date: core.NewDate(2024, 3, 5), Description: "March pay", Source: "Salary",
		},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, txs); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Date,Description,Category,Type,Amount" {
		t.Fatalf("header wrong: %q", lines[0])
	}
	if lines[1] != `2024-03-01,"weekly, groceries",Food,expense,1234.56` {
		t.Fatalf("expense row wrong: %q", lines[1])
	}
	if lines[2] != "2024-03-05,March pay,Salary,income,2000.00" {
		t.Fatalf("income row wrong: %q", lines[2])
	}
}

func TestFilenamesDeterministic(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	if got := CSVFilename("Default User", now); got != "expenses_Default User_2024-03-05.csv" {
		t.Fatalf("csv filename %q", got)
	}
	if got := JSONFilename("Alex", now); got != "backup_Alex_2024-03-05.json" {
		t.Fatalf("json filename %q", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	txs := []core.Transaction{
		{ID: "a", Type: core.Expense, Amount: core.Money{Cents: 50000}, Date: core.NewDate(2024, 3, 1), Description: "rent", Category: "Bills", PaymentMethod: "card"},
		{ID: "b", Type: core.Income, Amount: core.Money{Cents: 200000}, Date: core.NewDate(2024, 3, 5), Description: "pay", Source: "Salary"},
	}
	budget := core.Budget{Amount: core.Money{Cents: 100000}, Set: true}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, txs, budget, time.Now()); err != nil {
		t.Fatalf("write json: %v", err)
	}
	parsed, err := Parse(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(parsed.Transactions) != 2 {
		t.Fatalf("transactions lost: %+v", parsed.Transactions)
	}
	for i := range txs {
		if parsed.Transactions[i] != txs[i] {
			t.Fatalf("transaction %d changed: %+v vs %+v", i, parsed.Transactions[i], txs[i])
		}
	}
	if parsed.Budget == nil || parsed.Budget.Amount.Cents != 100000 || !parsed.Budget.Set {
		t.Fatalf("budget changed: %+v", parsed.Budget)
	}
}

func TestJSONUnsetBudgetOmitted(t *testing.T) {
	var buf bytes.Buffer
	txs := []core.Transaction{{ID: "a", Type: core.Income, Amount: core.Money{Cents: 100}, Date: core.NewDate(2024, 1, 1), Source: "Salary"}}
	if err := WriteJSON(&buf, txs, core.Budget{}, time.Now()); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if strings.Contains(buf.String(), `"budget"`) {
		t.Fatalf("unset budget exported: %s", buf.String())
	}
	parsed, err := Parse(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Budget != nil {
		t.Fatalf("budget fabricated on import: %+v", parsed.Budget)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"not json", "{"},
		{"transactions not a sequence", `{"transactions": 5}`},
		{"transactions object", `{"transactions": {"id":"a"}}`},
		{"budget not numeric", `{"transactions": [], "budget": "abc"}`},
		{"budget negative", `{"transactions": [], "budget": -5}`},
		{"nothing present", `{"exportedAt": "2024-03-05T00:00:00Z"}`},
		{"both null", `{"transactions": null, "budget": null}`},
	}
	for _, tc := range cases {
		_, err := Parse(strings.NewReader(tc.doc))
		if !errors.Is(err, ErrFormat) {
			t.Fatalf("%s: expected ErrFormat, got %v", tc.name, err)
		}
	}
}

func TestParseLegacyNumericAmounts(t *testing.T) {
	// Documents written by older exports carry bare numbers.
	doc := `{"transactions": [{"id":"x","type":"expense","amount":500,"date":"2024-03-01","category":"Food"}], "budget": 1000}`
	parsed, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Transactions[0].Amount.Cents != 50000 {
		t.Fatalf("amount cents %d", parsed.Transactions[0].Amount.Cents)
	}
	if parsed.Budget.Amount.Cents != 100000 {
		t.Fatalf("budget cents %d", parsed.Budget.Amount.Cents)
	}
}

func TestImportExportThroughStore(t *testing.T) {
	ctx := context.Background()
	logger := log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
	s, err := store.Open(ctx, memory.New(), store.Options{Logger: logger})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, err := s.AddTransaction(ctx, core.Transaction{Type: core.Expense, Amount: core.Money{Cents: 50000}, Date: core.NewDate(2024, 3, 1), Category: "Food"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.AddTransaction(ctx, core.Transaction{Type: core.Income, Amount: core.Money{Cents: 200000}, Date: core.NewDate(2024, 3, 5), Source: "Salary"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.SetBudget(ctx, core.Money{Cents: 75000}); err != nil {
		t.Fatalf("set budget: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, s.Transactions(), s.Budget(), time.Now()); err != nil {
		t.Fatalf("export: %v", err)
	}

	other, err := store.Open(ctx, memory.New(), store.Options{Logger: logger})
	if err != nil {
		t.Fatalf("open second store: %v", err)
	}
	parsed, err := Parse(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := other.Restore(ctx, parsed.Transactions, parsed.Budget); err != nil {
		t.Fatalf("restore: %v", err)
	}

	want, got := s.Transactions(), other.Transactions()
	if len(want) != len(got) {
		t.Fatalf("collection size changed: %d vs %d", len(want), len(got))
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("transaction %d changed: %+v vs %+v", i, want[i], got[i])
		}
	}
	if s.Budget() != other.Budget() {
		t.Fatalf("budget changed: %+v vs %+v", s.Budget(), other.Budget())
	}
}
