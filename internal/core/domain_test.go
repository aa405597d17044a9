package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Type:     Expense,
		Amount:   Money{Cents: 1250},
		Date:     NewDate(2024, 3, 1),
		Category: "Food",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Type: "transfer", Amount: Money{Cents: 100}, Date: NewDate(2024, 3, 1)},
		{Type: Expense, Amount: Money{Cents: 0}, Date: NewDate(2024, 3, 1)},
		{Type: Income, Amount: Money{Cents: -5}, Date: NewDate(2024, 3, 1)},
		{Type: Income, Amount: Money{Cents: 100}, Date: Date{Time: time.Time{}}},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTransactionLabel(t *testing.T) {
	cases := []struct {
		tx   Transaction
		want string
	}{
		{Transaction{Type: Expense, Category: "Food", Source: "ignored"}, "Food"},
		{Transaction{Type: Income, Source: "Salary"}, "Salary"},
		{Transaction{Type: Expense}, FallbackLabel},
		{Transaction{Type: Income, Source: "  "}, FallbackLabel},
	}
	for i, tc := range cases {
		if got := tc.tx.Label(); got != tc.want {
			t.Fatalf("case %d: got %q want %q", i, got, tc.want)
		}
	}
}

func TestTransactionNormalized(t *testing.T) {
	tx := Transaction{
		Type:          Expense,
		Amount:        Money{Cents: 100},
		Date:          NewDate(2024, 1, 2),
		Source:        "Salary",
		PaymentMethod: " card ",
	}
	n := tx.Normalized()
	if n.Source != "" {
		t.Fatalf("expense kept source %q", n.Source)
	}
	if n.Category != FallbackLabel {
		t.Fatalf("blank category not defaulted, got %q", n.Category)
	}
	if n.Description != FallbackLabel {
		t.Fatalf("blank description not derived, got %q", n.Description)
	}
	if n.PaymentMethod != "card" {
		t.Fatalf("payment method not trimmed, got %q", n.PaymentMethod)
	}

	in := Transaction{Type: Income, Amount: Money{Cents: 100}, Date: NewDate(2024, 1, 2), Category: "Food", PaymentMethod: "card"}
	n = in.Normalized()
	if n.Category != "" || n.PaymentMethod != "" {
		t.Fatalf("income kept expense-only fields: %+v", n)
	}
	if n.Source != FallbackLabel {
		t.Fatalf("blank source not defaulted, got %q", n.Source)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 3, 5)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-03-05"` {
		t.Fatalf("got %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip changed date: %v != %v", back, d)
	}
	if err := json.Unmarshal([]byte(`"05/03/2024"`), &back); err == nil {
		t.Fatalf("expected error for bad layout")
	}
}
