package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"bilancio/internal/core"
)

// ErrFormat marks a malformed backup document. Parse never returns a
// partially decoded result: a document either passes shape validation as
// a whole or is rejected.
var ErrFormat = errors.New("invalid backup document")

// Parsed is the outcome of a successful Parse. Nil fields were absent
// from the document.
type Parsed struct {
	Transactions []core.Transaction
	Budget       *core.Budget
}

// Parse validates and decodes a backup document: transactions must be a
// sequence and budget a non-negative number, and at least one of the two
// must be present. Per-transaction validation is left to the store's
// restore, which applies the document atomically.
func Parse(r io.Reader) (*Parsed, error) {
	var raw struct {
		Transactions json.RawMessage `json:"transactions"`
		Budget       json.RawMessage `json:"budget"`
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	out := &Parsed{}
	if len(raw.Transactions) > 0 && !isNull(raw.Transactions) {
		txs := []core.Transaction{}
		if err := json.Unmarshal(raw.Transactions, &txs); err != nil {
			return nil, fmt.Errorf("%w: transactions is not a valid sequence: %v", ErrFormat, err)
		}
		out.Transactions = txs
	}
	if len(raw.Budget) > 0 && !isNull(raw.Budget) {
		var amount core.Money
		if err := json.Unmarshal(raw.Budget, &amount); err != nil {
			return nil, fmt.Errorf("%w: budget is not a valid amount: %v", ErrFormat, err)
		}
		out.Budget = &core.Budget{Amount: amount, Set: true}
	}
	if out.Transactions == nil && out.Budget == nil {
		return nil, fmt.Errorf("%w: neither transactions nor budget present", ErrFormat)
	}
	return out, nil
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
