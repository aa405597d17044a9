// Package persist defines the persistence gateway port. The store writes
// two logical records through it: the ledger state (profiles with their
// transactions and categories) and the per-profile budgets.
package persist

import (
	"context"

	"bilancio/internal/core"
)

type (
	// ProfileRecord is one user context: its transactions in
	// most-recent-first order and its category set in insertion order.
	ProfileRecord struct {
		Name         string             `json:"name"`
		Transactions []core.Transaction `json:"transactions"`
		Categories   []string           `json:"categories"`
	}

	// State is the ledger record. Profiles keep insertion order; Active
	// names exactly one of them.
	State struct {
		Profiles []ProfileRecord `json:"profiles"`
		Active   string          `json:"active"`
	}

	// Gateway is the port for durable storage. Load methods return nil
	// when no record has ever been written; that is a valid initial
	// state, not an error.
	Gateway interface {
		LoadState(ctx context.Context) (*State, error)
		SaveState(ctx context.Context, s *State) error
		LoadBudgets(ctx context.Context) (map[string]core.Budget, error)
		SaveBudgets(ctx context.Context, budgets map[string]core.Budget) error
	}
)

// Clone returns a deep copy so callers can mutate without aliasing stored
// state.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := &State{Active: s.Active, Profiles: make([]ProfileRecord, len(s.Profiles))}
	for i, p := range s.Profiles {
		out.Profiles[i] = ProfileRecord{
			Name:         p.Name,
			Transactions: append([]core.Transaction(nil), p.Transactions...),
			Categories:   append([]string(nil), p.Categories...),
		}
	}
	return out
}

// CloneBudgets deep-copies a budgets record.
func CloneBudgets(budgets map[string]core.Budget) map[string]core.Budget {
	if budgets == nil {
		return nil
	}
	out := make(map[string]core.Budget, len(budgets))
	for name, b := range budgets {
		out[name] = b
	}
	return out
}
