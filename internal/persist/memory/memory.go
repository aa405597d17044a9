// Package memory is an in-process gateway used as the default backend and
// in tests. Records survive for the lifetime of the process only.
package memory

import (
	"context"
	"sync"

	"bilancio/internal/core"
	"bilancio/internal/persist"
)

type Gateway struct {
	mu      sync.Mutex
	state   *persist.State
	budgets map[string]core.Budget
}

func New() *Gateway {
	return &Gateway{}
}

func (g *Gateway) LoadState(_ context.Context) (*persist.State, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Clone(), nil
}

func (g *Gateway) SaveState(_ context.Context, s *persist.State) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = s.Clone()
	return nil
}

func (g *Gateway) LoadBudgets(_ context.Context) (map[string]core.Budget, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return persist.CloneBudgets(g.budgets), nil
}

func (g *Gateway) SaveBudgets(_ context.Context, budgets map[string]core.Budget) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.budgets = persist.CloneBudgets(budgets)
	return nil
}
