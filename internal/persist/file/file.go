// Package file is a JSON-on-disk gateway: one file per logical record in
// a data directory, written atomically via rename.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bilancio/internal/core"
	"bilancio/internal/persist"
)

const (
	stateFile   = "ledger.json"
	budgetsFile = "budgets.json"
)

type Gateway struct {
	dir string
}

// New creates the data directory if needed.
func New(dir string) (*Gateway, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Gateway{dir: dir}, nil
}

func (g *Gateway) LoadState(_ context.Context) (*persist.State, error) {
	var s persist.State
	ok, err := g.read(stateFile, &s)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (g *Gateway) SaveState(_ context.Context, s *persist.State) error {
	return g.write(stateFile, s)
}

func (g *Gateway) LoadBudgets(_ context.Context) (map[string]core.Budget, error) {
	var budgets map[string]core.Budget
	ok, err := g.read(budgetsFile, &budgets)
	if err != nil || !ok {
		return nil, err
	}
	return budgets, nil
}

func (g *Gateway) SaveBudgets(_ context.Context, budgets map[string]core.Budget) error {
	return g.write(budgetsFile, budgets)
}

func (g *Gateway) read(name string, v any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(g.dir, name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

func (g *Gateway) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	tmp := filepath.Join(g.dir, name+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, filepath.Join(g.dir, name)); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
