// Package sqlite persists the gateway records as JSON documents in a
// single-table SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"bilancio/internal/core"
	"bilancio/internal/persist"

	_ "modernc.org/sqlite"
)

const (
	recordState   = "ledger"
	recordBudgets = "budgets"
)

type Gateway struct {
	db *sql.DB
}

// New opens (or creates) the database file and brings the schema up to
// date.
func New(dbPath string) (*Gateway, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Gateway{db: db}, nil
}

func (g *Gateway) Close() error {
	if g.db != nil {
		return g.db.Close()
	}
	return nil
}

func (g *Gateway) LoadState(ctx context.Context) (*persist.State, error) {
	var s persist.State
	ok, err := g.load(ctx, recordState, &s)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (g *Gateway) SaveState(ctx context.Context, s *persist.State) error {
	return g.save(ctx, recordState, s)
}

func (g *Gateway) LoadBudgets(ctx context.Context) (map[string]core.Budget, error) {
	var budgets map[string]core.Budget
	ok, err := g.load(ctx, recordBudgets, &budgets)
	if err != nil || !ok {
		return nil, err
	}
	return budgets, nil
}

func (g *Gateway) SaveBudgets(ctx context.Context, budgets map[string]core.Budget) error {
	return g.save(ctx, recordBudgets, budgets)
}

func (g *Gateway) load(ctx context.Context, name string, v any) (bool, error) {
	var body string
	err := g.db.QueryRowContext(ctx, `SELECT body FROM records WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load record %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return false, fmt.Errorf("decode record %s: %w", name, err)
	}
	return true, nil
}

func (g *Gateway) save(ctx context.Context, name string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", name, err)
	}
	_, err = g.db.ExecContext(ctx, `
		INSERT INTO records (name, body, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP`,
		name, string(body))
	if err != nil {
		return fmt.Errorf("save record %s: %w", name, err)
	}
	return nil
}
