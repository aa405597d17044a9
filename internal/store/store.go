// Package store owns the mutable ledger: transactions, categories and
// budget for every profile, with exactly one profile active at a time.
// Every successful mutation is written through the persistence gateway
// before the call returns.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"bilancio/internal/core"
	"bilancio/internal/log"
	"bilancio/internal/persist"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrLastProfile   = errors.New("cannot delete the last profile")
)

// DefaultProfile is created when the gateway holds no state yet.
const DefaultProfile = "Default User"

// DefaultCategories seeds new stores and new profiles.
var DefaultCategories = []string{
	"Food", "Transport", "Entertainment", "Shopping",
	"Bills", "Healthcare", "Salary", "Freelance",
}

type (
	profile struct {
		name         string
		transactions []core.Transaction
		categories   []string
		budget       core.Budget
	}

	// Store is safe for use from a single control flow; the mutex only
	// guards against accidental cross-goroutine use.
	Store struct {
		mu       sync.Mutex
		gw       persist.Gateway
		logger   *log.Logger
		seed     []string
		profiles []*profile
		active   int
		revision uint64
	}

	// Options tune store creation. The zero value is usable.
	Options struct {
		Logger *log.Logger
		// SeedCategories replaces DefaultCategories for fresh states and
		// new profiles.
		SeedCategories []string
	}

	// Patch is a partial transaction update. Nil fields keep their
	// current value.
	Patch struct {
		Type          *core.TxType
		Amount        *core.Money
		Date          *core.Date
		Description   *string
		Category      *string
		Source        *string
		PaymentMethod *string
	}

	// Snapshot is a consistent copy of the active profile, suitable for
	// feeding the pure derivation functions. Revision changes whenever
	// any mutation succeeds.
	Snapshot struct {
		Profile      string
		Revision     uint64
		Transactions []core.Transaction
		Categories   []string
		Budget       core.Budget
	}
)

// Open loads stored state through the gateway, falling back to a default
// profile with seed categories when nothing has been persisted yet.
func Open(ctx context.Context, gw persist.Gateway, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	s := &Store{
		gw:     gw,
		logger: logger.WithComponent(log.ComponentStore),
		seed:   opts.SeedCategories,
	}
	if len(s.seed) == 0 {
		s.seed = DefaultCategories
	}

	state, err := gw.LoadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	budgets, err := gw.LoadBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}

	if state == nil || len(state.Profiles) == 0 {
		s.profiles = []*profile{{name: DefaultProfile, categories: append([]string(nil), s.seed...)}}
		s.active = 0
		s.logger.InfoContext(ctx, "initialized empty ledger", log.FieldProfile, DefaultProfile)
		return s, nil
	}

	for i, p := range state.Profiles {
		s.profiles = append(s.profiles, &profile{
			name:         p.Name,
			transactions: append([]core.Transaction(nil), p.Transactions...),
			categories:   append([]string(nil), p.Categories...),
			budget:       budgets[p.Name],
		})
		if p.Name == state.Active {
			s.active = i
		}
	}
	s.logger.InfoContext(ctx, "loaded ledger",
		log.FieldProfile, s.profiles[s.active].name,
		log.FieldCount, len(s.profiles))
	return s, nil
}

func (s *Store) current() *profile {
	return s.profiles[s.active]
}

// AddTransaction validates and normalizes the draft, assigns a fresh id,
// inserts at the head of the collection (most-recent-first by insertion)
// and persists.
func (s *Store) AddTransaction(ctx context.Context, draft core.Transaction) (core.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := draft.Normalized()
	tx.ID = uuid.NewString()

	p := s.current()
	p.transactions = append([]core.Transaction{tx}, p.transactions...)
	s.revision++

	s.logger.InfoContext(ctx, "transaction added",
		log.FieldOperation, log.OpAdd,
		log.FieldProfile, p.name,
		log.FieldTransactionID, tx.ID,
		log.FieldTxType, string(tx.Type),
		log.FieldAmountCents, tx.Amount.Cents,
		log.FieldCategory, tx.Label())
	return tx, s.saveState(ctx)
}

// UpdateTransaction merges the patch onto the record with the given id.
// The id itself is immutable. An unknown id yields ErrNotFound; a patch
// producing an invalid transaction is rejected without mutating anything.
func (s *Store) UpdateTransaction(ctx context.Context, id string, patch Patch) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.current()
	i := indexByID(p.transactions, id)
	if i < 0 {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}

	tx := p.transactions[i]
	if patch.Type != nil {
		tx.Type = *patch.Type
	}
	if patch.Amount != nil {
		tx.Amount = *patch.Amount
	}
	if patch.Date != nil {
		tx.Date = *patch.Date
	}
	if patch.Description != nil {
		tx.Description = *patch.Description
	}
	if patch.Category != nil {
		tx.Category = *patch.Category
	}
	if patch.Source != nil {
		tx.Source = *patch.Source
	}
	if patch.PaymentMethod != nil {
		tx.PaymentMethod = *patch.PaymentMethod
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	tx = tx.Normalized()
	tx.ID = id

	p.transactions[i] = tx
	s.revision++

	s.logger.InfoContext(ctx, "transaction updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldProfile, p.name,
		log.FieldTransactionID, id)
	return tx, s.saveState(ctx)
}

// DeleteTransaction removes by id and reports whether a record was found.
// Nothing is persisted when the id is unknown.
func (s *Store) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.current()
	i := indexByID(p.transactions, id)
	if i < 0 {
		return false, nil
	}
	p.transactions = append(p.transactions[:i], p.transactions[i+1:]...)
	s.revision++

	s.logger.InfoContext(ctx, "transaction deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldProfile, p.name,
		log.FieldTransactionID, id)
	return true, s.saveState(ctx)
}

// Transactions returns a copy of the active profile's collection in
// insertion order (most recent first).
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.current().transactions...)
}

// AddCategory appends a new category name. Names are unique
// case-sensitively; a duplicate yields ErrAlreadyExists.
func (s *Store) AddCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.ErrEmptyName
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.current()
	for _, c := range p.categories {
		if c == name {
			return fmt.Errorf("category %s: %w", name, ErrAlreadyExists)
		}
	}
	p.categories = append(p.categories, name)
	s.revision++

	s.logger.InfoContext(ctx, "category added",
		log.FieldOperation, log.OpAdd,
		log.FieldProfile, p.name,
		log.FieldCategory, name)
	return s.saveState(ctx)
}

// DeleteCategory removes the category if present. Transactions referencing
// it are left untouched; their label keeps rendering.
func (s *Store) DeleteCategory(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.current()
	for i, c := range p.categories {
		if c == name {
			p.categories = append(p.categories[:i], p.categories[i+1:]...)
			s.revision++
			s.logger.InfoContext(ctx, "category deleted",
				log.FieldOperation, log.OpDelete,
				log.FieldProfile, p.name,
				log.FieldCategory, name)
			return true, s.saveState(ctx)
		}
	}
	return false, nil
}

// Categories returns a copy of the active profile's category set in
// insertion order.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.current().categories...)
}

// SetBudget replaces the active profile's monthly ceiling. Zero is a
// valid, explicitly set budget; negative amounts are rejected.
func (s *Store) SetBudget(ctx context.Context, amount core.Money) error {
	if amount.Cents < 0 {
		return core.ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.current()
	p.budget = core.Budget{Amount: amount, Set: true}
	s.revision++

	s.logger.InfoContext(ctx, "budget set",
		log.FieldProfile, p.name,
		log.FieldBudgetCents, amount.Cents)
	return s.saveBudgets(ctx)
}

// ClearBudget returns the active profile to the "no budget set" state.
func (s *Store) ClearBudget(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.current()
	p.budget = core.Budget{}
	s.revision++

	s.logger.InfoContext(ctx, "budget cleared", log.FieldProfile, p.name)
	return s.saveBudgets(ctx)
}

// Budget returns the active profile's budget.
func (s *Store) Budget() core.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current().budget
}

// Snapshot returns a consistent copy of the active profile.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.current()
	return Snapshot{
		Profile:      p.name,
		Revision:     s.revision,
		Transactions: append([]core.Transaction(nil), p.transactions...),
		Categories:   append([]string(nil), p.categories...),
		Budget:       p.budget,
	}
}

// Revision reports the mutation counter. It increases on every successful
// mutation, so derived views can key caches on it.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

func indexByID(txs []core.Transaction, id string) int {
	for i, tx := range txs {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

// saveState persists the ledger record. Callers hold the mutex. The
// in-memory mutation stands even when the write fails; the error is
// surfaced so the caller can react.
func (s *Store) saveState(ctx context.Context) error {
	state := &persist.State{Active: s.current().name}
	for _, p := range s.profiles {
		state.Profiles = append(state.Profiles, persist.ProfileRecord{
			Name:         p.name,
			Transactions: append([]core.Transaction(nil), p.transactions...),
			Categories:   append([]string(nil), p.categories...),
		})
	}
	if err := s.gw.SaveState(ctx, state); err != nil {
		s.logger.ErrorContext(ctx, "state write failed", log.FieldError, err.Error())
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

func (s *Store) saveBudgets(ctx context.Context) error {
	budgets := make(map[string]core.Budget, len(s.profiles))
	for _, p := range s.profiles {
		if p.budget.Set {
			budgets[p.name] = p.budget
		}
	}
	if err := s.gw.SaveBudgets(ctx, budgets); err != nil {
		s.logger.ErrorContext(ctx, "budgets write failed", log.FieldError, err.Error())
		return fmt.Errorf("persist budgets: %w", err)
	}
	return nil
}
