package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"bilancio/internal/core"
	"bilancio/internal/log"
)

// Restore replaces the active profile's transactions and, when budget is
// non-nil, its budget — all or nothing. Every transaction is validated
// before anything is touched, so a bad document leaves the store exactly
// as it was. A nil transactions slice keeps the current collection.
func (s *Store) Restore(ctx context.Context, transactions []core.Transaction, budget *core.Budget) error {
	replacement := make([]core.Transaction, 0, len(transactions))
	for i, tx := range transactions {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
		id := tx.ID
		tx = tx.Normalized()
		tx.ID = id
		if tx.ID == "" {
			tx.ID = uuid.NewString()
		}
		replacement = append(replacement, tx)
	}
	if budget != nil {
		if err := budget.Validate(); err != nil {
			return fmt.Errorf("budget: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.current()
	if transactions != nil {
		p.transactions = replacement
	}
	if budget != nil {
		p.budget = *budget
	}
	s.revision++

	s.logger.InfoContext(ctx, "ledger restored",
		log.FieldOperation, log.OpRestore,
		log.FieldProfile, p.name,
		log.FieldCount, len(replacement))
	if err := s.saveState(ctx); err != nil {
		return err
	}
	if budget != nil {
		return s.saveBudgets(ctx)
	}
	return nil
}
