package store

import (
	"context"
	"fmt"
	"strings"

	"bilancio/internal/core"
	"bilancio/internal/log"
)

// AddProfile creates a new profile seeded with the category set and makes
// it active.
func (s *Store) AddProfile(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.ErrEmptyName
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexByName(name) >= 0 {
		return fmt.Errorf("profile %s: %w", name, ErrAlreadyExists)
	}
	s.profiles = append(s.profiles, &profile{
		name:       name,
		categories: append([]string(nil), s.seed...),
	})
	s.active = len(s.profiles) - 1
	s.revision++

	s.logger.InfoContext(ctx, "profile added",
		log.FieldOperation, log.OpAdd,
		log.FieldProfile, name)
	return s.saveState(ctx)
}

// RenameProfile changes a profile's name, carrying its transactions,
// categories, budget and active status across.
func (s *Store) RenameProfile(ctx context.Context, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return core.ErrEmptyName
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByName(oldName)
	if i < 0 {
		return fmt.Errorf("profile %s: %w", oldName, ErrNotFound)
	}
	if newName == oldName {
		return nil
	}
	if s.indexByName(newName) >= 0 {
		return fmt.Errorf("profile %s: %w", newName, ErrAlreadyExists)
	}
	s.profiles[i].name = newName
	s.revision++

	s.logger.InfoContext(ctx, "profile renamed",
		log.FieldOperation, log.OpRename,
		log.FieldProfile, newName)
	if err := s.saveState(ctx); err != nil {
		return err
	}
	// The budgets record is keyed by profile name, so a rename rewrites it
	// as well.
	return s.saveBudgets(ctx)
}

// DeleteProfile removes a profile. The last remaining profile cannot be
// deleted. When the active profile is deleted, the first remaining one by
// insertion order becomes active.
func (s *Store) DeleteProfile(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByName(name)
	if i < 0 {
		return fmt.Errorf("profile %s: %w", name, ErrNotFound)
	}
	if len(s.profiles) == 1 {
		return ErrLastProfile
	}
	wasActive := i == s.active
	s.profiles = append(s.profiles[:i], s.profiles[i+1:]...)
	switch {
	case wasActive:
		s.active = 0
	case i < s.active:
		s.active--
	}
	s.revision++

	s.logger.InfoContext(ctx, "profile deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldProfile, name)
	if err := s.saveState(ctx); err != nil {
		return err
	}
	return s.saveBudgets(ctx)
}

// SwitchProfile makes the named profile active.
func (s *Store) SwitchProfile(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByName(name)
	if i < 0 {
		return fmt.Errorf("profile %s: %w", name, ErrNotFound)
	}
	if i == s.active {
		return nil
	}
	s.active = i
	s.revision++

	s.logger.InfoContext(ctx, "profile switched",
		log.FieldOperation, log.OpSwitch,
		log.FieldProfile, name)
	return s.saveState(ctx)
}

// ActiveProfile returns the active profile's name.
func (s *Store) ActiveProfile() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current().name
}

// Profiles returns every profile name in insertion order.
func (s *Store) Profiles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.profiles))
	for i, p := range s.profiles {
		names[i] = p.name
	}
	return names
}

func (s *Store) indexByName(name string) int {
	for i, p := range s.profiles {
		if p.name == name {
			return i
		}
	}
	return -1
}
