package store

import (
	"context"
	"encoding/json"

	"github.com/smartreceipt/backend/internal/receipt"
)

// BudgetStore persists the per-category monthly limits as one JSON object in
// the budgets slot. The record is a singleton: categories are never deleted
// individually, only set or reset wholesale.
type BudgetStore struct {
	backend Backend
}

// NewBudgetStore creates a budget store over the given backend.
func NewBudgetStore(backend Backend) *BudgetStore {
	return &BudgetStore{backend: backend}
}

// Get returns the full budget table. Absent slots and absent categories are
// filled from the default table, so every known category is always present.
func (s *BudgetStore) Get(ctx context.Context) (receipt.Budgets, error) {
	defaults := receipt.DefaultBudgets()

	data, ok, err := s.backend.Get(ctx, BudgetsSlot)
	if err != nil {
		return nil, &PersistenceError{Op: "read budgets", Cause: err}
	}
	if !ok {
		return defaults, nil
	}

	var stored receipt.Budgets
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, &PersistenceError{Op: "decode budgets", Cause: err}
	}

	for cat, amount := range stored {
		if cat.Valid() {
			defaults[cat] = amount
		}
	}
	return defaults, nil
}

// UpdateCategory sets the monthly limit for one category.
func (s *BudgetStore) UpdateCategory(ctx context.Context, category receipt.Category, amount float64) error {
	if !category.Valid() {
		return &receipt.ValidationError{Field: "category", Reason: "is not a known category"}
	}
	if amount < 0 {
		return &receipt.ValidationError{Field: "amount", Reason: "must be non-negative"}
	}

	budgets, err := s.Get(ctx)
	if err != nil {
		return err
	}
	budgets[category] = amount
	return s.persist(ctx, budgets)
}

// Replace overwrites the whole budget table. Unknown categories and negative
// amounts are rejected; categories missing from b fall back to defaults on
// the next read.
func (s *BudgetStore) Replace(ctx context.Context, b receipt.Budgets) error {
	for cat, amount := range b {
		if !cat.Valid() {
			return &receipt.ValidationError{Field: "category", Reason: "is not a known category"}
		}
		if amount < 0 {
			return &receipt.ValidationError{Field: "amount", Reason: "must be non-negative"}
		}
	}
	return s.persist(ctx, b)
}

// Reset restores the entire default budget table.
func (s *BudgetStore) Reset(ctx context.Context) error {
	return s.persist(ctx, receipt.DefaultBudgets())
}

func (s *BudgetStore) persist(ctx context.Context, b receipt.Budgets) error {
	data, err := json.Marshal(b)
	if err != nil {
		return &PersistenceError{Op: "encode budgets", Cause: err}
	}
	if err := s.backend.Set(ctx, BudgetsSlot, data); err != nil {
		return &PersistenceError{Op: "write budgets", Cause: err}
	}
	log.WithField("categories", len(b)).Debug("persisted budget table")
	return nil
}
