package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBudgetProgress(t *testing.T) {
	assert.Equal(t, 50.0, BudgetProgress(250, 500))
	assert.Equal(t, 100.0, BudgetProgress(500, 500))
	assert.Equal(t, 150.0, BudgetProgress(900, 500), "capped at 150")
	assert.Equal(t, 0.0, BudgetProgress(100, 0), "no limit, no progress")
	assert.Equal(t, 0.0, BudgetProgress(-5, 500))
}

func TestBudgetStatusFor(t *testing.T) {
	tests := []struct {
		spent, budget float64
		expected      BudgetStatus
	}{
		{100, 500, BudgetSafe},
		{399.99, 500, BudgetSafe},
		{400, 500, BudgetWarning},
		{499.99, 500, BudgetWarning},
		{500, 500, BudgetDanger},
		{599.99, 500, BudgetDanger},
		{600, 500, BudgetCritical},
		{1000, 500, BudgetCritical},
		{100, 0, BudgetUnknown},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, BudgetStatusFor(tc.spent, tc.budget),
			"spent=%.2f budget=%.2f", tc.spent, tc.budget)
	}
}
