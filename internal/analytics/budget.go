package analytics

// Thresholds on the spent/budget ratio that drive budget status.
const (
	budgetWarningRatio  = 0.8
	budgetDangerRatio   = 1.0
	budgetCriticalRatio = 1.2

	// Progress display is capped beyond the critical threshold.
	maxBudgetProgress = 150
)

// BudgetStatus classifies how far spending has eaten into a monthly limit.
type BudgetStatus string

const (
	BudgetSafe     BudgetStatus = "safe"
	BudgetWarning  BudgetStatus = "warning"
	BudgetDanger   BudgetStatus = "danger"
	BudgetCritical BudgetStatus = "critical"
	BudgetUnknown  BudgetStatus = "unknown"
)

// BudgetProgress returns spending as a percentage of the limit, clamped to
// [0, 150] for display. A zero or absent limit yields 0.
func BudgetProgress(spent, budget float64) float64 {
	if budget == 0 {
		return 0
	}
	progress := spent / budget * 100
	if progress < 0 {
		return 0
	}
	if progress > maxBudgetProgress {
		return maxBudgetProgress
	}
	return progress
}

// BudgetStatusFor classifies spending against a limit: safe below 80%,
// warning below 100%, danger below 120%, critical beyond. A zero limit is
// unclassifiable.
func BudgetStatusFor(spent, budget float64) BudgetStatus {
	if budget == 0 {
		return BudgetUnknown
	}
	switch ratio := spent / budget; {
	case ratio < budgetWarningRatio:
		return BudgetSafe
	case ratio < budgetDangerRatio:
		return BudgetWarning
	case ratio < budgetCriticalRatio:
		return BudgetDanger
	default:
		return BudgetCritical
	}
}
