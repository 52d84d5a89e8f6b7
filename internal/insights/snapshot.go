// Package insights caches the externally computed financial-summary document
// with a time-based staleness policy.
package insights

import (
	"encoding/json"
	"time"
)

// Snapshot is the analysis service's summary document. The named fields are
// the advisory shape the service usually returns; the core treats the payload
// as opaque and round-trips any fields it does not know about via Extra.
// ComputedAt is owned by the cache and stamped at write time.
type Snapshot struct {
	TotalSpent            float64  `json:"totalSpent,omitempty"`
	BudgetUtilization     float64  `json:"budgetUtilization,omitempty"`
	TopCategory           string   `json:"topCategory,omitempty"`
	TopMerchant           string   `json:"topMerchant,omitempty"`
	Insights              []string `json:"insights,omitempty"`
	BudgetRecommendations []string `json:"budgetRecommendations,omitempty"`
	SavingOpportunities   []string `json:"savingOpportunities,omitempty"`
	SpendingTrend         string   `json:"spendingTrend,omitempty"`
	UnusualTransactions   []string `json:"unusualTransactions,omitempty"`
	PredictedNextMonth    float64  `json:"predictedNextMonth,omitempty"`
	FinancialHealthScore  float64  `json:"financialHealthScore,omitempty"`

	ComputedAt time.Time `json:"computedAt"`

	// Extra holds fields of the document the named shape does not cover.
	Extra map[string]json.RawMessage `json:"-"`
}

// snapshotAlias breaks the MarshalJSON/UnmarshalJSON recursion.
type snapshotAlias Snapshot

var knownSnapshotFields = map[string]struct{}{
	"totalSpent":            {},
	"budgetUtilization":     {},
	"topCategory":           {},
	"topMerchant":           {},
	"insights":              {},
	"budgetRecommendations": {},
	"savingOpportunities":   {},
	"spendingTrend":         {},
	"unusualTransactions":   {},
	"predictedNextMonth":    {},
	"financialHealthScore":  {},
	"computedAt":            {},
}

// UnmarshalJSON decodes the named fields and preserves everything else in
// Extra.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var alias snapshotAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for name := range knownSnapshotFields {
		delete(fields, name)
	}

	*s = Snapshot(alias)
	if len(fields) > 0 {
		s.Extra = fields
	}
	return nil
}

// MarshalJSON encodes the named fields merged with Extra. Named fields win on
// key collisions.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	named, err := json.Marshal(snapshotAlias(s))
	if err != nil {
		return nil, err
	}
	if len(s.Extra) == 0 {
		return named, nil
	}

	merged := make(map[string]json.RawMessage, len(s.Extra)+len(knownSnapshotFields))
	for name, value := range s.Extra {
		merged[name] = value
	}
	var namedFields map[string]json.RawMessage
	if err := json.Unmarshal(named, &namedFields); err != nil {
		return nil, err
	}
	for name, value := range namedFields {
		merged[name] = value
	}
	return json.Marshal(merged)
}
