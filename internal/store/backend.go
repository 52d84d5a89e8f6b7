// Package store provides the persistent data-of-record layer: a pluggable
// key-value backend holding three JSON slots (receipts, budgets, insights)
// and typed stores implementing whole-collection read-modify-write on top.
package store

import "context"

// Slot keys in the backing medium. Each slot holds one JSON document.
const (
	ReceiptsSlot = "smartreceipt_receipts"
	BudgetsSlot  = "smartreceipt_budgets"
	InsightsSlot = "smartreceipt_insights"
)

// Backend is the pluggable key-value medium the stores persist into. A write
// replaces the slot's whole value; a read returns it whole. Implementations
// must make a failed Set leave the previously stored value intact.
//
// The layer above performs unversioned read-modify-write, so concurrent
// writers to the same medium race with last-writer-wins at slot granularity.
type Backend interface {
	// Get returns the slot's value. The second return is false when the
	// slot has never been written or was deleted.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set replaces the slot's value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the slot. Deleting an absent slot is not an error.
	Delete(ctx context.Context, key string) error
}
