package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smartreceipt/backend/internal/receipt"
)

// ReceiptStore persists the receipt collection as one JSON array in the
// receipts slot, most-recent-first. Every operation reads, rewrites and
// persists the whole collection; concurrent writers to the same backend race
// with last-writer-wins (accepted limitation, no versioning).
type ReceiptStore struct {
	backend Backend
	now     func() time.Time
	newID   func() string
}

// NewReceiptStore creates a receipt store over the given backend.
func NewReceiptStore(backend Backend) *ReceiptStore {
	return &ReceiptStore{
		backend: backend,
		now:     time.Now,
		newID:   newReceiptID,
	}
}

// newReceiptID generates a collision-resistant receipt id: millisecond
// timestamp plus a random suffix, same scheme the receipts slot has always
// used.
func newReceiptID() string {
	return fmt.Sprintf("receipt_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// load reads and decodes the whole collection. An absent slot is an empty
// collection.
func (s *ReceiptStore) load(ctx context.Context) ([]receipt.Receipt, error) {
	data, ok, err := s.backend.Get(ctx, ReceiptsSlot)
	if err != nil {
		return nil, &PersistenceError{Op: "read receipts", Cause: err}
	}
	if !ok {
		return []receipt.Receipt{}, nil
	}
	var receipts []receipt.Receipt
	if err := json.Unmarshal(data, &receipts); err != nil {
		return nil, &PersistenceError{Op: "decode receipts", Cause: err}
	}
	return receipts, nil
}

// persist serializes and writes the whole collection. On failure the
// previously persisted state is untouched.
func (s *ReceiptStore) persist(ctx context.Context, receipts []receipt.Receipt) error {
	data, err := json.Marshal(receipts)
	if err != nil {
		return &PersistenceError{Op: "encode receipts", Cause: err}
	}
	if err := s.backend.Set(ctx, ReceiptsSlot, data); err != nil {
		return &PersistenceError{Op: "write receipts", Cause: err}
	}
	log.WithField("count", len(receipts)).Debug("persisted receipt collection")
	return nil
}

// Create inserts a normalized receipt at the head of the collection. An id is
// assigned when absent (regenerated until collision-free); createdAt is
// stamped once, updatedAt on this and every later mutation. Returns the
// stored copy.
func (s *ReceiptStore) Create(ctx context.Context, r receipt.Receipt) (*receipt.Receipt, error) {
	receipts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]struct{}, len(receipts))
	for i := range receipts {
		existing[receipts[i].ID] = struct{}{}
	}

	if r.ID == "" {
		id := s.newID()
		for {
			if _, taken := existing[id]; !taken {
				break
			}
			id = s.newID()
		}
		r.ID = id
	} else if _, taken := existing[r.ID]; taken {
		return nil, fmt.Errorf("receipt %s already exists", r.ID)
	}

	now := s.now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
	if r.Items == nil {
		r.Items = []receipt.LineItem{}
	}

	receipts = append([]receipt.Receipt{r}, receipts...)
	if err := s.persist(ctx, receipts); err != nil {
		return nil, err
	}

	stored := r
	return &stored, nil
}

// ReceiptPatch carries the fields of a partial update. Nil pointers leave the
// existing value untouched; ClearSubtotal/ClearTax null the corresponding
// optional amount.
type ReceiptPatch struct {
	Merchant      *string
	Date          *string
	Total         *float64
	Subtotal      *float64
	Tax           *float64
	ClearSubtotal bool
	ClearTax      bool
	Items         *[]receipt.LineItem
	PaymentMethod *string
}

// Update shallow-merges patch into the receipt with the given id and
// refreshes updatedAt. Returns NotFoundError when the id does not exist.
func (s *ReceiptStore) Update(ctx context.Context, id string, patch ReceiptPatch) (*receipt.Receipt, error) {
	receipts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range receipts {
		if receipts[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, &NotFoundError{Kind: "receipt", ID: id}
	}

	r := &receipts[idx]
	if patch.Merchant != nil {
		r.Merchant = *patch.Merchant
	}
	if patch.Date != nil {
		r.Date = *patch.Date
	}
	if patch.Total != nil {
		r.Total = *patch.Total
	}
	if patch.ClearSubtotal {
		r.Subtotal = nil
	} else if patch.Subtotal != nil {
		v := *patch.Subtotal
		r.Subtotal = &v
	}
	if patch.ClearTax {
		r.Tax = nil
	} else if patch.Tax != nil {
		v := *patch.Tax
		r.Tax = &v
	}
	if patch.Items != nil {
		items := make([]receipt.LineItem, len(*patch.Items))
		copy(items, *patch.Items)
		r.Items = items
	}
	if patch.PaymentMethod != nil {
		r.PaymentMethod = *patch.PaymentMethod
	}
	r.UpdatedAt = s.now()

	if err := s.persist(ctx, receipts); err != nil {
		return nil, err
	}

	updated := *r
	return &updated, nil
}

// Delete removes the receipt with the given id and reports whether a removal
// occurred. A missing id is not an error and leaves the collection unchanged.
func (s *ReceiptStore) Delete(ctx context.Context, id string) (bool, error) {
	receipts, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	filtered := receipts[:0]
	for i := range receipts {
		if receipts[i].ID != id {
			filtered = append(filtered, receipts[i])
		}
	}
	if len(filtered) == len(receipts) {
		return false, nil
	}

	if err := s.persist(ctx, filtered); err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the receipt with the given id, or nil when absent.
func (s *ReceiptStore) Get(ctx context.Context, id string) (*receipt.Receipt, error) {
	receipts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range receipts {
		if receipts[i].ID == id {
			r := receipts[i]
			return &r, nil
		}
	}
	return nil, nil
}

// List returns the whole collection in persisted order (most-recent-first).
func (s *ReceiptStore) List(ctx context.Context) ([]receipt.Receipt, error) {
	return s.load(ctx)
}

// Clear removes the entire collection.
func (s *ReceiptStore) Clear(ctx context.Context) error {
	if err := s.backend.Delete(ctx, ReceiptsSlot); err != nil {
		return &PersistenceError{Op: "clear receipts", Cause: err}
	}
	return nil
}
