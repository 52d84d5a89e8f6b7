package receipt

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ValidationError reports a required receipt field that is missing or
// malformed at the normalization boundary. Callers must not persist the
// document.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid receipt: field %q %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// rawReceipt mirrors the document shape the extraction service claims to
// return. Every field is loosely typed; the service has been seen emitting
// numbers as strings, quantities as floats and items as non-arrays.
type rawReceipt struct {
	ID            any             `json:"id"`
	Merchant      any             `json:"merchant"`
	Date          any             `json:"date"`
	Total         any             `json:"total"`
	Subtotal      any             `json:"subtotal"`
	Tax           any             `json:"tax"`
	Items         json.RawMessage `json:"items"`
	PaymentMethod any             `json:"paymentMethod"`
	CreatedAt     any             `json:"createdAt"`
	UpdatedAt     any             `json:"updatedAt"`
}

type rawItem struct {
	Name     any `json:"name"`
	Quantity any `json:"quantity"`
	Price    any `json:"price"`
	Category any `json:"category"`
}

// Normalize validates and coerces an untrusted receipt document into a
// well-formed Receipt. This is the single trust boundary: nothing downstream
// re-validates a Receipt once it passed here.
//
// Required fields are merchant, date and total; anything else is coerced to a
// defined default. Normalize is idempotent: feeding back the JSON encoding of
// a returned Receipt yields an equal Receipt.
func Normalize(doc []byte) (*Receipt, error) {
	var raw rawReceipt
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, &ValidationError{Field: "document", Reason: "is not a JSON object"}
	}

	merchant, ok := asString(raw.Merchant)
	if !ok || strings.TrimSpace(merchant) == "" {
		return nil, &ValidationError{Field: "merchant", Reason: "is missing or empty"}
	}

	date, ok := asString(raw.Date)
	if !ok || strings.TrimSpace(date) == "" {
		return nil, &ValidationError{Field: "date", Reason: "is missing or empty"}
	}

	total, ok := asNumber(raw.Total)
	if !ok {
		return nil, &ValidationError{Field: "total", Reason: "is missing or not numeric"}
	}
	if total < 0 {
		total = 0
	}

	r := &Receipt{
		Merchant: merchant,
		Date:     date,
		Total:    total,
		Subtotal: asOptionalAmount(raw.Subtotal),
		Tax:      asOptionalAmount(raw.Tax),
		Items:    normalizeItems(raw.Items),
	}
	if id, ok := asString(raw.ID); ok {
		r.ID = id
	}
	if pm, ok := asString(raw.PaymentMethod); ok {
		r.PaymentMethod = pm
	}
	// Timestamps survive re-normalization of an already-persisted receipt;
	// the store assigns them otherwise.
	r.CreatedAt = asTimestamp(raw.CreatedAt)
	r.UpdatedAt = asTimestamp(raw.UpdatedAt)

	return r, nil
}

// normalizeItems coerces the items field to a well-formed slice. Absent or
// non-array input yields an empty slice, never nil.
func normalizeItems(raw json.RawMessage) []LineItem {
	items := []LineItem{}
	if len(raw) == 0 {
		return items
	}
	var rawItems []rawItem
	if err := json.Unmarshal(raw, &rawItems); err != nil {
		return items
	}
	for _, ri := range rawItems {
		item := LineItem{
			Name:     UnknownItemName,
			Quantity: 1,
		}
		if name, ok := asString(ri.Name); ok && name != "" {
			item.Name = name
		}
		if q, ok := asNumber(ri.Quantity); ok && q >= 1 {
			item.Quantity = int(q)
		}
		if p, ok := asNumber(ri.Price); ok && p >= 0 {
			item.Price = p
		}
		cat, _ := asString(ri.Category)
		item.Category = ParseCategory(cat)
		items = append(items, item)
	}
	return items
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	// ParseFloat accepts the NaN and Inf spellings; a non-finite amount is
	// not a number for our purposes and would poison every downstream sum.
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func asOptionalAmount(v any) *float64 {
	n, ok := asNumber(v)
	if !ok || n < 0 {
		return nil
	}
	return &n
}

func asTimestamp(v any) time.Time {
	s, ok := asString(v)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
