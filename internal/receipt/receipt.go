// Package receipt defines the domain model for scanned purchase records and
// the normalization boundary that turns untrusted extraction-service output
// into well-formed entities.
package receipt

import (
	"time"
)

// DateLayout is the calendar-date format carried on receipts. Time of day is
// not modeled.
const DateLayout = "2006-01-02"

// UnknownItemName is the sentinel used for line items the extraction service
// could not read a name for.
const UnknownItemName = "Unknown Item"

// LineItem is one purchased product or service within a receipt.
type LineItem struct {
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Price    float64  `json:"price"`
	Category Category `json:"category"`
}

// Receipt is one recorded purchase event. Instances that entered the system
// through Normalize are trusted downstream; nothing re-validates them.
type Receipt struct {
	ID            string     `json:"id"`
	Merchant      string     `json:"merchant"`
	Date          string     `json:"date"`
	Total         float64    `json:"total"`
	Subtotal      *float64   `json:"subtotal"`
	Tax           *float64   `json:"tax"`
	Items         []LineItem `json:"items"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ParsedDate parses the receipt's calendar date. The second return is false
// when the date does not parse; callers decide their own fallback.
func (r *Receipt) ParsedDate() (time.Time, bool) {
	if t, err := time.Parse(DateLayout, r.Date); err == nil {
		return t, true
	}
	// The extraction service is asked for YYYY-MM-DD but has been seen
	// returning full timestamps.
	if t, err := time.Parse(time.RFC3339, r.Date); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// PaymentMethods is the advisory set of payment method labels. It is not
// enforced anywhere; free text is accepted.
var PaymentMethods = []string{
	"Cash",
	"Credit Card",
	"Debit Card",
	"UPI",
	"Digital Wallet",
	"Bank Transfer",
	"Other",
}
