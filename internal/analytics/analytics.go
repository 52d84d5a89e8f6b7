// Package analytics computes derived views over a receipt collection:
// totals, category breakdowns, time-windowed spend, search and ordering.
// Every function is pure and total — empty collections, missing optional
// fields and unparseable dates fall back to zeros and defaults, never errors.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/smartreceipt/backend/internal/receipt"
)

// Period selects the time window for PeriodSpending.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
	PeriodAll     Period = "all"
)

// ParsePeriod coerces a period tag, defaulting to PeriodAll.
func ParsePeriod(s string) Period {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodWeek:
		return PeriodWeek
	case PeriodMonth:
		return PeriodMonth
	case PeriodQuarter:
		return PeriodQuarter
	case PeriodYear:
		return PeriodYear
	default:
		return PeriodAll
	}
}

// TotalSpent sums receipt totals in stored order, so repeated calls over the
// same collection produce bit-identical results.
func TotalSpent(receipts []receipt.Receipt) float64 {
	var total float64
	for i := range receipts {
		total += receipts[i].Total
	}
	return total
}

// CategoryTotals sums line-item prices per category across all receipts,
// iterating receipts and items in stored order. Receipts without items
// contribute nothing; the result only contains categories that appeared.
func CategoryTotals(receipts []receipt.Receipt) map[receipt.Category]float64 {
	totals := make(map[receipt.Category]float64)
	for i := range receipts {
		for _, item := range receipts[i].Items {
			totals[item.Category] += item.Price
		}
	}
	return totals
}

// PeriodSpending sums totals of receipts falling inside the window relative
// to now. Week is a rolling 7 days; month, quarter and year are calendar
// aligned (quarters are 3-month blocks starting January). Receipts whose
// dates do not parse are excluded from every window except PeriodAll.
func PeriodSpending(receipts []receipt.Receipt, period Period, now time.Time) float64 {
	var total float64
	for i := range receipts {
		r := &receipts[i]
		if period == PeriodAll {
			total += r.Total
			continue
		}
		date, ok := r.ParsedDate()
		if !ok {
			continue
		}
		if inPeriod(date, period, now) {
			total += r.Total
		}
	}
	return total
}

func inPeriod(date time.Time, period Period, now time.Time) bool {
	switch period {
	case PeriodWeek:
		return !date.Before(now.AddDate(0, 0, -7))
	case PeriodMonth:
		return date.Year() == now.Year() && date.Month() == now.Month()
	case PeriodQuarter:
		return date.Year() == now.Year() && quarterOf(date.Month()) == quarterOf(now.Month())
	case PeriodYear:
		return date.Year() == now.Year()
	default:
		return true
	}
}

func quarterOf(m time.Month) int {
	return (int(m) - 1) / 3
}

// Search filters receipts by a case-insensitive substring match against the
// merchant name, any line-item name, or any line-item category. A blank query
// returns the input slice unchanged; otherwise the query matches verbatim,
// surrounding whitespace included. The input is never mutated.
func Search(receipts []receipt.Receipt, query string) []receipt.Receipt {
	if strings.TrimSpace(query) == "" {
		return receipts
	}
	query = strings.ToLower(query)

	var matched []receipt.Receipt
	for i := range receipts {
		if matchesQuery(&receipts[i], query) {
			matched = append(matched, receipts[i])
		}
	}
	return matched
}

func matchesQuery(r *receipt.Receipt, query string) bool {
	if strings.Contains(strings.ToLower(r.Merchant), query) {
		return true
	}
	for _, item := range r.Items {
		if strings.Contains(strings.ToLower(item.Name), query) {
			return true
		}
		if strings.Contains(string(item.Category), query) {
			return true
		}
	}
	return false
}

// Order selects the direction for SortByDate.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// SortByDate returns a copy of receipts stably sorted by calendar date,
// descending unless order is OrderAsc. Receipts with unparseable dates sort
// as the Unix epoch, so they gather at the old end of either ordering.
func SortByDate(receipts []receipt.Receipt, order Order) []receipt.Receipt {
	type keyed struct {
		r receipt.Receipt
		k int64
	}
	entries := make([]keyed, len(receipts))
	for i := range receipts {
		entries[i] = keyed{r: receipts[i]}
		if date, ok := receipts[i].ParsedDate(); ok {
			entries[i].k = date.Unix()
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if order == OrderAsc {
			return entries[i].k < entries[j].k
		}
		return entries[i].k > entries[j].k
	})

	sorted := make([]receipt.Receipt, len(entries))
	for i := range entries {
		sorted[i] = entries[i].r
	}
	return sorted
}

// CategoryItem is a line item joined with its parent receipt's identity, as
// returned by GroupByCategory.
type CategoryItem struct {
	receipt.LineItem
	ReceiptID string
	Date      string
}

// GroupByCategory collects every line item under its category tag, preserving
// stored iteration order within each group.
func GroupByCategory(receipts []receipt.Receipt) map[receipt.Category][]CategoryItem {
	groups := make(map[receipt.Category][]CategoryItem)
	for i := range receipts {
		for _, item := range receipts[i].Items {
			groups[item.Category] = append(groups[item.Category], CategoryItem{
				LineItem:  item,
				ReceiptID: receipts[i].ID,
				Date:      receipts[i].Date,
			})
		}
	}
	return groups
}

// PercentageChange returns the percent change from previous to current, or 0
// when previous is 0.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
