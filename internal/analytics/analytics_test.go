package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartreceipt/backend/internal/receipt"
)

func makeReceipt(id, date string, total float64, items ...receipt.LineItem) receipt.Receipt {
	return receipt.Receipt{ID: id, Merchant: "Merchant " + id, Date: date, Total: total, Items: items}
}

func TestTotalSpent(t *testing.T) {
	receipts := []receipt.Receipt{
		makeReceipt("a", "2026-08-01", 10),
		makeReceipt("b", "2026-08-02", 20.5),
	}
	assert.Equal(t, 30.5, TotalSpent(receipts))
	assert.Equal(t, 0.0, TotalSpent(nil))
}

func TestCategoryTotals(t *testing.T) {
	receipts := []receipt.Receipt{
		makeReceipt("a", "2026-08-01", 15,
			receipt.LineItem{Name: "Bread", Quantity: 1, Price: 5, Category: receipt.CategoryFood},
			receipt.LineItem{Name: "Milk", Quantity: 2, Price: 10, Category: receipt.CategoryFood},
		),
		makeReceipt("b", "2026-08-02", 7,
			receipt.LineItem{Name: "Ticket", Quantity: 1, Price: 7, Category: receipt.CategoryTransport},
		),
		makeReceipt("c", "2026-08-03", 99),
	}

	totals := CategoryTotals(receipts)
	assert.Equal(t, 15.0, totals[receipt.CategoryFood])
	assert.Equal(t, 7.0, totals[receipt.CategoryTransport])
	assert.Len(t, totals, 2, "itemless receipts contribute no categories")
}

func TestPeriodSpending(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	receipts := []receipt.Receipt{
		makeReceipt("today", "2026-08-20", 1),
		makeReceipt("thisWeek", "2026-08-15", 2),
		makeReceipt("thisMonth", "2026-08-01", 4),
		makeReceipt("thisQuarter", "2026-07-10", 8),
		makeReceipt("thisYear", "2026-02-10", 16),
		makeReceipt("lastYear", "2025-08-20", 32),
		makeReceipt("undated", "not a date", 64),
	}

	tests := []struct {
		period   Period
		expected float64
	}{
		{PeriodWeek, 3},
		{PeriodMonth, 7},
		{PeriodQuarter, 15},
		{PeriodYear, 31},
		{PeriodAll, 127},
	}
	for _, tc := range tests {
		t.Run(string(tc.period), func(t *testing.T) {
			assert.Equal(t, tc.expected, PeriodSpending(receipts, tc.period, now))
		})
	}
}

func TestParsePeriod(t *testing.T) {
	assert.Equal(t, PeriodWeek, ParsePeriod("week"))
	assert.Equal(t, PeriodMonth, ParsePeriod(" MONTH "))
	assert.Equal(t, PeriodAll, ParsePeriod("fortnight"))
	assert.Equal(t, PeriodAll, ParsePeriod(""))
}

func TestSearch(t *testing.T) {
	receipts := []receipt.Receipt{
		{ID: "a", Merchant: "Woolworths", Items: []receipt.LineItem{
			{Name: "Sourdough Bread", Category: receipt.CategoryFood},
		}},
		{ID: "b", Merchant: "Shell", Items: []receipt.LineItem{
			{Name: "Unleaded 91", Category: receipt.CategoryTransport},
		}},
	}

	t.Run("matches merchant", func(t *testing.T) {
		matched := Search(receipts, "wool")
		require.Len(t, matched, 1)
		assert.Equal(t, "a", matched[0].ID)
	})

	t.Run("matches item name case-insensitively", func(t *testing.T) {
		matched := Search(receipts, "BREAD")
		require.Len(t, matched, 1)
		assert.Equal(t, "a", matched[0].ID)
	})

	t.Run("matches item category", func(t *testing.T) {
		matched := Search(receipts, "transport")
		require.Len(t, matched, 1)
		assert.Equal(t, "b", matched[0].ID)
	})

	t.Run("blank query returns input", func(t *testing.T) {
		assert.Len(t, Search(receipts, "   "), 2)
	})

	t.Run("query whitespace is significant", func(t *testing.T) {
		matched := Search(receipts, " bread")
		require.Len(t, matched, 1, "leading space matches the word boundary")
		assert.Equal(t, "a", matched[0].ID)

		assert.Empty(t, Search(receipts, "bread "), "trailing space has nothing to match")
	})

	t.Run("no match returns empty", func(t *testing.T) {
		assert.Empty(t, Search(receipts, "xyzzy"))
	})
}

func TestSortByDate(t *testing.T) {
	receipts := []receipt.Receipt{
		makeReceipt("mid", "2026-08-10", 1),
		makeReceipt("old", "2026-08-01", 1),
		makeReceipt("new", "2026-08-20", 1),
		makeReceipt("undated", "???", 1),
	}

	ids := func(rs []receipt.Receipt) []string {
		out := make([]string, len(rs))
		for i := range rs {
			out[i] = rs[i].ID
		}
		return out
	}

	assert.Equal(t, []string{"new", "mid", "old", "undated"}, ids(SortByDate(receipts, OrderDesc)))
	assert.Equal(t, []string{"undated", "old", "mid", "new"}, ids(SortByDate(receipts, OrderAsc)))
	assert.Equal(t, "mid", receipts[0].ID, "input order untouched")
}

func TestSortByDateIsStable(t *testing.T) {
	receipts := []receipt.Receipt{
		makeReceipt("first", "2026-08-10", 1),
		makeReceipt("second", "2026-08-10", 1),
	}
	sorted := SortByDate(receipts, OrderDesc)
	assert.Equal(t, "first", sorted[0].ID)
	assert.Equal(t, "second", sorted[1].ID)
}

func TestGroupByCategory(t *testing.T) {
	receipts := []receipt.Receipt{
		makeReceipt("a", "2026-08-01", 9,
			receipt.LineItem{Name: "Bread", Price: 4, Category: receipt.CategoryFood},
			receipt.LineItem{Name: "Ticket", Price: 5, Category: receipt.CategoryTransport},
		),
		makeReceipt("b", "2026-08-02", 6,
			receipt.LineItem{Name: "Milk", Price: 6, Category: receipt.CategoryFood},
		),
	}

	groups := GroupByCategory(receipts)
	require.Len(t, groups[receipt.CategoryFood], 2)
	assert.Equal(t, "Bread", groups[receipt.CategoryFood][0].Name)
	assert.Equal(t, "a", groups[receipt.CategoryFood][0].ReceiptID)
	assert.Equal(t, "2026-08-02", groups[receipt.CategoryFood][1].Date)
	require.Len(t, groups[receipt.CategoryTransport], 1)
}

func TestPercentageChange(t *testing.T) {
	assert.Equal(t, 50.0, PercentageChange(150, 100))
	assert.Equal(t, -25.0, PercentageChange(75, 100))
	assert.Equal(t, 0.0, PercentageChange(100, 0))
}
