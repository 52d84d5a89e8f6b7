package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartreceipt/backend/internal/analytics"
	"github.com/smartreceipt/backend/internal/receipt"
)

var summaryPeriod string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show spending totals, category breakdown and budget status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		receipts, err := cli.receipts.List(cmd.Context())
		if err != nil {
			return err
		}
		budgets, err := cli.budgets.Get(cmd.Context())
		if err != nil {
			return err
		}

		period := analytics.ParsePeriod(summaryPeriod)
		now := time.Now()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Receipts:     %d\n", len(receipts))
		fmt.Fprintf(out, "Total spent:  %.2f\n", analytics.TotalSpent(receipts))
		if period != analytics.PeriodAll {
			fmt.Fprintf(out, "Spent (%s): %.2f\n", period, analytics.PeriodSpending(receipts, period, now))
		}

		totals := analytics.CategoryTotals(receipts)
		w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "\nCATEGORY\tSPENT\tBUDGET\tPROGRESS\tSTATUS")
		for _, cat := range receipt.Categories() {
			spent := totals[cat]
			budget := budgets[cat]
			fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.0f%%\t%s\n",
				cat.Label(), spent, budget,
				analytics.BudgetProgress(spent, budget),
				analytics.BudgetStatusFor(spent, budget))
		}
		return w.Flush()
	},
}

func init() {
	summaryCmd.Flags().StringVarP(&summaryPeriod, "period", "p", "all", "Time window: week, month, quarter, year or all")
}
