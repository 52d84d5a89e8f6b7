package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/smartreceipt/backend/internal/receipt"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage per-category monthly budgets",
}

var budgetGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the full budget table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		budgets, err := cli.budgets.Get(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, budgets)
	},
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <category> <amount>",
	Short: "Set the monthly limit for one category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		category := receipt.Category(args[0])
		if !category.Valid() {
			return fmt.Errorf("unknown category %q: must be one of %v", args[0], receipt.Categories())
		}
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[1], err)
		}
		if err := cli.budgets.UpdateCategory(cmd.Context(), category, amount); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s budget set to %.2f\n", category, amount)
		return nil
	},
}

var budgetResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default budget table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.budgets.Reset(cmd.Context()); err != nil {
			return err
		}
		budgets, err := cli.budgets.Get(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, budgets)
	},
}

func init() {
	budgetCmd.AddCommand(budgetGetCmd, budgetSetCmd, budgetResetCmd)
}
