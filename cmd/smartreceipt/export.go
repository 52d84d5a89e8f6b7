package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartreceipt/backend/internal/insights"
	"github.com/smartreceipt/backend/internal/receipt"
)

var exportOutput string

// exportDocument is the portable dump of everything the app persists.
type exportDocument struct {
	Receipts   []receipt.Receipt  `json:"receipts"`
	Budgets    receipt.Budgets    `json:"budgets"`
	Insights   *insights.Snapshot `json:"insights,omitempty"`
	ExportDate time.Time          `json:"exportDate"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump receipts, budgets and cached insights as one JSON document",
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
		snapshot, err := cli.cache.Get(cmd.Context())
		if err != nil {
			return err
		}

		doc := exportDocument{
			Receipts:   receipts,
			Budgets:    budgets,
			Insights:   snapshot,
			ExportDate: time.Now(),
		}

		if exportOutput == "" {
			return printJSON(cmd, doc)
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(exportOutput, data, 0644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d receipts to %s\n", len(receipts), exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
}
