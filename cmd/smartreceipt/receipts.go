package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartreceipt/backend/internal/analytics"
	"github.com/smartreceipt/backend/internal/receipt"
)

var listSort string

var ingestCmd = &cobra.Command{
	Use:   "ingest <document.json>",
	Short: "Normalize an extracted receipt document and store it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		r, err := receipt.Normalize(doc)
		if err != nil {
			return err
		}
		log.WithFields(map[string]interface{}{
			"merchant":  r.Merchant,
			"suggested": receipt.GuessMerchantCategory(r.Merchant),
		}).Debug("normalized receipt document")

		stored, err := cli.receipts.Create(cmd.Context(), *r)
		if err != nil {
			return err
		}
		return printJSON(cmd, stored)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored receipts, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		receipts, err := cli.receipts.List(cmd.Context())
		if err != nil {
			return err
		}
		switch listSort {
		case "":
		case "asc":
			receipts = analytics.SortByDate(receipts, analytics.OrderAsc)
		case "desc":
			receipts = analytics.SortByDate(receipts, analytics.OrderDesc)
		default:
			return fmt.Errorf("unknown sort order %q: must be asc or desc", listSort)
		}
		return printJSON(cmd, receipts)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find receipts by merchant, item name or item category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		receipts, err := cli.receipts.List(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, analytics.Search(receipts, args[0]))
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <receipt-id>",
	Short: "Remove a receipt from the collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := cli.receipts.Delete(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !removed {
			log.WithField("id", args[0]).Warn("no receipt with that id")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listSort, "sort", "s", "", "Sort by date (asc or desc) instead of stored order")
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
