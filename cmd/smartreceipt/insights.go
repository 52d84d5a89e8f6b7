package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartreceipt/backend/internal/insights"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Manage the cached insight snapshot",
}

var insightsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the cached snapshot if it is still fresh",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := cli.cache.Get(cmd.Context())
		if err != nil {
			return err
		}
		if snapshot == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "no fresh insights cached")
			return nil
		}
		return printJSON(cmd, snapshot)
	},
}

var insightsSaveCmd = &cobra.Command{
	Use:   "save <snapshot.json>",
	Short: "Cache a snapshot produced by the analysis service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var snapshot insights.Snapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			return fmt.Errorf("invalid snapshot document: %w", err)
		}
		stored, err := cli.cache.Put(cmd.Context(), &snapshot)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cached insights computed at %s\n", stored.ComputedAt.Format("2006-01-02 15:04:05"))
		return nil
	},
}

var insightsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop the cached snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.cache.Clear(cmd.Context())
	},
}

func init() {
	insightsCmd.AddCommand(insightsShowCmd, insightsSaveCmd, insightsClearCmd)
}
