// Command smartreceipt manages the local receipt collection, category
// budgets and cached insights from the terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/smartreceipt/backend/internal/config"
	"github.com/smartreceipt/backend/internal/insights"
	"github.com/smartreceipt/backend/internal/store"
)

var log = logrus.New()

// app wires the configured backend into the stores used by every command.
type app struct {
	cfg      *config.Config
	receipts *store.ReceiptStore
	budgets  *store.BudgetStore
	cache    *insights.Cache
	closers  []func() error
}

var cli app

var rootCmd = &cobra.Command{
	Use:   "smartreceipt",
	Short: "Local data-of-record for scanned receipts, budgets and insights",
	Long: `smartreceipt stores normalized receipt documents, per-category monthly
budgets and the cached insight snapshot, and computes spending summaries
over them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env file is fine; the environment still applies.
		_ = godotenv.Load()

		cli.cfg = config.Load()
		if err := cli.cfg.Validate(); err != nil {
			return err
		}

		if level, err := logrus.ParseLevel(cli.cfg.LogLevel); err == nil {
			log.SetLevel(level)
		}
		store.SetLogger(log)
		insights.SetLogger(log)

		backend, err := openBackend(cmd.Context(), cli.cfg)
		if err != nil {
			return err
		}
		cli.receipts = store.NewReceiptStore(backend)
		cli.budgets = store.NewBudgetStore(backend)
		cli.cache = insights.NewCache(backend, cli.cfg.InsightTTL)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		for _, close := range cli.closers {
			if err := close(); err != nil {
				log.WithError(err).Warn("failed to close backend")
			}
		}
	},
}

func openBackend(ctx context.Context, cfg *config.Config) (store.Backend, error) {
	switch cfg.Backend {
	case "memory":
		return store.NewMemoryBackend(), nil
	case "sqlite":
		backend, err := store.NewSQLiteBackend(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite backend: %w", err)
		}
		cli.closers = append(cli.closers, backend.Close)
		return backend, nil
	case "firestore":
		client, err := firestore.NewClient(ctx, cfg.FirestoreProject)
		if err != nil {
			return nil, fmt.Errorf("opening firestore client: %w", err)
		}
		cli.closers = append(cli.closers, client.Close)
		return store.NewFirestoreBackend(client, cfg.FirestoreCollection), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func main() {
	rootCmd.AddCommand(ingestCmd, listCmd, searchCmd, deleteCmd, summaryCmd)
	rootCmd.AddCommand(budgetCmd, insightsCmd, exportCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
