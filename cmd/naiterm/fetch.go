package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hansajasandeepabadalge/naiterm/internal/client/nai"
	"github.com/hansajasandeepabadalge/naiterm/internal/config"
	"github.com/hansajasandeepabadalge/naiterm/internal/db"
	"github.com/hansajasandeepabadalge/naiterm/internal/paths"
	"github.com/hansajasandeepabadalge/naiterm/internal/repository"
	"github.com/hansajasandeepabadalge/naiterm/internal/token"
	"github.com/hansajasandeepabadalge/naiterm/internal/xslog"
	"github.com/hansajasandeepabadalge/naiterm/internal/xsync"
)

func fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch everything once and print it",
		Long:  "Runs one fetch of every resource through the cache-backed fetcher to verify the client works.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			if _, err := paths.EnsureDir(); err != nil {
				return err
			}

			dbPath, err := paths.DB()
			if err != nil {
				return err
			}

			sqlDB, err := db.Open(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = sqlDB.Close() }()

			tokens := token.NewSQLiteStore(sqlDB)
			repo := repository.New(sqlDB)

			logger := xslog.NewLoggerFromEnv(os.Stderr)
			client := nai.New(cfg.APIURL, tokens, nai.WithLogger(logger), nai.WithTimeout(cfg.RequestTimeout))
			fetcher := xsync.NewFetcher(client, repo, logger)

			var failures int

			fmt.Println("\n[Fetcher.Dashboard]")
			dashboard, err := fetcher.Dashboard(ctx)
			if err != nil {
				fmt.Printf("  ERROR: %v\n", err)
				failures++
			} else {
				fmt.Printf("  OK: %d indicators, %d pipeline stages, %d active sources\n",
					len(dashboard.Indicators), len(dashboard.PipelineStages), dashboard.ActiveSources)
			}

			fmt.Println("\n[Fetcher.Operations]")
			operations, err := fetcher.Operations(ctx)
			if err != nil {
				fmt.Printf("  ERROR: %v\n", err)
				failures++
			} else {
				fmt.Printf("  OK: total=%d, critical=%d, warning=%d\n",
					operations.Total, operations.CriticalCount, operations.WarningCount)
			}

			fmt.Println("\n[Fetcher.Insights]")
			insights, err := fetcher.Insights(ctx)
			if err != nil {
				fmt.Printf("  ERROR: %v\n", err)
				failures++
			} else {
				fmt.Printf("  OK: %d insights\n", len(insights.Insights))
				for _, insight := range insights.Insights {
					fmt.Printf("    - [%s/%s] %s\n", insight.Category, insight.Severity, insight.Title)
				}
			}

			for _, category := range nai.Categories() {
				fmt.Printf("\n[Fetcher.Indicators] category=%s\n", category)
				indicators, err := fetcher.Indicators(ctx, category)
				if err != nil {
					fmt.Printf("  ERROR: %v\n", err)
					failures++
					continue
				}
				fmt.Printf("  OK: %d indicators\n", len(indicators))
				for _, ind := range indicators {
					fmt.Printf("    - %s: %.2f (%s)\n", ind.Name, ind.CurrentValue, ind.Trend)
				}
			}

			state, err := repo.SyncState.Get(ctx)
			if err != nil {
				fmt.Printf("\nERROR reading sync state: %v\n", err)
				failures++
			} else if state.LastPoll != nil {
				fmt.Printf("\nLast poll recorded: %s\n", state.LastPoll.Format("2006-01-02 15:04:05"))
			}

			if failures > 0 {
				return fmt.Errorf("%d fetches failed", failures)
			}
			return nil
		},
	}
}
