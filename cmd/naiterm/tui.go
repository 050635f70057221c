package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hansajasandeepabadalge/naiterm/internal/client/nai"
	"github.com/hansajasandeepabadalge/naiterm/internal/config"
	"github.com/hansajasandeepabadalge/naiterm/internal/db"
	"github.com/hansajasandeepabadalge/naiterm/internal/paths"
	"github.com/hansajasandeepabadalge/naiterm/internal/poll"
	"github.com/hansajasandeepabadalge/naiterm/internal/repository"
	"github.com/hansajasandeepabadalge/naiterm/internal/token"
	"github.com/hansajasandeepabadalge/naiterm/internal/tui"
	"github.com/hansajasandeepabadalge/naiterm/internal/xslog"
	"github.com/hansajasandeepabadalge/naiterm/internal/xsync"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	dir, err := paths.EnsureDir()
	if err != nil {
		return err
	}

	// the TUI owns the terminal, so logs go to a file next to the db
	logFile, err := os.OpenFile(filepath.Join(dir, "naiterm.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	logger := xslog.NewLoggerFromEnv(logFile)

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

	sessionID := uuid.NewString()
	logger.Info("starting", xslog.Version(), xslog.SessionID(sessionID))

	client := nai.New(
		cfg.APIURL,
		tokens,
		nai.WithLogger(logger),
		nai.WithSessionID(sessionID),
		nai.WithTimeout(cfg.RequestTimeout),
	)

	fetcher := xsync.NewFetcher(client, repo, logger)

	dashboardPoller := poll.New(
		fetcher.Dashboard,
		poll.WithInterval[*nai.DashboardSummary](cfg.PollInterval),
		poll.WithLogger[*nai.DashboardSummary](logger),
	)
	operationsPoller := poll.New(
		fetcher.Operations,
		poll.WithInterval[*nai.OperationsData](cfg.PollInterval),
		poll.WithLogger[*nai.OperationsData](logger),
	)
	insightsPoller := poll.New(
		fetcher.Insights,
		poll.WithInterval[*nai.InsightList](cfg.PollInterval),
		poll.WithLogger[*nai.InsightList](logger),
	)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	dashboardPoller.Start(ctx)
	operationsPoller.Start(ctx)
	insightsPoller.Start(ctx)
	defer func() {
		dashboardPoller.Stop()
		operationsPoller.Stop()
		insightsPoller.Stop()
	}()

	deps := tui.Deps{
		Ctx:              ctx,
		Cancel:           cancel,
		Logger:           logger,
		Tokens:           tokens,
		Client:           client,
		Repository:       repo,
		Fetcher:          fetcher,
		DashboardPoller:  dashboardPoller,
		OperationsPoller: operationsPoller,
		InsightsPoller:   insightsPoller,
	}
	model := tui.New(deps)

	p := tea.NewProgram(&model)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	return nil
}
