package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fortuned-dev/fortuned/pkg/admin"
	"github.com/fortuned-dev/fortuned/pkg/config"
	"github.com/fortuned-dev/fortuned/pkg/debug"
	"github.com/fortuned-dev/fortuned/pkg/fortune"
	"github.com/fortuned-dev/fortuned/pkg/history"
	"github.com/fortuned-dev/fortuned/pkg/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the fortune server",
	Long: `Start the fortune server on the configured port. Each accepted
connection receives one freshly generated fortune and is closed.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Logs go to stdout as JSON for the external log collector.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: debug.Level(),
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	runner := fortune.NewExecRunner(cfg.Generator.Timeout)
	gen := fortune.New(runner, fortune.Config{
		QuoteCommand:  cfg.Generator.QuoteCommand,
		FormatCommand: cfg.Generator.FormatCommand,
	}, logger)

	var ring *history.Ring
	if cfg.History.MaxSize > 0 {
		ring = history.New(cfg.History.MaxSize)
	}

	srv := server.New(gen, ring, server.Config{
		Port:            cfg.Server.Port,
		WriteTimeout:    cfg.Server.WriteTimeout,
		GenerateTimeout: cfg.Generator.Timeout,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("fortune server starting",
			"port", cfg.Server.Port,
			"quote_command", cfg.Generator.QuoteCommand,
			"format_command", cfg.Generator.FormatCommand,
			"formatter_available", gen.CanFormat())
		if err := srv.ListenAndServe(ctx); err != nil {
			errCh <- err
		}
	}()

	if cfg.Admin.Enabled {
		adm := admin.New(gen, ring, admin.Config{
			Port:           cfg.Admin.Port,
			MetricsEnabled: cfg.Admin.Metrics.Enabled,
			MetricsPath:    cfg.Admin.Metrics.Path,
		}, logger)
		go func() {
			if err := adm.ListenAndServe(ctx); err != nil {
				errCh <- fmt.Errorf("admin listener: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		return nil
	case err := <-errCh:
		logger.Error("server failed", "error", err)
		return err
	}
}
