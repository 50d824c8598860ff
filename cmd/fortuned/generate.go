package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fortuned-dev/fortuned/pkg/config"
	"github.com/fortuned-dev/fortuned/pkg/fortune"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a single fortune and print it",
	Long: `Run the quote pipeline once and print the result to stdout. Useful
for smoke-testing the external commands without starting the server.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Keep warnings off stdout so the output stays pipeable.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	runner := fortune.NewExecRunner(cfg.Generator.Timeout)
	gen := fortune.New(runner, fortune.Config{
		QuoteCommand:  cfg.Generator.QuoteCommand,
		FormatCommand: cfg.Generator.FormatCommand,
	}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Generator.Timeout)
	defer cancel()

	blob, err := gen.Generate(ctx)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(blob.Content)
	return err
}
