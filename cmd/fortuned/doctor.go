package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fortuned-dev/fortuned/pkg/config"
	"github.com/fortuned-dev/fortuned/pkg/fortune"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the external commands are available",
	Long: `Probe the command search path for the configured quote source and
text-art formatter and report what was found. A missing formatter only
degrades output; a missing quote source makes the server unable to
generate fortunes.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	runner := fortune.NewExecRunner(cfg.Generator.Timeout)

	quotePath, quoteErr := runner.LookPath(cfg.Generator.QuoteCommand)
	if quoteErr != nil {
		fmt.Printf("quote source    %-12s NOT FOUND\n", cfg.Generator.QuoteCommand)
	} else {
		fmt.Printf("quote source    %-12s %s\n", cfg.Generator.QuoteCommand, quotePath)
	}

	formatPath, formatErr := runner.LookPath(cfg.Generator.FormatCommand)
	if formatErr != nil {
		fmt.Printf("formatter       %-12s NOT FOUND (output degrades to plain quotes)\n",
			cfg.Generator.FormatCommand)
	} else {
		fmt.Printf("formatter       %-12s %s\n", cfg.Generator.FormatCommand, formatPath)
	}

	if quoteErr != nil {
		return fmt.Errorf("quote source %q not found on PATH", cfg.Generator.QuoteCommand)
	}
	return nil
}
