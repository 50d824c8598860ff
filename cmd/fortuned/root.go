package main

import "github.com/spf13/cobra"

const version = "0.2.0"

var (
	// configPath is the CLI --config flag value, shared by subcommands.
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "fortuned",
	Short: "fortuned - text-art fortune server",
	Long: `fortuned is a minimal TCP server that answers every connection with a
freshly generated piece of text art: a random quote, framed by a text-art
formatter when one is installed on the host.`,
	Version: version,
}

func init() {
	rootCmd.SetVersionTemplate("fortuned version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, /etc/fortuned/config.yaml)")
}
