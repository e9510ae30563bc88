// Package cmd implements the jobspy-client command-line interface.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// cfgFile holds the path to the optional configuration file.
	cfgFile string

	// debug forces debug logging regardless of LOG_LEVEL.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "jobspy-client",
		Short: "Search, refine and export job listings",
		Long: `jobspy-client queries a JobSpy search service once, then filters,
pages through and exports the result set locally without querying again.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, optional)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jobspy-client version %s\n", version)
		},
	})

	rootCmd.AddCommand(newSearchCommand())
	rootCmd.AddCommand(newMetaCommand())
	rootCmd.AddCommand(newShellCommand())
}

var version = "dev"
