package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var metaLists = map[string]string{
	"sites":     "Job boards",
	"job-types": "Job types",
	"countries": "Countries",
}

func newMetaCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "meta sites|job-types|countries",
		Short:     "List the options supported by the search service",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"sites", "job-types", "countries"},
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newCommandDeps(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			defer deps.Close()

			name := args[0]
			renderOptions(cmd.OutOrStdout(), metaLists[name], deps.Metadata.Lookup(cmd.Context(), name))
			return nil
		},
	}
}
