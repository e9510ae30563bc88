package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobspy-client/services"
)

func newSearchCommand() *cobra.Command {
	var (
		query   queryOptions
		filter  filterOptions
		pages   int
		export  string
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "search TERM...",
		Short: "Run one search and print the results",
		Long: `Search queries the job boards once through the search service, applies the
local filters and prints the requested number of pages.

Examples:
  jobspy-client search golang developer -l Berlin --site linkedin,indeed
  jobspy-client search engineer --filter-remote --min-salary 90000 --pages 2
  jobspy-client search "data analyst" --export csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newCommandDeps(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			defer deps.Close()

			q, err := query.build(args, deps.Config.DefaultCountry)
			if err != nil {
				return err
			}

			o := services.NewOrchestrator(deps.Client, services.NewFilter(deps.Logger), services.DefaultPageSize, deps.Logger)
			if _, err := o.Search(cmd.Context(), q); err != nil {
				return err
			}

			snap := o.SetFilter(filter.spec(cmd.Flags()))
			for i := 1; i < pages && snap.HasMore; i++ {
				snap, _ = o.LoadMore()
			}

			out := cmd.OutOrStdout()
			renderSnapshot(out, snap, deps.Insights)
			if summary {
				deps.Insights.Print(out, deps.Insights.Generate(snap.Results, snap.Filtered))
			}

			if export != "" {
				return runExport(cmd.Context(), deps, out, export, snap)
			}
			return nil
		},
	}

	query.bind(cmd.Flags())
	filter.bind(cmd.Flags())
	cmd.Flags().IntVarP(&pages, "pages", "p", 1, "number of result pages to show")
	cmd.Flags().StringVarP(&export, "export", "e", "", "export the filtered results: json, csv, server-csv or postgres")
	cmd.Flags().BoolVar(&summary, "summary", false, "print source, salary and rating statistics")

	return cmd
}
