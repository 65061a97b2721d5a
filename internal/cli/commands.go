package cli

import (
	"encoding/json"
	"fmt"

	"gosurvey/app"
	"gosurvey/internal/migration"
	"gosurvey/internal/report"

	"github.com/spf13/cobra"
)

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Fetch every survey tab once and store it in the cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := setup(ctx, true)
			if err != nil {
				return err
			}
			defer c.Shutdown(ctx)

			st, err := c.Snapshots.Refresh(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "snapshot %s: %d rows from %s (hash %s)\n",
				st.Snapshot.ID, st.Snapshot.RowCount(), st.Snapshot.Source, st.Snapshot.Hash.Short())
			for _, tab := range st.Snapshot.Tabs() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-8s %4d rows, %d skipped\n",
					tab.Stage, len(tab.Rows), st.Snapshot.Skipped(tab.Stage))
			}
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the cache schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			// OpenDatabase applies the schema
			c, err := setup(ctx, true)
			if err != nil {
				return err
			}
			defer c.Shutdown(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "schema %s applied to %s\n", migration.NewRunner().Version(), c.Config.Database.Driver)
			return nil
		},
	}
}

// reportOutput is what the report command prints
type reportOutput struct {
	Organization *app.OrganizationView `json:"organization"`
	Insights     []report.Insight      `json:"insights"`
}

func newReportCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "report <organization>",
		Short: "Print one organization's report and the insight fragments as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := setup(ctx, true)
			if err != nil {
				return err
			}
			defer c.Shutdown(ctx)

			if offline {
				if err := c.Snapshots.Bootstrap(ctx); err != nil {
					return err
				}
			} else if _, err := c.Snapshots.Refresh(ctx); err != nil {
				return err
			}

			view, err := c.Dashboard.Organization(ctx, args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(reportOutput{Organization: view, Insights: c.Dashboard.Insights(ctx)})
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "fall back to the cached snapshot when the spreadsheet is unreachable")
	return cmd
}
