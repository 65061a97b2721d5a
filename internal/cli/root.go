// Package cli holds the gosurvey command tree.
package cli

import (
	"context"
	"fmt"
	"os"

	"gosurvey/internal/config"
	"gosurvey/internal/container"
	"gosurvey/internal/logging"

	"github.com/spf13/cobra"
)

// Execute runs the root command
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gosurvey",
		Short:         "Survey participation dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), false)
		},
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newRefreshCmd(),
		newMigrateCmd(),
		newReportCmd(),
	)
	return rootCmd
}

// setup loads configuration and the logger and builds the container. With
// withDB the cache database is opened and migrated.
func setup(ctx context.Context, withDB bool) (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Init(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})

	c, err := container.New(cfg)
	if err != nil {
		return nil, err
	}
	if withDB {
		if err := c.OpenDatabase(ctx); err != nil {
			return nil, err
		}
	}
	if err := c.InitServices(); err != nil {
		c.Shutdown(ctx)
		return nil, err
	}
	return c, nil
}
