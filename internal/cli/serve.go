package cli

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gosurvey/internal/logging"
	"gosurvey/internal/ops"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard, the background refresher and the ops listener",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), noCache)
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "run without the relational cache")
	return cmd
}

func runServe(parent context.Context, noCache bool) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := setup(ctx, !noCache)
	if err != nil {
		return err
	}
	defer c.Shutdown(context.Background())
	logger := logging.Default

	if err := c.Snapshots.Bootstrap(ctx); err != nil {
		// keep serving; readiness stays false until a refresh succeeds
		logger.Error("[Serve] no snapshot available yet: %v", err)
	}

	uiServer, err := c.NewUIServer()
	if err != nil {
		return err
	}
	servers := []*http.Server{{
		Addr:              net.JoinHostPort("", c.Config.Server.Port),
		Handler:           uiServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if c.Config.Ops.Enabled {
		servers = append(servers, &http.Server{
			Addr:              net.JoinHostPort("", c.Config.Ops.Port),
			Handler:           ops.NewRouter(c.Snapshots),
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := c.Snapshots.Run(gctx)
		if stderrors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	for _, srv := range servers {
		g.Go(func() error {
			logger.Info("[Serve] listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("[Serve] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("[Serve] shutdown of %s: %v", srv.Addr, err)
			}
		}
		return nil
	})
	return g.Wait()
}
