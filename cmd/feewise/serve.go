package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/feewise/feewise/cmd"
	"github.com/feewise/feewise/pkg/cron"
	"github.com/feewise/feewise/pkg/db"
	"github.com/feewise/feewise/pkg/db/migrate"
	"github.com/feewise/feewise/pkg/jobs"
	"github.com/feewise/feewise/pkg/stats"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:                "serve",
	Short:              "Start the metrics server and background jobs",
	Args:               cobra.NoArgs,
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
	RunE: func(c *cobra.Command, _ []string) error {
		ctx := c.Context()
		logger := log.FromContext(ctx).WithPrefix("serve")

		dbx := db.FromContext(ctx)
		if err := migrate.Migrate(ctx, dbx); err != nil {
			return fmt.Errorf("migration error: %w", err)
		}

		sched := cron.NewScheduler(ctx)
		for name, job := range jobs.List() {
			logger.Debug("registering job", "name", name)
			id, err := sched.AddFunc(job.Runner.Spec(ctx), job.Runner.Func(ctx))
			if err != nil {
				return fmt.Errorf("add job %q: %w", name, err)
			}
			job.ID = id
		}

		ss, err := stats.NewStatsServer(ctx)
		if err != nil {
			return fmt.Errorf("create stats server: %w", err)
		}

		done := make(chan os.Signal, 1)
		signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

		var g errgroup.Group
		g.Go(func() error {
			sched.Start()
			return nil
		})
		g.Go(func() error {
			if err := ss.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		<-done

		sctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		sched.Shutdown()
		if err := ss.Shutdown(sctx); err != nil {
			return err
		}

		return g.Wait()
	},
}
