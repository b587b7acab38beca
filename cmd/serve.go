package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-pulse/worker"

	"github.com/spf13/cobra"
)

var serveRunNow bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pipeline on its cron schedule until signalled",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		loc, err := time.LoadLocation(cfg.Pipeline.Timezone)
		if err != nil {
			return fmt.Errorf("invalid pipeline.timezone %q: %w", cfg.Pipeline.Timezone, err)
		}

		r, closeFn, err := buildRunner(cfg, runnerOptions{summary: true, publish: cfg.Redis.Enabled})
		if err != nil {
			return err
		}
		defer closeFn()

		pw := &worker.PipelineWorker{
			Schedule:   cfg.Pipeline.Schedule,
			Location:   loc,
			RunOnStart: serveRunNow,
			Run: func(ctx context.Context) error {
				_, err := r.Run(ctx)
				return err
			},
		}
		mgr := worker.NewManager(pw)
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			slog.Info("serve: received signal, shutting down", "signal", s.String())
			cancel()
		}()

		slog.Info("serve: starting", "schedule", cfg.Pipeline.Schedule, "timezone", cfg.Pipeline.Timezone, "publish", cfg.Redis.Enabled)
		return mgr.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveRunNow, "run-now", false, "run the pipeline once before waiting for the schedule")
	rootCmd.AddCommand(serveCmd)
}
