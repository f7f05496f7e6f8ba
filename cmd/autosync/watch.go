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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/conn-castle/dep-autosync/internal/messages"
	"github.com/conn-castle/dep-autosync/internal/metrics"
	"github.com/conn-castle/dep-autosync/internal/schedule"
)

const metricsShutdownTimeout = 5 * time.Second

// notifyContext is a seam for tests.
var notifyContext = signal.NotifyContext

func newWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.WatchUse,
		Short: messages.WatchShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = rt.logger.Sync() }()
			if rt.cfg.Schedule.Cron == "" {
				return errors.New(messages.WatchScheduleRequired)
			}

			orch, err := rt.orchestrator(true)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			if err := reg.Register(collectors.NewGoCollector()); err != nil {
				return fmt.Errorf(messages.WatchRegisterMetricsFmt, err)
			}
			if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
				return fmt.Errorf(messages.WatchRegisterMetricsFmt, err)
			}
			recorder, err := metrics.NewRecorder(reg)
			if err != nil {
				return fmt.Errorf(messages.WatchRegisterMetricsFmt, err)
			}

			deadline := rt.cfg.ScheduleDeadline()
			watcher, err := schedule.New(rt.cfg.Schedule.Cron, deadline, orch,
				schedule.WithLogger(rt.logger),
				schedule.WithObserver(recorder.Observe),
			)
			if err != nil {
				return err
			}

			ctx, stop := notifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, messages.WatchStartedFmt, rt.cfg.Schedule.Cron, deadline)

			group, groupCtx := errgroup.WithContext(ctx)
			group.Go(func() error {
				return watcher.Run(groupCtx)
			})
			if listen := rt.cfg.Metrics.Listen; listen != "" {
				server := &http.Server{
					Addr:              listen,
					Handler:           metricsMux(reg),
					ReadHeaderTimeout: 5 * time.Second,
				}
				_, _ = fmt.Fprintf(out, messages.WatchMetricsListenFmt, listen)
				group.Go(func() error {
					if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						return fmt.Errorf(messages.WatchMetricsServerFmt, err)
					}
					return nil
				})
				group.Go(func() error {
					<-groupCtx.Done()
					shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
					defer cancel()
					return server.Shutdown(shutdownCtx)
				})
			}
			return group.Wait()
		},
	}
}

func metricsMux(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	return mux
}
