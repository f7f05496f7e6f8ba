package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/conn-castle/dep-autosync/internal/autosync"
	"github.com/conn-castle/dep-autosync/internal/messages"
)

// Executor runs one auto-sync pass.
type Executor interface {
	Execute(ctx context.Context) (autosync.Result, error)
}

// ObserveFunc receives every run's result and error.
type ObserveFunc func(autosync.Result, error)

// Watcher runs an Executor on a cron schedule, bounding each run by a deadline.
type Watcher struct {
	spec     string
	schedule cron.Schedule
	deadline time.Duration
	executor Executor
	logger   *zap.Logger
	observe  ObserveFunc
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger used for run summaries and cron diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithObserver registers a callback invoked after each run.
func WithObserver(fn ObserveFunc) Option {
	return func(w *Watcher) {
		w.observe = fn
	}
}

// New parses spec (standard cron syntax or @descriptors) and returns a Watcher.
// A zero deadline leaves runs unbounded.
func New(spec string, deadline time.Duration, executor Executor, opts ...Option) (*Watcher, error) {
	if executor == nil {
		return nil, errors.New(messages.ScheduleExecutorRequired)
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf(messages.ScheduleInvalidSpecFmt, spec, err)
	}
	w := &Watcher{
		spec:     spec,
		schedule: schedule,
		deadline: deadline,
		executor: executor,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// RunOnce executes a single pass under the configured deadline.
// A run that hits the deadline is reported as not applied.
func (w *Watcher) RunOnce(ctx context.Context) (autosync.Result, error) {
	runCtx := ctx
	if w.deadline > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, w.deadline)
		defer cancel()
	}

	result, err := w.executor.Execute(runCtx)
	outcome := autosync.OutcomeOf(result, err)
	// Only the run deadline voids the attempt; a collaborator's own timeout is a failed upgrade.
	if err != nil && w.deadline > 0 && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.AutoApply.Applied = false
		result.AutoApply.Succeeded = nil
		outcome = autosync.OutcomeTimeout
	}
	if err != nil {
		w.logger.Error("scheduled run failed", zap.String("run_id", result.RunID), zap.String("outcome", string(outcome)), zap.Error(err))
	} else {
		w.logger.Info("scheduled run finished", zap.String("run_id", result.RunID), zap.String("outcome", string(outcome)))
	}
	if w.observe != nil {
		w.observe(result, err)
	}
	return result, err
}

// Run schedules passes until ctx is canceled, then waits for an in-flight run to finish.
// Ticks that fire while a run is still in progress are skipped.
func (w *Watcher) Run(ctx context.Context) error {
	cronLog := cronLogger{w.logger.Sugar()}
	c := cron.New(cron.WithLogger(cronLog), cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)))
	c.Schedule(w.schedule, cron.FuncJob(func() {
		_, _ = w.RunOnce(ctx)
	}))
	w.logger.Info("watch started", zap.String("schedule", w.spec), zap.Duration("deadline", w.deadline))
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	w.logger.Info("watch stopped")
	return nil
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
