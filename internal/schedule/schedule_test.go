package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/dep-autosync/internal/autosync"
	"github.com/conn-castle/dep-autosync/internal/gate"
)

type executorFunc func(ctx context.Context) (autosync.Result, error)

func (f executorFunc) Execute(ctx context.Context) (autosync.Result, error) {
	return f(ctx)
}

func TestNewRejectsInvalidSpec(t *testing.T) {
	_, err := New("not a schedule", 0, executorFunc(func(context.Context) (autosync.Result, error) {
		return autosync.Result{}, nil
	}))
	require.Error(t, err)
}

func TestNewRequiresExecutor(t *testing.T) {
	_, err := New("@daily", 0, nil)
	require.Error(t, err)
}

func TestRunOnceObservesResult(t *testing.T) {
	var observed []autosync.Result
	w, err := New("@hourly", time.Minute, executorFunc(func(ctx context.Context) (autosync.Result, error) {
		_, hasDeadline := ctx.Deadline()
		require.True(t, hasDeadline)
		return autosync.Result{RunID: "r1", AutoApply: gate.Decision{Allowed: true}}, nil
	}), WithObserver(func(r autosync.Result, err error) {
		require.NoError(t, err)
		observed = append(observed, r)
	}))
	require.NoError(t, err)

	result, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, "r1", result.RunID)
	require.Len(t, observed, 1)
}

func TestRunOnceDeadlineMeansNotApplied(t *testing.T) {
	w, err := New("@hourly", 10*time.Millisecond, executorFunc(func(ctx context.Context) (autosync.Result, error) {
		<-ctx.Done()
		failed := false
		return autosync.Result{AutoApply: gate.Decision{Allowed: true, Applied: true, Succeeded: &failed}},
			&autosync.StageError{Stage: autosync.StageUpgrade, Err: ctx.Err()}
	}))
	require.NoError(t, err)

	result, err := w.RunOnce(context.Background())
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.False(t, result.AutoApply.Applied)
	require.Nil(t, result.AutoApply.Succeeded)
	require.Equal(t, autosync.OutcomeTimeout, autosync.OutcomeOf(result, err))
}

func TestRunOnceCollaboratorTimeoutStaysAttempted(t *testing.T) {
	var observed autosync.Outcome
	w, err := New("@hourly", time.Hour, executorFunc(func(context.Context) (autosync.Result, error) {
		failed := false
		return autosync.Result{AutoApply: gate.Decision{Allowed: true, Applied: true, Succeeded: &failed}},
			&autosync.StageError{Stage: autosync.StageUpgrade, Err: fmt.Errorf("run upgrade command: %w", context.DeadlineExceeded)}
	}), WithObserver(func(r autosync.Result, err error) {
		observed = autosync.OutcomeOf(r, err)
	}))
	require.NoError(t, err)

	result, err := w.RunOnce(context.Background())
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.True(t, result.AutoApply.Applied)
	require.NotNil(t, result.AutoApply.Succeeded)
	require.False(t, *result.AutoApply.Succeeded)
	require.Equal(t, autosync.OutcomeFailed, observed)
}

func TestRunOnceKeepsOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	w, err := New("@hourly", 0, executorFunc(func(context.Context) (autosync.Result, error) {
		return autosync.Result{}, &autosync.StageError{Stage: autosync.StageGuard, Err: boom}
	}))
	require.NoError(t, err)

	_, err = w.RunOnce(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestRunStopsOnCancel(t *testing.T) {
	var mu sync.Mutex
	runs := 0
	w, err := New("@every 10ms", 0, executorFunc(func(context.Context) (autosync.Result, error) {
		mu.Lock()
		runs++
		mu.Unlock()
		return autosync.Result{AutoApply: gate.Decision{Allowed: true}}, nil
	}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return runs > 0
	}, 5*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
