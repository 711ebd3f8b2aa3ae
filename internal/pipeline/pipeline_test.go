package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"reitetl/internal/infrastructure"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestManager_Run_AllStepsInOrder(t *testing.T) {
	var order []string
	record := func(id string) Step {
		return NewStep(id, id, func(ctx context.Context) error {
			order = append(order, id)
			return nil
		})
	}

	mgr := NewManager(discardLogger(), record("clean"), record("macro"), record("merge"))

	state, err := mgr.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"clean", "macro", "merge"}, order)
	assert.Equal(t, RunStatusCompleted, state.Status)
	assert.NotEmpty(t, state.ID)
	for _, id := range order {
		assert.Equal(t, StepStatusCompleted, state.StepState(id).CurrentStatus())
	}
}

func TestManager_Run_FailFast(t *testing.T) {
	bang := errors.New("bad input")
	var merged bool

	mgr := NewManager(discardLogger(),
		NewStep("clean", "clean", func(ctx context.Context) error { return nil }),
		NewStep("macro", "macro", func(ctx context.Context) error { return bang }),
		NewStep("merge", "merge", func(ctx context.Context) error { merged = true; return nil }),
	)

	state, err := mgr.Run(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, bang)
	assert.Contains(t, err.Error(), "step macro")

	assert.False(t, merged, "steps after a failure must not run")
	assert.Equal(t, RunStatusFailed, state.Status)
	assert.True(t, state.HasFailures())
	assert.Equal(t, StepStatusCompleted, state.StepState("clean").CurrentStatus())
	assert.Equal(t, StepStatusFailed, state.StepState("macro").CurrentStatus())
	assert.Equal(t, StepStatusSkipped, state.StepState("merge").CurrentStatus())
}

func TestManager_Run_CancelledBeforeStep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	mgr := NewManager(discardLogger(),
		NewStep("clean", "clean", func(ctx context.Context) error {
			cancel()
			return nil
		}),
		NewStep("macro", "macro", func(ctx context.Context) error {
			t.Fatal("must not run after cancellation")
			return nil
		}),
	)

	state, err := mgr.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, RunStatusCancelled, state.Status)
	assert.Equal(t, StepStatusCompleted, state.StepState("clean").CurrentStatus())
	assert.Equal(t, StepStatusSkipped, state.StepState("macro").CurrentStatus())
}

func TestManager_Run_ReusesTraceID(t *testing.T) {
	mgr := NewManager(discardLogger(),
		NewStep("clean", "clean", func(ctx context.Context) error { return nil }),
	)

	ctx := infrastructure.WithTraceID(context.Background(), "fixed-run-id")
	state, err := mgr.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, "fixed-run-id", state.ID, "run id follows the ambient trace id")
}

func TestStepState_Lifecycle(t *testing.T) {
	s := NewStepState("clean", "cleaning")
	assert.Equal(t, StepStatusPending, s.CurrentStatus())
	assert.Equal(t, int64(0), s.Duration().Nanoseconds())

	s.Start()
	assert.Equal(t, StepStatusActive, s.CurrentStatus())

	s.Complete()
	assert.Equal(t, StepStatusCompleted, s.CurrentStatus())
	assert.GreaterOrEqual(t, s.Duration().Nanoseconds(), int64(0))

	failed := NewStepState("macro", "macro")
	failed.Start()
	failed.Fail(errors.New("boom"))
	assert.Equal(t, StepStatusFailed, failed.CurrentStatus())
	assert.Error(t, failed.Error)
}

func TestRunState_TracksSteps(t *testing.T) {
	steps := []Step{
		NewStep("a", "first", func(ctx context.Context) error { return nil }),
		NewStep("b", "second", func(ctx context.Context) error { return nil }),
	}
	state := NewRunState("run-1", steps)

	assert.Equal(t, []string{"a", "b"}, state.Order)
	assert.Equal(t, RunStatusPending, state.Status)
	require.NotNil(t, state.StepState("a"))
	assert.Equal(t, "first", state.StepState("a").Name)
	assert.False(t, state.HasFailures())
}

func TestRunState_ConcurrentAccess(t *testing.T) {
	steps := []Step{
		NewStep("a", "first", func(ctx context.Context) error { return nil }),
		NewStep("b", "second", func(ctx context.Context) error { return nil }),
	}
	state := NewRunState("run-1", steps)
	state.Start()

	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			state.StepState("a").Start()
			state.StepState("a").Complete()
			return nil
		})
		g.Go(func() error {
			_ = state.StepState("b").CurrentStatus()
			_ = state.Duration()
			_ = state.HasFailures()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	state.Complete()
	assert.Equal(t, RunStatusCompleted, state.Status)
	assert.Equal(t, StepStatusCompleted, state.StepState("a").CurrentStatus())
}
