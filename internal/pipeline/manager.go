package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"reitetl/internal/infrastructure"
)

// Manager executes steps sequentially and fail-fast: the artifacts of a
// failed stage cannot feed the next one, so nothing after it runs.
type Manager struct {
	logger *slog.Logger
	steps  []Step
}

// NewManager wires a pipeline manager. A nil logger falls back to the
// process default.
func NewManager(logger *slog.Logger, steps ...Step) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{logger: logger, steps: steps}
}

// Run executes the pipeline. The returned state is complete even on
// failure; the error is the failing step's, wrapped with its ID.
func (m *Manager) Run(ctx context.Context) (*RunState, error) {
	runID := infrastructure.GetTraceID(ctx)
	if runID == "" {
		runID = infrastructure.GenerateTraceID()
		ctx = infrastructure.WithTraceID(ctx, runID)
	}

	state := NewRunState(runID, m.steps)
	state.Start()

	m.logger.InfoContext(ctx, "pipeline run starting",
		slog.String("run_id", runID),
		slog.Int("steps", len(m.steps)))

	for i, step := range m.steps {
		stepState := state.StepState(step.ID())

		if err := ctx.Err(); err != nil {
			for _, rest := range m.steps[i:] {
				state.StepState(rest.ID()).Skip()
			}
			state.Cancel(err)
			m.logger.WarnContext(ctx, "pipeline run cancelled",
				slog.String("run_id", runID),
				slog.String("at_step", step.ID()))
			return state, err
		}

		stepState.Start()
		m.logger.InfoContext(ctx, "step starting",
			slog.String("step", step.ID()),
			slog.String("name", step.Name()))

		if err := step.Run(ctx); err != nil {
			stepState.Fail(err)
			for _, rest := range m.steps[i+1:] {
				state.StepState(rest.ID()).Skip()
			}
			wrapped := fmt.Errorf("step %s: %w", step.ID(), err)
			state.Fail(wrapped)
			m.logger.ErrorContext(ctx, "step failed",
				slog.String("step", step.ID()),
				slog.Duration("duration", stepState.Duration()),
				slog.Any("error", err))
			return state, wrapped
		}

		stepState.Complete()
		m.logger.InfoContext(ctx, "step completed",
			slog.String("step", step.ID()),
			slog.Duration("duration", stepState.Duration()))
	}

	state.Complete()
	m.logger.InfoContext(ctx, "pipeline run completed",
		slog.String("run_id", runID),
		slog.Duration("duration", state.Duration()))

	return state, nil
}
