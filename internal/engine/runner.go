package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/helixcrm/flowkit/internal/logging"
	"github.com/helixcrm/flowkit/pkg/schema"
)

// Runner orchestrates one workflow execution: steps run in declared order, a
// false condition short-circuits the rest of the run (still a success), and
// non-condition step failures are isolated so one broken action cannot take
// down the whole automation. Runners hold no per-run state and are safe to
// share across goroutines.
type Runner struct {
	executor *StepExecutor
	logger   *slog.Logger
}

// NewRunner creates a Runner around a StepExecutor.
func NewRunner(executor *StepExecutor, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{executor: executor, logger: logger}
}

// ExecuteWorkflow runs the workflow against the trigger context and returns
// the execution report. It never returns a Go error and never lets a panic
// escape: fatal conditions (inactive workflow, an escaped panic) abort the
// run with Success=false and a synthetic final result describing the failure.
// StepsExecuted always equals len(Results).
func (r *Runner) ExecuteWorkflow(ctx context.Context, wf *schema.WorkflowDefinition, trigger schema.ExecutionContext) (report *schema.ExecutionReport) {
	report = &schema.ExecutionReport{
		RunID:      uuid.NewString(),
		WorkflowID: wf.ID,
		StartedAt:  time.Now().UTC(),
	}
	ctx = logging.WithWorkflowID(ctx, wf.ID)
	ctx = logging.WithRunID(ctx, report.RunID)

	defer func() {
		if rec := recover(); rec != nil {
			report.Results = append(report.Results, schema.StepResult{
				Error: schema.NewErrorf(schema.ErrCodeExecution, "workflow run panicked: %v", rec).Error(),
			})
			report.Success = false
			r.logger.ErrorContext(ctx, "workflow run aborted",
				"status", schema.RunAborted, "panic", rec)
		}
		report.StepsExecuted = len(report.Results)
		completed := time.Now().UTC()
		report.CompletedAt = &completed
	}()

	if !wf.IsActive {
		report.Results = append(report.Results, schema.StepResult{
			Error: schema.NewErrorf(schema.ErrCodeInactive, "workflow %s is inactive", wf.ID).Error(),
		})
		report.Success = false
		r.logger.WarnContext(ctx, "refusing to run inactive workflow",
			"status", schema.RunAborted)
		return report
	}

	r.logger.InfoContext(ctx, "workflow run started",
		"status", schema.RunRunning, "declared_steps", len(wf.Steps))
	report.Success = true

	for i := range wf.Steps {
		step := wf.Steps[i]
		result := r.executor.ExecuteStep(ctx, step, trigger)
		report.Results = append(report.Results, result)

		if step.Type == schema.StepTypeCondition && result.Passed != nil && !*result.Passed {
			r.logger.InfoContext(ctx, "condition not met, halting run",
				"step_id", step.ID, "status", schema.RunCompleted)
			return report
		}
	}

	r.logger.InfoContext(ctx, "workflow run finished",
		"status", schema.RunCompleted, "steps_executed", len(report.Results))
	return report
}
