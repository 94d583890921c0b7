package schema

import "time"

// ExecutionContext is the read-only trigger payload available to a run,
// typically the CRM record that fired the workflow. The engine only reads it.
type ExecutionContext map[string]any

// RunStatus is the lifecycle phase of a single workflow run.
type RunStatus string

const (
	RunPending   RunStatus = "pending"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunAborted   RunStatus = "aborted"
)

// StepResult is the per-step entry in an ExecutionReport. Exactly one result
// is emitted per step actually executed; steps cut off by a short-circuit
// never appear.
type StepResult struct {
	StepID     string         `json:"step_id"`
	Type       StepType       `json:"type"`
	Passed     *bool          `json:"passed,omitempty"`   // condition steps only
	Skipped    bool           `json:"skipped,omitempty"`  // delay steps
	Duration   string         `json:"duration,omitempty"` // delay steps, echoes config
	Output     map[string]any `json:"output,omitempty"`
	Error      string         `json:"error,omitempty"`
	DurationMs int64          `json:"duration_ms,omitempty"`
}

// ExecutionReport is the outcome of one ExecuteWorkflow call.
// Success is false only for fatal errors (inactive workflow, engine panic);
// per-step recoverable errors and condition short-circuits leave it true.
type ExecutionReport struct {
	RunID         string       `json:"run_id"`
	WorkflowID    string       `json:"workflow_id"`
	Success       bool         `json:"success"`
	StepsExecuted int          `json:"steps_executed"`
	Results       []StepResult `json:"results"`
	StartedAt     time.Time    `json:"started_at"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
}
