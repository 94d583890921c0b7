package store

import (
	"encoding/json"
	"time"

	"github.com/helixcrm/flowkit/pkg/schema"
)

// Workflow is the persisted representation of an automation rule.
type Workflow struct {
	ID         string                    `json:"id"`
	Name       string                    `json:"name,omitempty"`
	Definition schema.WorkflowDefinition `json:"definition"`
	IsActive   bool                      `json:"is_active"`
	CreatedAt  time.Time                 `json:"created_at"`
	UpdatedAt  time.Time                 `json:"updated_at"`
}

// Run is one persisted execution report.
type Run struct {
	ID            string          `json:"id"`
	WorkflowID    string          `json:"workflow_id"`
	Success       bool            `json:"success"`
	StepsExecuted int             `json:"steps_executed"`
	Report        json.RawMessage `json:"report"`
	StartedAt     time.Time       `json:"started_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}

// NewRunFromReport converts an ExecutionReport into its persisted form.
func NewRunFromReport(report *schema.ExecutionReport) (*Run, error) {
	raw, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}
	return &Run{
		ID:            report.RunID,
		WorkflowID:    report.WorkflowID,
		Success:       report.Success,
		StepsExecuted: report.StepsExecuted,
		Report:        raw,
		StartedAt:     report.StartedAt,
		CompletedAt:   report.CompletedAt,
	}, nil
}

// WorkflowFilter specifies criteria for listing workflows.
type WorkflowFilter struct {
	ActiveOnly bool `json:"active_only,omitempty"`
	Limit      int  `json:"limit,omitempty"`
	Offset     int  `json:"offset,omitempty"`
}

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	WorkflowID string     `json:"workflow_id,omitempty"`
	Success    *bool      `json:"success,omitempty"`
	Since      *time.Time `json:"since,omitempty"`
	Limit      int        `json:"limit,omitempty"`
}
