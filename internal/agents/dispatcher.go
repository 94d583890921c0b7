package agents

import (
	"context"

	"github.com/helixcrm/flowkit/pkg/schema"
)

// Result is the outcome of one agent invocation. Ordinary failures (agent
// unreachable, agent-side error) surface as OK=false with Error set; Ask
// never returns a Go error for them.
type Result struct {
	OK     bool   `json:"ok"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Dispatcher reaches the AI-agent chat subsystem. Implementations must be
// safe for concurrent use: many workflow runs share one dispatcher.
type Dispatcher interface {
	Ask(ctx context.Context, agentID, prompt string, execCtx schema.ExecutionContext) Result
}
