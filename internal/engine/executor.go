package engine

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/helixcrm/flowkit/internal/actions"
	"github.com/helixcrm/flowkit/internal/agents"
	"github.com/helixcrm/flowkit/internal/integrations"
	"github.com/helixcrm/flowkit/internal/logging"
	"github.com/helixcrm/flowkit/internal/resolver"
	"github.com/helixcrm/flowkit/pkg/schema"
)

// StepExecutor dispatches one workflow step to its handler. Every handler
// converts its own failures into StepResult.Error; ExecuteStep never returns
// a Go error and never panics on bad step configuration.
type StepExecutor struct {
	conditions   *ConditionEvaluator
	actions      actions.ActionRegistry
	integrations integrations.Dispatcher
	agents       agents.Dispatcher
	logger       *slog.Logger
}

// NewStepExecutor wires a StepExecutor with its collaborators. Any dispatcher
// may be nil; steps needing an absent collaborator fail with a per-step
// configuration error instead of crashing.
func NewStepExecutor(
	cond *ConditionEvaluator,
	reg actions.ActionRegistry,
	integ integrations.Dispatcher,
	ag agents.Dispatcher,
	logger *slog.Logger,
) *StepExecutor {
	if logger == nil {
		logger = slog.Default()
	}
	return &StepExecutor{
		conditions:   cond,
		actions:      reg,
		integrations: integ,
		agents:       ag,
		logger:       logger,
	}
}

// ExecuteStep runs a single step against the trigger context and returns its
// result. The context is read-only; no handler mutates it.
func (e *StepExecutor) ExecuteStep(ctx context.Context, step schema.WorkflowStep, execCtx schema.ExecutionContext) schema.StepResult {
	ctx = logging.WithStepID(ctx, step.ID)
	start := time.Now()

	result := schema.StepResult{StepID: step.ID, Type: step.Type}

	switch step.Type {
	case schema.StepTypeCondition:
		e.runCondition(ctx, step, execCtx, &result)
	case schema.StepTypeAction:
		e.runAction(ctx, step, execCtx, &result)
	case schema.StepTypeIntegration:
		e.runIntegration(ctx, step, execCtx, &result)
	case schema.StepTypeAgent:
		e.runAgent(ctx, step, execCtx, &result)
	case schema.StepTypeDelay:
		e.runDelay(step, &result)
	default:
		result.Error = schema.NewErrorf(schema.ErrCodeConfiguration,
			"unknown step type %q", string(step.Type)).WithStep(step.ID).Error()
	}

	result.DurationMs = time.Since(start).Milliseconds()
	if result.Error != "" {
		e.logger.WarnContext(ctx, "step failed", "type", step.Type, "error", result.Error)
	} else {
		e.logger.DebugContext(ctx, "step executed", "type", step.Type)
	}
	return result
}

func (e *StepExecutor) runCondition(ctx context.Context, step schema.WorkflowStep, execCtx schema.ExecutionContext, result *schema.StepResult) {
	passed, err := e.conditions.Evaluate(ctx, step, execCtx)
	if err != nil {
		// Fails closed: a broken condition counts as not passed.
		result.Error = err.Error()
		passed = false
	}
	result.Passed = &passed
}

func (e *StepExecutor) runAction(ctx context.Context, step schema.WorkflowStep, execCtx schema.ExecutionContext, result *schema.StepResult) {
	if step.Action == "" {
		result.Error = "action step requires an action identifier"
		return
	}
	if e.actions == nil {
		result.Error = "no action registry configured"
		return
	}
	act, err := e.actions.Get(step.Action)
	if err != nil {
		result.Error = err.Error()
		return
	}

	params := resolveParams(step.Config, execCtx)
	if err := act.Validate(params); err != nil {
		result.Error = err.Error()
		return
	}
	out, err := act.Execute(ctx, actions.ActionInput{Params: params, Context: execCtx})
	if err != nil {
		result.Error = err.Error()
		return
	}
	if out != nil {
		result.Output = out.Data
	}
}

func (e *StepExecutor) runIntegration(ctx context.Context, step schema.WorkflowStep, execCtx schema.ExecutionContext, result *schema.StepResult) {
	var cfg schema.IntegrationConfig
	decodeConfig(step.Config, &cfg)
	if cfg.IntegrationID == "" {
		result.Error = "integration step requires integrationId"
		return
	}
	if e.integrations == nil {
		result.Error = "no integration dispatcher configured"
		return
	}

	cfg.Params = resolveParams(step.Config, execCtx)
	delete(cfg.Params, "integrationId")

	res := e.integrations.Invoke(ctx, cfg.IntegrationID, cfg.Params)
	if !res.OK {
		result.Error = res.Error
		return
	}
	result.Output = res.Output
}

func (e *StepExecutor) runAgent(ctx context.Context, step schema.WorkflowStep, execCtx schema.ExecutionContext, result *schema.StepResult) {
	var cfg schema.AgentConfig
	decodeConfig(step.Config, &cfg)
	if cfg.AgentID == "" {
		result.Error = "agent step requires agentId"
		return
	}
	if e.agents == nil {
		result.Error = "no agent dispatcher configured"
		return
	}

	prompt := cfg.Prompt
	if prompt != "" {
		prompt = resolver.ResolveOperand(prompt, execCtx).String()
	}

	res := e.agents.Ask(ctx, cfg.AgentID, prompt, execCtx)
	if !res.OK {
		result.Error = res.Error
		return
	}
	result.Output = map[string]any{"response": res.Output}
}

// runDelay never sleeps. Durations are advisory hints for an external
// scheduler; the result just echoes the declared value.
func (e *StepExecutor) runDelay(step schema.WorkflowStep, result *schema.StepResult) {
	var cfg schema.DelayConfig
	decodeConfig(step.Config, &cfg)
	result.Skipped = true
	result.Duration = cfg.Duration
}

// decodeConfig extracts the typed view of a free-form config bag. Mistyped
// fields decode to zero values, which the callers treat as absent.
func decodeConfig(config map[string]any, out any) {
	b, err := json.Marshal(config)
	if err != nil {
		return
	}
	_ = json.Unmarshal(b, out)
}

// resolveParams applies operand resolution to every string-valued config
// entry, so step config can reference trigger fields ("deal.amount") or carry
// plain literals interchangeably. Non-string values pass through untouched.
func resolveParams(config map[string]any, execCtx schema.ExecutionContext) map[string]any {
	params := make(map[string]any, len(config))
	for k, v := range config {
		if s, ok := v.(string); ok {
			params[k] = resolver.ResolveOperand(s, execCtx).Raw()
		} else {
			params[k] = v
		}
	}
	return params
}
