package validation

import (
	"fmt"
	"time"

	"github.com/helixcrm/flowkit/pkg/schema"
)

// Semantic applies the load-time rules JSON Schema cannot express: step ID
// uniqueness, per-type field coherence, operator membership, and advisory
// duration checks. Errors here reject the workflow before any run starts;
// warnings are reported but do not block.
type Semantic struct{}

// NewSemantic creates a semantic validator.
func NewSemantic() *Semantic {
	return &Semantic{}
}

// Validate checks a decoded workflow definition and returns all issues found.
func (s *Semantic) Validate(def *schema.WorkflowDefinition) *schema.ValidationResult {
	result := &schema.ValidationResult{}
	if def == nil {
		result.AddError("", "nil_definition", "workflow definition is nil")
		return result
	}
	if def.ID == "" {
		result.AddError("id", "missing_id", "workflow id is required")
	}

	seen := make(map[string]int, len(def.Steps))
	for i, step := range def.Steps {
		path := fmt.Sprintf("steps[%d]", i)

		if step.ID == "" {
			result.AddError(path+".id", "missing_step_id", "step id is required")
		} else if prev, dup := seen[step.ID]; dup {
			result.AddError(path+".id", "duplicate_step_id",
				fmt.Sprintf("step id %q already used by steps[%d]", step.ID, prev))
		} else {
			seen[step.ID] = i
		}

		if !schema.KnownStepType(step.Type) {
			result.AddError(path+".type", "unknown_step_type",
				fmt.Sprintf("unknown step type %q", string(step.Type)))
			continue
		}

		switch step.Type {
		case schema.StepTypeCondition:
			s.validateCondition(path, step, result)
		case schema.StepTypeAction:
			if step.Action == "" {
				result.AddError(path+".action", "missing_action", "action step requires an action identifier")
			}
		case schema.StepTypeDelay:
			s.validateDelay(path, step, result)
		}
	}
	return result
}

func (s *Semantic) validateCondition(path string, step schema.WorkflowStep, result *schema.ValidationResult) {
	if step.Expression != "" {
		if step.Field != "" || step.Operator != "" || step.Value != "" {
			result.AddWarning(path, "mixed_condition_forms",
				"expression takes precedence; field/operator/value are ignored")
		}
		return
	}
	if step.Field == "" {
		result.AddError(path+".field", "missing_field", "condition step requires a field")
	}
	if step.Operator == "" {
		result.AddError(path+".operator", "missing_operator", "condition step requires an operator")
	} else if !schema.KnownOperator(step.Operator) {
		result.AddError(path+".operator", "unknown_operator",
			fmt.Sprintf("unknown operator %q", string(step.Operator)))
	}
}

// validateDelay only warns on unparseable durations: the engine never sleeps
// on them, so a bad duration degrades the scheduling hint, not the run.
func (s *Semantic) validateDelay(path string, step schema.WorkflowStep, result *schema.ValidationResult) {
	duration, _ := step.Config["duration"].(string)
	if duration == "" {
		result.AddWarning(path+".config.duration", "missing_duration", "delay step has no duration")
		return
	}
	if _, err := time.ParseDuration(duration); err != nil {
		result.AddWarning(path+".config.duration", "unparseable_duration",
			fmt.Sprintf("duration %q is not a parseable duration", duration))
	}
}
