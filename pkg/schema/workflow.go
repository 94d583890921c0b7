package schema

// TriggerType identifies how a workflow is fired. The engine only records it;
// listening infrastructure lives outside this module.
type TriggerType string

const (
	TriggerManual    TriggerType = "manual"
	TriggerEvent     TriggerType = "event"
	TriggerScheduled TriggerType = "scheduled"
)

// WorkflowDefinition is the JSON-serializable automation rule: an ordered list
// of steps executed against the trigger payload. Immutable once loaded for a run.
type WorkflowDefinition struct {
	ID            string         `json:"id"`
	Name          string         `json:"name,omitempty"`
	TriggerType   TriggerType    `json:"trigger_type,omitempty"`
	TriggerConfig map[string]any `json:"trigger_config,omitempty"`
	Steps         []WorkflowStep `json:"steps"`
	IsActive      bool           `json:"is_active"`
}

// WorkflowStep describes a single step. The Type discriminator selects which
// fields apply: condition steps use Field/Operator/Value (or Expression),
// action steps use Action+Config, and integration/agent/delay steps use Config.
type WorkflowStep struct {
	ID       string             `json:"id"`
	Type     StepType           `json:"type"`
	Field    string             `json:"field,omitempty"`
	Operator ComparisonOperator `json:"operator,omitempty"`
	Value    string             `json:"value,omitempty"`
	// Expression is an optional CEL expression for condition steps,
	// evaluated against {"context": <trigger context>}. When set, it takes
	// the place of Field/Operator/Value.
	Expression string         `json:"expression,omitempty"`
	Action     string         `json:"action,omitempty"`
	Config     map[string]any `json:"config,omitempty"`
}

// StepType enumerates the kinds of steps in a workflow.
type StepType string

const (
	StepTypeCondition   StepType = "condition"
	StepTypeAction      StepType = "action"
	StepTypeIntegration StepType = "integration"
	StepTypeAgent       StepType = "agent"
	StepTypeDelay       StepType = "delay"
)

// KnownStepType reports whether t is a recognized step type.
func KnownStepType(t StepType) bool {
	switch t {
	case StepTypeCondition, StepTypeAction, StepTypeIntegration, StepTypeAgent, StepTypeDelay:
		return true
	}
	return false
}

// ComparisonOperator is the closed set of condition operators.
type ComparisonOperator string

const (
	OpEquals      ComparisonOperator = "="
	OpNotEquals   ComparisonOperator = "!="
	OpGreaterThan ComparisonOperator = ">"
	OpGreaterOrEq ComparisonOperator = ">="
	OpLessThan    ComparisonOperator = "<"
	OpLessOrEq    ComparisonOperator = "<="
	OpContains    ComparisonOperator = "contains"
	OpStartsWith  ComparisonOperator = "starts_with"
	OpEndsWith    ComparisonOperator = "ends_with"
	OpIsEmpty     ComparisonOperator = "is_empty"
	OpIsNotEmpty  ComparisonOperator = "is_not_empty"
)

// KnownOperator reports whether op is a recognized comparison operator.
func KnownOperator(op ComparisonOperator) bool {
	switch op {
	case OpEquals, OpNotEquals, OpGreaterThan, OpGreaterOrEq, OpLessThan, OpLessOrEq,
		OpContains, OpStartsWith, OpEndsWith, OpIsEmpty, OpIsNotEmpty:
		return true
	}
	return false
}

// IntegrationConfig is the typed config block for integration steps.
type IntegrationConfig struct {
	IntegrationID string         `json:"integrationId"`
	Params        map[string]any `json:"-"`
}

// AgentConfig is the typed config block for agent steps.
type AgentConfig struct {
	AgentID string `json:"agentId"`
	Prompt  string `json:"prompt,omitempty"`
}

// DelayConfig is the typed config block for delay steps. Duration is a human
// duration string ("5m", "2h"); it is an advisory hint for the surrounding
// scheduler, never slept on by the engine.
type DelayConfig struct {
	Duration string `json:"duration"`
}
