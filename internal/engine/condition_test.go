package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixcrm/flowkit/internal/expressions"
	"github.com/helixcrm/flowkit/pkg/schema"
)

func newTestEvaluator(t *testing.T) *ConditionEvaluator {
	t.Helper()
	cel, err := expressions.NewCELEngine()
	require.NoError(t, err)
	return NewConditionEvaluator(cel)
}

func condStep(field string, op schema.ComparisonOperator, value string) schema.WorkflowStep {
	return schema.WorkflowStep{ID: "c1", Type: schema.StepTypeCondition, Field: field, Operator: op, Value: value}
}

func TestEvaluateOperators(t *testing.T) {
	execCtx := schema.ExecutionContext{
		"score":  85,
		"amount": "150",
		"email":  "ana@example.com",
		"stage":  "qualified",
		"note":   "",
		"deal": map[string]any{
			"amount": 5000,
			"owner":  map[string]any{"name": "Marta"},
		},
	}

	tests := []struct {
		name string
		step schema.WorkflowStep
		want bool
	}{
		{"numeric greater than passes", condStep("score", schema.OpGreaterThan, "80"), true},
		{"numeric greater than fails", condStep("score", schema.OpGreaterThan, "90"), false},
		{"numeric string coerced gte", condStep("amount", schema.OpGreaterOrEq, "100"), true},
		{"numeric string coerced lt", condStep("amount", schema.OpLessThan, "100"), false},
		{"equals string", condStep("stage", schema.OpEquals, "qualified"), true},
		{"equals numeric forms", condStep("amount", schema.OpEquals, "150.0"), true},
		{"not equals", condStep("stage", schema.OpNotEquals, "lost"), true},
		{"contains", condStep("email", schema.OpContains, "@example.com"), true},
		{"contains fails", condStep("email", schema.OpContains, "@corp.com"), false},
		{"starts with", condStep("email", schema.OpStartsWith, "ana"), true},
		{"ends with", condStep("email", schema.OpEndsWith, ".com"), true},
		{"nested path", condStep("deal.amount", schema.OpGreaterThan, "1000"), true},
		{"deep nested path", condStep("deal.owner.name", schema.OpEquals, "Marta"), true},
		{"field to field comparison", condStep("score", schema.OpLessThan, "deal.amount"), true},
		{"quoted literal stays literal", condStep("stage", schema.OpEquals, "'qualified'"), true},
		{"is empty on blank", condStep("note", schema.OpIsEmpty, ""), true},
		{"is not empty on value", condStep("stage", schema.OpIsNotEmpty, ""), true},
		{"ordering on non numeric fails closed", condStep("stage", schema.OpGreaterThan, "10"), false},
	}

	eval := newTestEvaluator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eval.Evaluate(context.Background(), tt.step, execCtx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateMissingField(t *testing.T) {
	execCtx := schema.ExecutionContext{"stage": "open"}
	eval := newTestEvaluator(t)

	tests := []struct {
		name string
		step schema.WorkflowStep
		want bool
	}{
		{"equals missing is false", condStep("ghost", schema.OpEquals, "x"), false},
		{"not equals missing is true", condStep("ghost", schema.OpNotEquals, "x"), true},
		{"gt missing is false", condStep("ghost", schema.OpGreaterThan, "1"), false},
		{"contains missing is false", condStep("ghost", schema.OpContains, "x"), false},
		{"is empty missing is true", condStep("ghost", schema.OpIsEmpty, ""), true},
		{"is not empty missing is false", condStep("ghost", schema.OpIsNotEmpty, ""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eval.Evaluate(context.Background(), tt.step, execCtx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateUnknownOperator(t *testing.T) {
	eval := newTestEvaluator(t)

	got, err := eval.Evaluate(context.Background(),
		condStep("score", "matches", "80"), schema.ExecutionContext{"score": 85})

	assert.False(t, got)
	var fe *schema.FlowError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, schema.ErrCodeConfiguration, fe.Code)
	assert.Equal(t, "c1", fe.StepID)
}

func TestEvaluateCELExpression(t *testing.T) {
	eval := newTestEvaluator(t)
	execCtx := schema.ExecutionContext{"score": 85, "stage": "qualified"}

	step := schema.WorkflowStep{
		ID:         "c1",
		Type:       schema.StepTypeCondition,
		Expression: `context.score > 80 && context.stage == "qualified"`,
	}
	got, err := eval.Evaluate(context.Background(), step, execCtx)
	require.NoError(t, err)
	assert.True(t, got)

	step.Expression = `context.score > 90`
	got, err = eval.Evaluate(context.Background(), step, execCtx)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestEvaluateCELExpressionNonBoolean(t *testing.T) {
	eval := newTestEvaluator(t)

	step := schema.WorkflowStep{ID: "c1", Type: schema.StepTypeCondition, Expression: `context.score`}
	got, err := eval.Evaluate(context.Background(), step, schema.ExecutionContext{"score": 85})

	assert.False(t, got)
	var fe *schema.FlowError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, schema.ErrCodeConfiguration, fe.Code)
}

func TestEvaluateCELExpressionCompileError(t *testing.T) {
	eval := newTestEvaluator(t)

	step := schema.WorkflowStep{ID: "c1", Type: schema.StepTypeCondition, Expression: `context.score >`}
	got, err := eval.Evaluate(context.Background(), step, schema.ExecutionContext{})

	assert.False(t, got)
	require.Error(t, err)
}
