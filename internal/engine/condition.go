package engine

import (
	"context"
	"strings"

	"github.com/helixcrm/flowkit/internal/expressions"
	"github.com/helixcrm/flowkit/internal/resolver"
	"github.com/helixcrm/flowkit/pkg/schema"
)

// ConditionEvaluator decides whether a condition step passes. Comparisons
// never throw: malformed or missing data fails closed (false) rather than
// aborting the run. Only configuration problems (unknown operator, broken
// expression) come back as errors.
type ConditionEvaluator struct {
	cel *expressions.CELEngine
}

// NewConditionEvaluator creates a ConditionEvaluator. The CEL engine backs
// expression-form conditions; field/operator/value conditions need no engine.
func NewConditionEvaluator(cel *expressions.CELEngine) *ConditionEvaluator {
	return &ConditionEvaluator{cel: cel}
}

// Evaluate returns whether the condition step passes against the trigger
// context. Expression-form steps are evaluated with CEL; otherwise the
// field/operator/value triple is compared. The boolean is meaningful even
// when an error is returned: it is always false then.
func (c *ConditionEvaluator) Evaluate(ctx context.Context, step schema.WorkflowStep, execCtx schema.ExecutionContext) (bool, error) {
	if step.Expression != "" {
		return c.evaluateExpression(ctx, step, execCtx)
	}

	if !schema.KnownOperator(step.Operator) {
		return false, schema.NewErrorf(schema.ErrCodeConfiguration,
			"unknown operator %q", string(step.Operator)).WithStep(step.ID)
	}

	left := resolver.Resolve(step.Field, execCtx)
	right := resolver.ResolveOperand(step.Value, execCtx)
	return compare(left, step.Operator, right), nil
}

func (c *ConditionEvaluator) evaluateExpression(ctx context.Context, step schema.WorkflowStep, execCtx schema.ExecutionContext) (bool, error) {
	if c.cel == nil {
		return false, schema.NewError(schema.ErrCodeConfiguration,
			"expression conditions are not enabled").WithStep(step.ID)
	}
	out, err := c.cel.Evaluate(ctx, step.Expression, map[string]any{
		"context": map[string]any(execCtx),
	})
	if err != nil {
		return false, err
	}
	passed, ok := out.(bool)
	if !ok {
		return false, schema.NewErrorf(schema.ErrCodeConfiguration,
			"condition expression %q did not produce a boolean", step.Expression).WithStep(step.ID)
	}
	return passed, nil
}

// compare applies one operator to a resolved left value and a declared right
// operand. Numeric comparison wins when both sides carry numbers, which is
// what makes "150" >= "100" behave arithmetically instead of lexically.
func compare(left resolver.Value, op schema.ComparisonOperator, right resolver.Value) bool {
	switch op {
	case schema.OpIsEmpty:
		return left.IsEmpty()
	case schema.OpIsNotEmpty:
		return !left.IsEmpty()
	case schema.OpNotEquals:
		// A missing value is not equal to anything declared.
		if left.IsMissing() {
			return true
		}
		return !valuesEqual(left, right)
	}

	if left.IsMissing() {
		return false
	}

	switch op {
	case schema.OpEquals:
		return valuesEqual(left, right)
	case schema.OpGreaterThan, schema.OpGreaterOrEq, schema.OpLessThan, schema.OpLessOrEq:
		ln, lok := left.Number()
		rn, rok := right.Number()
		if !lok || !rok {
			return false
		}
		switch op {
		case schema.OpGreaterThan:
			return ln > rn
		case schema.OpGreaterOrEq:
			return ln >= rn
		case schema.OpLessThan:
			return ln < rn
		default:
			return ln <= rn
		}
	case schema.OpContains:
		return strings.Contains(left.String(), right.String())
	case schema.OpStartsWith:
		return strings.HasPrefix(left.String(), right.String())
	case schema.OpEndsWith:
		return strings.HasSuffix(left.String(), right.String())
	}
	return false
}

func valuesEqual(left, right resolver.Value) bool {
	if ln, lok := left.Number(); lok {
		if rn, rok := right.Number(); rok {
			return ln == rn
		}
	}
	return left.String() == right.String()
}
