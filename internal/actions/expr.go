package actions

import (
	"context"

	"github.com/helixcrm/flowkit/internal/expressions"
	"github.com/helixcrm/flowkit/pkg/schema"
)

// ExprActions returns the expression evaluation actions.
func ExprActions() []Action {
	return []Action{
		&exprEvalAction{engine: expressions.NewExprEngine()},
	}
}

// --- expr.eval ---

type exprEvalAction struct {
	engine *expressions.ExprEngine
}

func (a *exprEvalAction) Name() string { return "expr.eval" }

func (a *exprEvalAction) Schema() ActionSchema {
	return ActionSchema{
		Description: "Evaluate an Expr expression against the trigger context",
	}
}

func (a *exprEvalAction) Validate(params map[string]any) error {
	expr, ok := params["expression"].(string)
	if !ok || expr == "" {
		return schema.NewError(schema.ErrCodeConfiguration, "expr.eval requires non-empty 'expression' string parameter")
	}
	return nil
}

func (a *exprEvalAction) Execute(ctx context.Context, input ActionInput) (*ActionOutput, error) {
	if err := a.Validate(input.Params); err != nil {
		return nil, err
	}
	expression, _ := input.Params["expression"].(string)

	scope := map[string]any{
		"context": input.Context,
	}
	if data, ok := input.Params["data"]; ok {
		scope["data"] = data
	}

	result, err := a.engine.Evaluate(ctx, expression, scope)
	if err != nil {
		return nil, err
	}

	return &ActionOutput{Data: map[string]any{
		"result": result,
	}}, nil
}
