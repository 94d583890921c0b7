package actions

import (
	"context"

	"github.com/helixcrm/flowkit/internal/expressions"
	"github.com/helixcrm/flowkit/pkg/schema"
)

// JQActions returns the jq transformation actions.
func JQActions() []Action {
	return []Action{
		&jqAction{engine: expressions.NewGoJQEngine()},
	}
}

// --- jq ---

type jqAction struct {
	engine *expressions.GoJQEngine
}

func (a *jqAction) Name() string { return "jq" }

func (a *jqAction) Schema() ActionSchema {
	return ActionSchema{
		Description: "Filter and reshape the trigger context with a jq query",
	}
}

func (a *jqAction) Validate(params map[string]any) error {
	query, ok := params["query"].(string)
	if !ok || query == "" {
		return schema.NewError(schema.ErrCodeConfiguration, "jq requires non-empty 'query' string parameter")
	}
	return nil
}

func (a *jqAction) Execute(ctx context.Context, input ActionInput) (*ActionOutput, error) {
	if err := a.Validate(input.Params); err != nil {
		return nil, err
	}
	query, _ := input.Params["query"].(string)

	result, err := a.engine.Evaluate(ctx, query, input.Context)
	if err != nil {
		return nil, err
	}

	return &ActionOutput{Data: map[string]any{
		"result": result,
	}}, nil
}
