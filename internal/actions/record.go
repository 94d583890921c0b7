package actions

import (
	"context"
	"log/slog"

	"github.com/helixcrm/flowkit/pkg/schema"
)

// RecordActions returns the built-in record effects: log_change and
// update_field. Both are side-effect free from the engine's point of view;
// their outputs describe the mutation for the caller to persist through the
// storage collaborator.
func RecordActions(logger *slog.Logger) []Action {
	return []Action{
		&logChangeAction{logger: logger},
		&updateFieldAction{},
	}
}

// --- log_change ---

type logChangeAction struct {
	logger *slog.Logger
}

func (a *logChangeAction) Name() string { return "log_change" }

func (a *logChangeAction) Schema() ActionSchema {
	return ActionSchema{
		Description: "Append a structured audit entry describing a record change",
	}
}

func (a *logChangeAction) Validate(params map[string]any) error {
	return nil
}

func (a *logChangeAction) Execute(ctx context.Context, input ActionInput) (*ActionOutput, error) {
	attrs := make([]any, 0, len(input.Params)*2)
	for k, v := range input.Params {
		attrs = append(attrs, slog.Any(k, v))
	}
	if a.logger != nil {
		a.logger.InfoContext(ctx, "record change", attrs...)
	}

	return &ActionOutput{Data: map[string]any{
		"action": "log_change",
		"logged": input.Params,
	}}, nil
}

// --- update_field ---

type updateFieldAction struct{}

func (a *updateFieldAction) Name() string { return "update_field" }

func (a *updateFieldAction) Schema() ActionSchema {
	return ActionSchema{
		Description: "Produce a field mutation for the triggering record",
	}
}

func (a *updateFieldAction) Validate(params map[string]any) error {
	field, ok := params["field"].(string)
	if !ok || field == "" {
		return schema.NewError(schema.ErrCodeConfiguration, "update_field requires non-empty 'field' string parameter")
	}
	return nil
}

func (a *updateFieldAction) Execute(ctx context.Context, input ActionInput) (*ActionOutput, error) {
	if err := a.Validate(input.Params); err != nil {
		return nil, err
	}
	field, _ := input.Params["field"].(string)

	out := map[string]any{
		"action": "update_field",
		"field":  field,
		"value":  input.Params["value"],
	}
	// Surface the previous value when the field exists in the trigger context.
	if prev, ok := input.Context[field]; ok {
		out["previous"] = prev
	}
	return &ActionOutput{Data: out}, nil
}
