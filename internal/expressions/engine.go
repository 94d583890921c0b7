package expressions

import "context"

// Engine evaluates expressions against a trigger context.
// Three implementations: CEL (condition expressions), Expr (derived-field
// logic), GoJQ (record reshaping).
type Engine interface {
	Name() string
	Evaluate(ctx context.Context, expression string, data map[string]any) (any, error)
}
