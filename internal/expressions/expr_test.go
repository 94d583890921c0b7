package expressions

import (
	"context"
	"testing"

	"github.com/helixcrm/flowkit/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExprEngine_Evaluate(t *testing.T) {
	e := NewExprEngine()
	data := map[string]any{
		"context": map[string]any{
			"deals": []any{
				map[string]any{"amount": 100.0},
				map[string]any{"amount": 250.0},
			},
			"name": "ada",
		},
	}

	tests := []struct {
		name string
		expr string
		want any
	}{
		{"sum over array", `sum(map(context.deals, .amount))`, 350.0},
		{"count with filter", `len(filter(context.deals, .amount > 150))`, 1},
		{"string op", `upper(context.name)`, "ADA"},
		{"nil coalescing", `context.missing ?? "fallback"`, "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Evaluate(context.Background(), tt.expr, data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExprEngine_CompileError(t *testing.T) {
	e := NewExprEngine()
	_, err := e.Evaluate(context.Background(), `1 +`, nil)
	require.Error(t, err)
	flowErr, ok := err.(*schema.FlowError)
	require.True(t, ok)
	assert.Equal(t, schema.ErrCodeValidation, flowErr.Code)
}

func TestExprEngine_EmptyExpression(t *testing.T) {
	e := NewExprEngine()
	_, err := e.Evaluate(context.Background(), "", nil)
	require.Error(t, err)
}
