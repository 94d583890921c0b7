package actions

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogChange_LogsAndEchoes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	a := RecordActions(logger)[0]
	require.Equal(t, "log_change", a.Name())

	out, err := a.Execute(context.Background(), ActionInput{
		Params:  map[string]any{"field": "stage", "value": "qualified"},
		Context: map[string]any{"stage": "new"},
	})
	require.NoError(t, err)
	assert.Equal(t, "log_change", out.Data["action"])
	assert.Contains(t, buf.String(), "record change")
	assert.Contains(t, buf.String(), "stage")
}

func TestUpdateField_OutputsMutation(t *testing.T) {
	a := RecordActions(slog.Default())[1]
	require.Equal(t, "update_field", a.Name())

	out, err := a.Execute(context.Background(), ActionInput{
		Params:  map[string]any{"field": "score", "value": "95"},
		Context: map[string]any{"score": "50"},
	})
	require.NoError(t, err)
	assert.Equal(t, "score", out.Data["field"])
	assert.Equal(t, "95", out.Data["value"])
	assert.Equal(t, "50", out.Data["previous"])
}

func TestUpdateField_MissingFieldParam(t *testing.T) {
	a := RecordActions(slog.Default())[1]
	_, err := a.Execute(context.Background(), ActionInput{Params: map[string]any{}})
	require.Error(t, err)
}

func TestExprEval_ComputesDerivedValue(t *testing.T) {
	a := ExprActions()[0]

	out, err := a.Execute(context.Background(), ActionInput{
		Params:  map[string]any{"expression": `context.amount * 2`},
		Context: map[string]any{"amount": 21.0},
	})
	require.NoError(t, err)
	assert.Equal(t, 42.0, out.Data["result"])
}

func TestExprEval_RequiresExpression(t *testing.T) {
	a := ExprActions()[0]
	_, err := a.Execute(context.Background(), ActionInput{Params: map[string]any{}})
	require.Error(t, err)
}

func TestJQ_ReshapesContext(t *testing.T) {
	a := JQActions()[0]

	out, err := a.Execute(context.Background(), ActionInput{
		Params:  map[string]any{"query": `.email`},
		Context: map[string]any{"email": "ada@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", out.Data["result"])
}

func TestJQ_RequiresQuery(t *testing.T) {
	a := JQActions()[0]
	_, err := a.Execute(context.Background(), ActionInput{Params: map[string]any{}})
	require.Error(t, err)
}
