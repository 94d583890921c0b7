package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, WorkflowID(ctx))
	assert.Empty(t, RunID(ctx))
	assert.Empty(t, StepID(ctx))

	ctx = WithIDs(ctx, "wf-1", "run-1", "step-1")
	assert.Equal(t, "wf-1", WorkflowID(ctx))
	assert.Equal(t, "run-1", RunID(ctx))
	assert.Equal(t, "step-1", StepID(ctx))
}

func TestCorrelationHandler_InjectsIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCorrelationHandler(slog.NewTextHandler(&buf, nil)))

	ctx := WithIDs(context.Background(), "wf-9", "run-9", "")
	logger.InfoContext(ctx, "step executed")

	out := buf.String()
	assert.Contains(t, out, "workflow_id=wf-9")
	assert.Contains(t, out, "run_id=run-9")
	assert.NotContains(t, out, "step_id=")
}

func TestCorrelationHandler_PlainContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCorrelationHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("no ids")
	require.Contains(t, buf.String(), "no ids")
	assert.NotContains(t, buf.String(), "workflow_id")
}
