package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/helixcrm/flowkit/internal/actions"
	"github.com/helixcrm/flowkit/internal/agents"
	"github.com/helixcrm/flowkit/internal/engine"
	"github.com/helixcrm/flowkit/internal/expressions"
	"github.com/helixcrm/flowkit/internal/integrations"
	"github.com/helixcrm/flowkit/internal/store"
	"github.com/helixcrm/flowkit/internal/validation"
	"github.com/helixcrm/flowkit/pkg/schema"
)

// runCmd executes a workflow definition against a trigger context and prints
// the execution report as JSON on stdout.
func runCmd(cfg Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	workflowPath := fs.String("workflow", "", "path to the workflow definition JSON")
	contextPath := fs.String("context", "", "path to the trigger context JSON")
	dbPath := fs.String("db", "", "database path (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *workflowPath == "" {
		return fmt.Errorf("run: -workflow is required")
	}

	wf, err := loadWorkflow(*workflowPath)
	if err != nil {
		return err
	}

	execCtx := schema.ExecutionContext{}
	if *contextPath != "" {
		data, err := os.ReadFile(*contextPath)
		if err != nil {
			return fmt.Errorf("read context: %w", err)
		}
		if err := json.Unmarshal(data, &execCtx); err != nil {
			return fmt.Errorf("parse context: %w", err)
		}
	}

	runner, cleanup, err := buildRunner(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	report := runner.ExecuteWorkflow(ctx, wf, execCtx)

	if cfg.PersistRuns {
		if err := persistRun(ctx, cfg, *dbPath, wf, report); err != nil {
			logger.WarnContext(ctx, "could not persist run", "error", err)
		}
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if !report.Success {
		return fmt.Errorf("workflow run %s aborted", report.RunID)
	}
	return nil
}

// validateCmd checks a workflow definition without executing it.
func validateCmd(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	workflowPath := fs.String("workflow", "", "path to the workflow definition JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *workflowPath == "" {
		return fmt.Errorf("validate: -workflow is required")
	}
	if _, err := loadWorkflow(*workflowPath); err != nil {
		return err
	}
	fmt.Println("workflow is valid")
	return nil
}

// loadWorkflow reads, shape-checks, decodes, and semantically validates a
// workflow definition file. Validation warnings go to stderr.
func loadWorkflow(path string) (*schema.WorkflowDefinition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workflow: %w", err)
	}

	jsv, err := validation.NewJSONSchemaValidator()
	if err != nil {
		return nil, err
	}
	if err := jsv.ValidateRaw(raw); err != nil {
		return nil, err
	}

	var wf schema.WorkflowDefinition
	if err := json.Unmarshal(raw, &wf); err != nil {
		return nil, fmt.Errorf("parse workflow: %w", err)
	}

	result := validation.NewSemantic().Validate(&wf)
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.Path, w.Message)
	}
	if err := result.ToError(); err != nil {
		return nil, err
	}
	return &wf, nil
}

// buildRunner wires the engine with its collaborators. The returned cleanup
// closes the agent connection when one was opened.
func buildRunner(cfg Config, logger *slog.Logger) (*engine.Runner, func(), error) {
	cel, err := expressions.NewCELEngine()
	if err != nil {
		return nil, nil, err
	}

	registry := actions.NewRegistry()
	if err := actions.RegisterBuiltins(registry, logger); err != nil {
		return nil, nil, err
	}

	providers := integrations.NewProviderRegistry()

	var agentDispatcher agents.Dispatcher
	cleanup := func() {}
	if cfg.AgentCommand != "" {
		parts := strings.Fields(cfg.AgentCommand)
		mcp := agents.NewMCPDispatcher(parts[0], parts[1:]...)
		agentDispatcher = mcp
		cleanup = func() { _ = mcp.Close() }
	}

	executor := engine.NewStepExecutor(
		engine.NewConditionEvaluator(cel),
		registry,
		providers,
		agentDispatcher,
		logger,
	)
	return engine.NewRunner(executor, logger), cleanup, nil
}

// persistRun upserts the workflow definition and appends the run report.
func persistRun(ctx context.Context, cfg Config, override string, wf *schema.WorkflowDefinition, report *schema.ExecutionReport) error {
	path := cfg.DBPath
	if override != "" {
		path = override
	}
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	s, err := store.NewLibSQLStore("file:" + path)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Migrate(ctx); err != nil {
		return err
	}

	if _, err := s.GetWorkflow(ctx, wf.ID); err != nil {
		if createErr := s.CreateWorkflow(ctx, &store.Workflow{
			ID:         wf.ID,
			Name:       wf.Name,
			Definition: *wf,
			IsActive:   wf.IsActive,
		}); createErr != nil {
			return createErr
		}
	}

	run, err := store.NewRunFromReport(report)
	if err != nil {
		return err
	}
	return s.SaveRun(ctx, run)
}
