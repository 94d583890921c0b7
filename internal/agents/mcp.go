package agents

import (
	"context"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/helixcrm/flowkit/pkg/schema"
)

// askToolName is the tool the agent subsystem exposes over MCP.
const askToolName = "agent.ask"

// MCPDispatcher implements Dispatcher over an MCP stdio connection to the
// agent subsystem. The connection is established lazily on first Ask and
// reused afterwards.
type MCPDispatcher struct {
	command string
	args    []string

	mu     sync.Mutex
	client *client.Client
}

// NewMCPDispatcher creates a dispatcher that launches the given command as an
// MCP stdio server. The process is started on first use.
func NewMCPDispatcher(command string, args ...string) *MCPDispatcher {
	return &MCPDispatcher{command: command, args: args}
}

// Ask sends the prompt and trigger context to the agent via the agent.ask
// tool. All failure modes come back as Result values.
func (d *MCPDispatcher) Ask(ctx context.Context, agentID, prompt string, execCtx schema.ExecutionContext) Result {
	c, err := d.connect(ctx)
	if err != nil {
		return Result{OK: false, Error: "agent subsystem unavailable: " + err.Error()}
	}

	res, err := c.CallTool(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: askToolName,
			Arguments: map[string]any{
				"agent_id": agentID,
				"prompt":   prompt,
				"context":  map[string]any(execCtx),
			},
		},
	})
	if err != nil {
		return Result{OK: false, Error: "agent call failed: " + err.Error()}
	}

	text := collectText(res)
	if res.IsError {
		if text == "" {
			text = "agent returned an error"
		}
		return Result{OK: false, Error: text}
	}
	return Result{OK: true, Output: text}
}

// Close shuts down the MCP connection if one was established.
func (d *MCPDispatcher) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.client == nil {
		return nil
	}
	err := d.client.Close()
	d.client = nil
	return err
}

// connect lazily starts the stdio server and performs the MCP handshake.
func (d *MCPDispatcher) connect(ctx context.Context) (*client.Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client != nil {
		return d.client, nil
	}

	c, err := client.NewStdioMCPClient(d.command, nil, d.args...)
	if err != nil {
		return nil, err
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "flowkit", Version: "1.0.0"}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		_ = c.Close()
		return nil, err
	}

	d.client = c
	return c, nil
}

// collectText concatenates all text content blocks of a tool result.
func collectText(res *mcp.CallToolResult) string {
	if res == nil {
		return ""
	}
	var sb strings.Builder
	for _, content := range res.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}

var _ Dispatcher = (*MCPDispatcher)(nil)
