package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/conn-castle/dep-autosync/internal/autosync"
	"github.com/conn-castle/dep-autosync/internal/messages"
)

// PlanToolName is the MCP tool that returns a dry-run auto-sync result.
const PlanToolName = "autosync_plan"

// Planner produces an auto-sync result. Callers pass an orchestrator whose policy
// has auto-apply disabled so the tool never upgrades anything.
type Planner interface {
	Execute(ctx context.Context) (autosync.Result, error)
}

type serverRunner func(ctx context.Context, server *mcp.Server) error

type planInput struct{}

// RunPlanServer starts an MCP server over stdio exposing the plan tool.
func RunPlanServer(ctx context.Context, version string, planner Planner) error {
	return runPlanServer(ctx, version, planner, defaultServerRunner)
}

// runPlanServer builds the MCP server and runs it using the provided runner.
func runPlanServer(ctx context.Context, version string, planner Planner, runner serverRunner) error {
	if runner == nil {
		return fmt.Errorf(messages.McpRunPlanServerFailedFmt, errors.New(messages.McpServerRunnerNil))
	}
	if err := runner(ctx, newPlanServer(version, planner)); err != nil {
		return fmt.Errorf(messages.McpRunPlanServerFailedFmt, err)
	}
	return nil
}

// defaultServerRunner runs the MCP server over stdio.
func defaultServerRunner(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

func newPlanServer(version string, planner Planner) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "autosync",
		Version: version,
	}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        PlanToolName,
		Description: messages.McpPlanToolDescription,
	}, planHandler(planner))
	return server
}

func planHandler(planner Planner) mcp.ToolHandlerFor[planInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ planInput) (*mcp.CallToolResult, any, error) {
		result, err := planner.Execute(ctx)
		if err != nil {
			return nil, nil, err
		}
		payload, err := json.Marshal(result)
		if err != nil {
			return nil, nil, err
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(payload)}},
		}, nil, nil
	}
}
