package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/dep-autosync/internal/autosync"
	"github.com/conn-castle/dep-autosync/internal/gate"
	"github.com/conn-castle/dep-autosync/internal/messages"
	"github.com/conn-castle/dep-autosync/internal/risk"
)

type plannerFunc func(ctx context.Context) (autosync.Result, error)

func (f plannerFunc) Execute(ctx context.Context) (autosync.Result, error) {
	return f(ctx)
}

func connect(t *testing.T, planner Planner) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	server := newPlanServer("v1.0.0", planner)
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestPlanToolReturnsResultJSON(t *testing.T) {
	session := connect(t, plannerFunc(func(context.Context) (autosync.Result, error) {
		assessment := risk.Assess([]risk.Candidate{{Name: "pkg-one", Current: "1.0.0", Candidate: "1.0.1"}})
		return autosync.Result{
			RunID:      "run-1",
			Assessment: assessment,
			AutoApply:  gate.Evaluate(assessment, mustPolicy(t)),
		}, nil
	}))

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: PlanToolName, Arguments: map[string]any{}})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	var payload struct {
		RunID      string `json:"run_id"`
		Assessment struct {
			Counts map[string]int `json:"counts"`
		} `json:"assessment"`
		AutoApply struct {
			Allowed bool `json:"allowed"`
			Applied bool `json:"applied"`
		} `json:"auto_apply"`
	}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &payload))
	require.Equal(t, "run-1", payload.RunID)
	require.Equal(t, 1, payload.Assessment.Counts["patch"])
	require.True(t, payload.AutoApply.Allowed)
	require.False(t, payload.AutoApply.Applied)
}

func TestPlanToolReportsPlannerError(t *testing.T) {
	session := connect(t, plannerFunc(func(context.Context) (autosync.Result, error) {
		return autosync.Result{}, errors.New("guard unavailable")
	}))

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: PlanToolName, Arguments: map[string]any{}})
	require.NoError(t, err)
	require.True(t, res.IsError)
}

func TestRunPlanServerNilRunner(t *testing.T) {
	err := runPlanServer(context.Background(), "v1", nil, nil)
	require.ErrorContains(t, err, messages.McpServerRunnerNil)
}

func TestRunPlanServerWrapsRunnerError(t *testing.T) {
	err := runPlanServer(context.Background(), "v1", nil, func(context.Context, *mcp.Server) error {
		return errors.New("transport closed")
	})
	require.ErrorContains(t, err, "transport closed")
}

func mustPolicy(t *testing.T) gate.Policy {
	t.Helper()
	policy, err := gate.NewPolicy(nil, nil, nil, false)
	require.NoError(t, err)
	return policy
}
