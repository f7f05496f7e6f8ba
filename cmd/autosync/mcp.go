package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/dep-autosync/internal/mcp"
	"github.com/conn-castle/dep-autosync/internal/messages"
)

var runPlanServer = mcp.RunPlanServer

func newMcpCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:    messages.McpUse,
		Short:  messages.McpShort,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = rt.logger.Sync() }()
			orch, err := rt.orchestrator(false)
			if err != nil {
				return err
			}
			return runPlanServer(cmd.Context(), versionString(), orch)
		},
	}
}
