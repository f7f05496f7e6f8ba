package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/dep-autosync/internal/autosync"
	"github.com/conn-castle/dep-autosync/internal/messages"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var outputJSON bool
	var dryRun bool
	var failOnBlock bool

	cmd := &cobra.Command{
		Use:   messages.RunUse,
		Short: messages.RunShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = rt.logger.Sync() }()

			orch, err := rt.orchestrator(!dryRun)
			if err != nil {
				return err
			}
			result, runErr := orch.Execute(cmd.Context())
			if runErr != nil {
				// A failed upgrade still produced a full result worth showing.
				if stage, ok := autosync.FailedStage(runErr); ok && stage == autosync.StageUpgrade {
					if err := renderResult(cmd.OutOrStdout(), result, outputJSON); err != nil {
						return err
					}
				}
				return runErr
			}
			if err := renderResult(cmd.OutOrStdout(), result, outputJSON); err != nil {
				return err
			}
			if !outputJSON {
				if err := renderWarnings(cmd.ErrOrStderr(), result); err != nil {
					return err
				}
			}
			if failOnBlock && !result.AutoApply.Allowed {
				return &SilentExitError{Code: 2}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&outputJSON, "json", false, messages.RunFlagJSON)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, messages.RunFlagDryRun)
	cmd.Flags().BoolVar(&failOnBlock, "fail-on-block", false, messages.RunFlagFailOnBlock)
	return cmd
}
