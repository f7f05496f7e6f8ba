package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/conn-castle/dep-autosync/internal/autosync"
	"github.com/conn-castle/dep-autosync/internal/gate"
	"github.com/conn-castle/dep-autosync/internal/messages"
	"github.com/conn-castle/dep-autosync/internal/risk"
)

func newAssessCmd() *cobra.Command {
	var input string
	var outputJSON bool
	var maxMajor, maxMinor, maxPatch int

	cmd := &cobra.Command{
		Use:   messages.AssessUse,
		Short: messages.AssessShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scan, err := readScan(cmd.InOrStdin(), input)
			if err != nil {
				return err
			}
			limit := func(name string, value int) *int {
				if !cmd.Flags().Changed(name) {
					return nil
				}
				return &value
			}
			policy, err := gate.NewPolicy(limit("max-major", maxMajor), limit("max-minor", maxMinor), limit("max-patch", maxPatch), false)
			if err != nil {
				return fmt.Errorf(messages.AssessInvalidPolicy, err)
			}

			assessment := risk.Assess(scan.Packages)
			result := autosync.Result{
				Assessment: assessment,
				AutoApply:  gate.Evaluate(assessment, policy),
			}
			if err := renderResult(cmd.OutOrStdout(), result, outputJSON); err != nil {
				return err
			}
			if outputJSON {
				return nil
			}
			return renderWarnings(cmd.ErrOrStderr(), result)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", messages.AssessFlagInput)
	cmd.Flags().BoolVar(&outputJSON, "json", false, messages.RunFlagJSON)
	cmd.Flags().IntVar(&maxMajor, "max-major", 0, messages.AssessFlagMaxMajor)
	cmd.Flags().IntVar(&maxMinor, "max-minor", 0, messages.AssessFlagMaxMinor)
	cmd.Flags().IntVar(&maxPatch, "max-patch", 0, messages.AssessFlagMaxPatch)
	return cmd
}

// readScan decodes a guard-shaped {"packages":[...]} document from path or stdin.
func readScan(stdin io.Reader, path string) (autosync.ScanResult, error) {
	source := messages.AssessStdinSource
	var data []byte
	var err error
	if path == "" {
		data, err = io.ReadAll(stdin)
	} else {
		source = path
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return autosync.ScanResult{}, fmt.Errorf(messages.AssessReadInputFmt, source, err)
	}
	var scan autosync.ScanResult
	if len(data) == 0 {
		return scan, nil
	}
	if err := json.Unmarshal(data, &scan); err != nil {
		return autosync.ScanResult{}, fmt.Errorf(messages.AssessDecodeFmt, source, err)
	}
	return scan, nil
}
