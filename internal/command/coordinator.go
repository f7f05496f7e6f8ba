package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kaptinlin/jsonrepair"

	"github.com/conn-castle/dep-autosync/internal/autosync"
	"github.com/conn-castle/dep-autosync/internal/messages"
)

// EnvPreflightHint carries the preflight report to the guard command.
const EnvPreflightHint = "AUTOSYNC_PREFLIGHT"

// Commands lists the argv for each collaborator. Preflight is optional.
type Commands struct {
	Preflight []string
	Guard     []string
	Upgrade   []string
	// Timeouts bound each command individually; zero means no limit.
	PreflightTimeout time.Duration
	GuardTimeout     time.Duration
	UpgradeTimeout   time.Duration
}

// Coordinator implements autosync.Coordinator by running external commands that
// speak JSON over stdin and stdout.
type Coordinator struct {
	commands Commands
	runner   Runner
}

var _ autosync.Coordinator = (*Coordinator)(nil)

// New validates commands and returns a Coordinator. A nil runner uses RealRunner.
func New(commands Commands, runner Runner) (*Coordinator, error) {
	if len(commands.Guard) == 0 {
		return nil, fmt.Errorf(messages.CommandRequiredFmt, autosync.StageGuard)
	}
	if len(commands.Upgrade) == 0 {
		return nil, fmt.Errorf(messages.CommandRequiredFmt, autosync.StageUpgrade)
	}
	if runner == nil {
		runner = RealRunner{}
	}
	return &Coordinator{commands: commands, runner: runner}, nil
}

// Preflight runs the readiness command when configured. Non-JSON output is
// wrapped as a JSON string; empty output yields a nil report.
func (c *Coordinator) Preflight(ctx context.Context) (json.RawMessage, error) {
	if len(c.commands.Preflight) == 0 {
		return nil, nil
	}
	out, err := c.run(ctx, autosync.StagePreflight, c.commands.Preflight, c.commands.PreflightTimeout, nil, nil)
	if err != nil {
		return nil, err
	}
	return asJSON(out), nil
}

// Guard runs the scanner and decodes {"packages":[...]}. Malformed JSON is
// repaired once before giving up.
func (c *Coordinator) Guard(ctx context.Context, hint json.RawMessage) (autosync.ScanResult, error) {
	var env []string
	if len(hint) > 0 {
		env = append(env, EnvPreflightHint+"="+string(hint))
	}
	out, err := c.run(ctx, autosync.StageGuard, c.commands.Guard, c.commands.GuardTimeout, nil, env)
	if err != nil {
		return autosync.ScanResult{}, err
	}
	return decodeScan(out)
}

// Upgrade sends the request as JSON on stdin and returns stdout as the plan.
func (c *Coordinator) Upgrade(ctx context.Context, req autosync.UpgradeRequest) (json.RawMessage, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf(messages.CommandEncodeRequestFmt, err)
	}
	out, err := c.run(ctx, autosync.StageUpgrade, c.commands.Upgrade, c.commands.UpgradeTimeout, payload, nil)
	if err != nil {
		return nil, err
	}
	return asJSON(out), nil
}

func (c *Coordinator) run(ctx context.Context, stage autosync.Stage, argv []string, timeout time.Duration, stdin []byte, env []string) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	out, err := c.runner.Run(ctx, argv, stdin, env)
	if err != nil {
		return nil, fmt.Errorf(messages.CommandRunFailedFmt, stage, err)
	}
	return out, nil
}

// decodeScan parses guard output, treating blank output and a missing packages key as an empty scan.
func decodeScan(out []byte) (autosync.ScanResult, error) {
	var scan autosync.ScanResult
	trimmed := bytes.TrimSpace(out)
	if len(trimmed) == 0 {
		return scan, nil
	}
	err := json.Unmarshal(trimmed, &scan)
	if err == nil {
		return scan, nil
	}
	repaired, repairErr := jsonrepair.JSONRepair(string(trimmed))
	if repairErr != nil {
		return autosync.ScanResult{}, fmt.Errorf(messages.CommandDecodeScanFmt, err)
	}
	scan = autosync.ScanResult{}
	if err := json.Unmarshal([]byte(repaired), &scan); err != nil {
		return autosync.ScanResult{}, fmt.Errorf(messages.CommandDecodeScanFmt, err)
	}
	return scan, nil
}

// asJSON returns out as raw JSON, quoting it as a string when it is not valid JSON.
func asJSON(out []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(out)
	if len(trimmed) == 0 {
		return nil
	}
	if json.Valid(trimmed) {
		return json.RawMessage(append([]byte(nil), trimmed...))
	}
	quoted, err := json.Marshal(string(trimmed))
	if err != nil {
		return nil
	}
	return quoted
}
