package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/conn-castle/dep-autosync/internal/messages"
)

// waitDelay bounds how long Run waits for inherited pipes to close after the
// context kills the command, so grandchildren cannot outlive a timeout.
const waitDelay = time.Second

// Runner executes a collaborator command and returns its stdout.
// This interface is package-local so tests can substitute canned output.
type Runner interface {
	Run(ctx context.Context, argv []string, stdin []byte, env []string) ([]byte, error)
}

// RealRunner runs commands with os/exec, inheriting the process environment.
type RealRunner struct{}

// Run starts argv[0] with the remaining args, feeds stdin, and captures stdout.
// Extra env entries are appended to the inherited environment.
// On failure the trimmed stderr is included in the error.
func (RealRunner) Run(ctx context.Context, argv []string, stdin []byte, env []string) ([]byte, error) {
	if len(argv) == 0 {
		return nil, errors.New(messages.CommandEmptyArgv)
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = bytes.NewReader(stdin)
	cmd.Env = append(os.Environ(), env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", ctxErr, err)
		}
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return nil, fmt.Errorf("%w: %s", err, detail)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
