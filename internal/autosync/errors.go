package autosync

import (
	"errors"
	"fmt"

	"github.com/conn-castle/dep-autosync/internal/messages"
)

// ErrNilCoordinator is returned by New when no coordinator is supplied.
var ErrNilCoordinator = errors.New(messages.AutosyncNilCoordinator)

// Stage names a collaborator call in the pipeline.
type Stage string

// Pipeline stages that call out to collaborators.
const (
	StagePreflight Stage = "preflight"
	StageGuard     Stage = "guard"
	StageUpgrade   Stage = "upgrade"
)

// StageError reports which collaborator failed. It unwraps to the collaborator's error unchanged.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf(messages.AutosyncStageFailedFmt, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FailedStage returns the stage that produced err, if any.
func FailedStage(err error) (Stage, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage, true
	}
	return "", false
}
