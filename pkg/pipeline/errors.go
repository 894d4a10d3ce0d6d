package pipeline

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/askiada/go-agent-pipeline/pkg/pipeline/model"
)

// ErrNilAgent is returned when the agent sequence contains a nil entry.
var ErrNilAgent = errors.New("agent must be set")

// StepError reports the first failing step of a run. History holds the
// outputs of the steps that completed before the failure, in order.
type StepError struct {
	Index   int
	Name    string
	History []model.StepOutput
	Cause   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s) failed: %v", e.Index, e.Name, e.Cause)
}

// Unwrap returns the failing agent's error.
func (e *StepError) Unwrap() error {
	return e.Cause
}

// CanceledError reports a run aborted by timeout or cancellation before
// completion. History holds whatever was produced before the abort.
type CanceledError struct {
	History []model.StepOutput
	Cause   error
}

func (e *CanceledError) Error() string {
	return fmt.Sprintf("run canceled: %v", e.Cause)
}

// Unwrap returns the context error that aborted the run.
func (e *CanceledError) Unwrap() error {
	return e.Cause
}
