package model

import "time"

// PipelineOption defines the interface for pipeline options. Options observe
// the chain as it is assembled and as each run progresses; they never alter
// the inputs or outputs flowing through the steps.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error

	// PrepareStep runs when a step is added to the chain, before any run.
	PrepareStep(parentStep, step *StepInfo) error

	// OnStepOutput runs every time a step produces its output.
	// stepDuration is the time spent inside the step itself.
	OnStepOutput(parentStep, step *StepInfo, stepDuration time.Duration) error

	// Finish runs after a pipeline run has completed.
	Finish(totalDuration time.Duration) error
}
