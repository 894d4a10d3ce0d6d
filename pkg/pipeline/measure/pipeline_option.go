package measure

import (
	"time"

	"github.com/askiada/go-agent-pipeline/pkg/pipeline/model"
)

type pipelineMeasure struct {
	Measure
}

func (pm *pipelineMeasure) New() error {
	return nil
}

func (pm *pipelineMeasure) PrepareStep(parentStep, step *model.StepInfo) error {
	if step.Type == model.AgentStepType {
		pm.AddMetric(step.Name)
	}

	return nil
}

func (pm *pipelineMeasure) OnStepOutput(parentStep, step *model.StepInfo, stepDuration time.Duration) error {
	mt := pm.GetMetric(step.Name)
	if mt != nil {
		mt.AddDuration(stepDuration)
	}

	return nil
}

func (pm *pipelineMeasure) Finish(totalDuration time.Duration) error {
	pm.AddRun(totalDuration)

	return nil
}

// PipelineMeasure makes the given Measure observe every step of a pipeline.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{measure}
}
