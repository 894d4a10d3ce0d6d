package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-agent-pipeline/pkg/pipeline/measure"
	"github.com/askiada/go-agent-pipeline/pkg/pipeline/model"
)

type pipelineDrawer struct {
	Drawer
	m measure.Measure
}

func (pd *pipelineDrawer) New() error {
	err := pd.AddStep(model.StartStep.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add start step to drawer")
	}

	err = pd.AddStep(model.EndStep.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add end step to drawer")
	}

	return nil
}

func (pd *pipelineDrawer) PrepareStep(parentStep, step *model.StepInfo) error {
	err := pd.AddStep(step.Name)
	if err != nil {
		return err
	}

	return pd.AddLink(parentStep.Name, step.Name)
}

func (pd *pipelineDrawer) OnStepOutput(parentStep, step *model.StepInfo, stepDuration time.Duration) error {
	return nil
}

func (pd *pipelineDrawer) Finish(totalDuration time.Duration) error {
	if pd.m != nil {
		err := pd.SetTotalTime(model.EndStep.Name, totalDuration)
		if err != nil {
			return errors.Wrap(err, "unable to set total time")
		}

		err = pd.AddMeasure(pd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err := pd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw chain")
	}

	return nil
}

// PipelineDrawer renders the chain with the given drawer after each run,
// annotated with durations from measure when it is not nil.
func PipelineDrawer(drawer Drawer, measure measure.Measure) model.PipelineOption {
	return &pipelineDrawer{drawer, measure}
}
