package drawer

import (
	"time"

	"github.com/askiada/go-agent-pipeline/pkg/pipeline/measure"
)

// Drawer is an interface that defines the methods for drawing an agent chain.
type Drawer interface {
	// AddStep adds a step to the chain drawer.
	AddStep(stepName string) error
	// AddLink adds a link between a parent step and its child step.
	AddLink(parentStepName, childStepName string) error
	// AddMeasure annotates the chain with measured step durations.
	AddMeasure(measure measure.Measure) error
	// SetTotalTime annotates a step with the total run duration.
	SetTotalTime(stepName string, totalDuration time.Duration) error
	// Draw creates a file with the chain graph.
	Draw() error
}
