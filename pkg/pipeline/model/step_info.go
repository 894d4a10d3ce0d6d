package model

type stepType string

const (
	StartStepType stepType = "start"
	AgentStepType stepType = "agent"
	EndStepType   stepType = "end"
)

// StepInfo describes one position of the chain. Index is zero-based and
// fixed at construction; ordering is caller-defined and never changes.
type StepInfo struct {
	Type  stepType
	Name  string
	Index int
}

var (
	StartStep = &StepInfo{Type: StartStepType, Name: "start", Index: -1}
	EndStep   = &StepInfo{Type: EndStepType, Name: "end", Index: -1}
)
