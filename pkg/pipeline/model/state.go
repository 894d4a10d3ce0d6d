package model

import "github.com/google/uuid"

// StepOutput is one entry of the run history: the output a named step
// produced at its position in the chain.
type StepOutput struct {
	Name   string `json:"agent"`
	Output string `json:"output"`
}

// ExecutionState is the transient record of a single run. It is created
// fresh for every run, owned exclusively by that run, and discarded once
// the result has been returned. History is append-only.
type ExecutionState struct {
	RunID   string       `json:"run_id"`
	Query   string       `json:"query"`
	History []StepOutput `json:"history"`
}

// NewExecutionState creates the state for a run starting from the caller's
// query, with an empty history.
func NewExecutionState(query string) *ExecutionState {
	return &ExecutionState{
		RunID: uuid.NewString(),
		Query: query,
	}
}

// CurrentInput returns the text the next step must receive: the last
// output appended, or the original query when no step has run yet.
func (s *ExecutionState) CurrentInput() string {
	if len(s.History) == 0 {
		return s.Query
	}

	return s.History[len(s.History)-1].Output
}

// Append records a step output and makes it the current input.
func (s *ExecutionState) Append(name, output string) {
	s.History = append(s.History, StepOutput{Name: name, Output: output})
}

// FinalOutput returns the output of the last step, or the original query
// for an empty chain.
func (s *ExecutionState) FinalOutput() string {
	return s.CurrentInput()
}
