package pipeline_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/askiada/go-agent-pipeline/pkg/agent"
	"github.com/askiada/go-agent-pipeline/pkg/pipeline/model"
)

type stubAgent struct {
	name    string
	system  string
	respond func(ctx context.Context, input string) (string, error)
}

func (s *stubAgent) Name() string { return s.name }

func (s *stubAgent) SystemPrompt() string { return s.system }

func (s *stubAgent) Respond(ctx context.Context, input string) (string, error) {
	return s.respond(ctx, input)
}

func (s *stubAgent) Duplicate() agent.Agent {
	dup := *s

	return &dup
}

var _ agent.Agent = (*stubAgent)(nil)

// taggingAgent wraps its input in name(...) so the ordering of a run can be
// read off the final output.
func taggingAgent(t *testing.T, name string) *stubAgent {
	t.Helper()

	return &stubAgent{
		name: name,
		respond: func(_ context.Context, input string) (string, error) {
			return fmt.Sprintf("%s(%s)", name, input), nil
		},
	}
}

func failingAgent(t *testing.T, name string, err error) *stubAgent {
	t.Helper()

	return &stubAgent{
		name: name,
		respond: func(_ context.Context, _ string) (string, error) {
			return "", err
		},
	}
}

// countingAgent shares its counter across duplicates.
func countingAgent(t *testing.T, name string, calls *atomic.Int64) *stubAgent {
	t.Helper()

	return &stubAgent{
		name: name,
		respond: func(_ context.Context, input string) (string, error) {
			calls.Add(1)

			return input, nil
		},
	}
}

type stubOption struct {
	newErr     error
	prepareErr error
	outputErr  error
	finishErr  error

	prepared []string
	outputs  []string
	finished bool
}

func (o *stubOption) New() error { return o.newErr }

func (o *stubOption) PrepareStep(_, step *model.StepInfo) error {
	o.prepared = append(o.prepared, step.Name)

	return o.prepareErr
}

func (o *stubOption) OnStepOutput(_, step *model.StepInfo, _ time.Duration) error {
	o.outputs = append(o.outputs, step.Name)

	return o.outputErr
}

func (o *stubOption) Finish(_ time.Duration) error {
	o.finished = true

	return o.finishErr
}

var _ model.PipelineOption = (*stubOption)(nil)
