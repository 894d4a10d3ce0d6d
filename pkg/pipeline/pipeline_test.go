package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-agent-pipeline/pkg/agent"
	"github.com/askiada/go-agent-pipeline/pkg/pipeline"
	"github.com/askiada/go-agent-pipeline/pkg/pipeline/measure"
	"github.com/askiada/go-agent-pipeline/pkg/pipeline/model"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		agents   []agent.Agent
		opts     []model.PipelineOption
		expErr   error
		expSteps int
	}{
		"empty": {
			expSteps: 0,
		},
		"three agents": {
			agents:   []agent.Agent{taggingAgent(t, "a"), taggingAgent(t, "b"), taggingAgent(t, "c")},
			expSteps: 3,
		},
		"nil agent": {
			agents: []agent.Agent{taggingAgent(t, "a"), nil},
			expErr: pipeline.ErrNilAgent,
		},
		"option new fails": {
			opts:   []model.PipelineOption{&stubOption{newErr: assert.AnError}},
			expErr: assert.AnError,
		},
		"option prepare fails": {
			agents: []agent.Agent{taggingAgent(t, "a")},
			opts:   []model.PipelineOption{&stubOption{prepareErr: assert.AnError}},
			expErr: assert.AnError,
		},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pipe, err := pipeline.New(tc.agents, tc.opts...)
			if tc.expErr != nil {
				require.ErrorIs(t, err, tc.expErr)

				return
			}
			require.NoError(t, err)
			assert.Len(t, pipe.Steps(), tc.expSteps)
		})
	}
}

func TestNewPreparesStepsInOrder(t *testing.T) {
	t.Parallel()

	opt := &stubOption{}
	_, err := pipeline.New([]agent.Agent{taggingAgent(t, "a"), taggingAgent(t, "b")}, opt)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", model.EndStep.Name}, opt.prepared)
}

func TestRunEmptyPipeline(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(nil)
	require.NoError(t, err)

	state, err := pipe.Run(context.Background(), "unchanged")
	require.NoError(t, err)

	assert.Empty(t, state.History)
	assert.Equal(t, "unchanged", state.FinalOutput())
	assert.NotEmpty(t, state.RunID)
}

func TestRunOrdering(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New([]agent.Agent{
		taggingAgent(t, "a"),
		taggingAgent(t, "b"),
		taggingAgent(t, "c"),
	})
	require.NoError(t, err)

	state, err := pipe.Run(context.Background(), "q")
	require.NoError(t, err)

	require.Len(t, state.History, 3)
	assert.Equal(t, model.StepOutput{Name: "a", Output: "a(q)"}, state.History[0])
	assert.Equal(t, model.StepOutput{Name: "b", Output: "b(a(q))"}, state.History[1])
	assert.Equal(t, model.StepOutput{Name: "c", Output: "c(b(a(q)))"}, state.History[2])
	assert.Equal(t, "c(b(a(q)))", state.FinalOutput())
}

func TestRunFailFast(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	pipe, err := pipeline.New([]agent.Agent{
		taggingAgent(t, "a"),
		failingAgent(t, "b", assert.AnError),
		countingAgent(t, "c", &calls),
	})
	require.NoError(t, err)

	state, err := pipe.Run(context.Background(), "q")
	require.Error(t, err)
	assert.Nil(t, state)

	var stepErr *pipeline.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 1, stepErr.Index)
	assert.Equal(t, "b", stepErr.Name)
	require.Len(t, stepErr.History, 1)
	assert.Equal(t, model.StepOutput{Name: "a", Output: "a(q)"}, stepErr.History[0])
	assert.ErrorIs(t, err, assert.AnError)

	assert.Equal(t, int64(0), calls.Load())
}

func TestRunCanceledBeforeStart(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	pipe, err := pipeline.New([]agent.Agent{countingAgent(t, "a", &calls)})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state, err := pipe.Run(ctx, "q")
	assert.Nil(t, state)

	var canceled *pipeline.CanceledError
	require.ErrorAs(t, err, &canceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, canceled.History)
	assert.Equal(t, int64(0), calls.Load())
}

func TestRunCanceledMidRun(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pipe, err := pipeline.New([]agent.Agent{
		taggingAgent(t, "a"),
		&stubAgent{
			name: "b",
			respond: func(ctx context.Context, _ string) (string, error) {
				cancel()

				return "", ctx.Err()
			},
		},
	})
	require.NoError(t, err)

	state, err := pipe.Run(ctx, "q")
	assert.Nil(t, state)

	var canceled *pipeline.CanceledError
	require.ErrorAs(t, err, &canceled)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, canceled.History, 1)
	assert.Equal(t, "a(q)", canceled.History[0].Output)
}

func TestRunClientTimeoutIsStepFailure(t *testing.T) {
	t.Parallel()

	timeoutErr := agent.NewError(agent.KindUpstreamFailure, "writer", "completion call failed").
		WithCause(context.DeadlineExceeded)

	pipe, err := pipeline.New([]agent.Agent{failingAgent(t, "writer", timeoutErr)})
	require.NoError(t, err)

	// the run context is alive; the client's own timeout is the step's
	// failure, not a run cancellation
	state, err := pipe.Run(context.Background(), "q")
	assert.Nil(t, state)

	var stepErr *pipeline.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 0, stepErr.Index)
	assert.Equal(t, "writer", stepErr.Name)
	assert.True(t, agent.IsKind(err, agent.KindUpstreamFailure))

	var canceled *pipeline.CanceledError
	assert.False(t, errors.As(err, &canceled))
}

func TestRunOptionLifecycle(t *testing.T) {
	t.Parallel()

	opt := &stubOption{}
	pipe, err := pipeline.New([]agent.Agent{taggingAgent(t, "a"), taggingAgent(t, "b")}, opt)
	require.NoError(t, err)

	_, err = pipe.Run(context.Background(), "q")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, opt.outputs)
	assert.True(t, opt.finished)
}

func TestRunOptionOutputError(t *testing.T) {
	t.Parallel()

	opt := &stubOption{outputErr: assert.AnError}
	pipe, err := pipeline.New([]agent.Agent{taggingAgent(t, "a")}, opt)
	require.NoError(t, err)

	state, err := pipe.Run(context.Background(), "q")
	assert.Nil(t, state)
	require.ErrorIs(t, err, assert.AnError)
}

func TestRunDuplicatesTemplates(t *testing.T) {
	t.Parallel()

	template := taggingAgent(t, "a")
	pipe, err := pipeline.New([]agent.Agent{template})
	require.NoError(t, err)

	// mutating the template after construction must not reach the pipeline
	template.respond = func(_ context.Context, _ string) (string, error) {
		return "", assert.AnError
	}

	state, err := pipe.Run(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "a(q)", state.FinalOutput())
}

func TestRunConcurrent(t *testing.T) {
	t.Parallel()

	m := measure.NewDefaultMeasure()
	pipe, err := pipeline.New(
		[]agent.Agent{taggingAgent(t, "a"), taggingAgent(t, "b")},
		measure.PipelineMeasure(m),
	)
	require.NoError(t, err)

	const runs = 16

	results := make([]*model.ExecutionState, runs)
	grp, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < runs; i++ {
		i := i
		grp.Go(func() error {
			state, err := pipe.Run(ctx, fmt.Sprintf("q%d", i))
			if err != nil {
				return err
			}
			results[i] = state

			return nil
		})
	}
	require.NoError(t, grp.Wait())

	seen := make(map[string]struct{}, runs)
	for i, state := range results {
		require.NotNil(t, state)
		assert.Equal(t, fmt.Sprintf("b(a(q%d))", i), state.FinalOutput())
		seen[state.RunID] = struct{}{}
	}
	assert.Len(t, seen, runs)
	assert.Positive(t, m.AVGRunDuration())
}
