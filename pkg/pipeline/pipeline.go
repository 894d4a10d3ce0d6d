package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-agent-pipeline/pkg/agent"
	"github.com/askiada/go-agent-pipeline/pkg/pipeline/model"
)

// Pipeline is an ordered chain of agents executed as a strict left-to-right
// fold over an evolving ExecutionState.
type Pipeline struct {
	agents []agent.Agent
	infos  []*model.StepInfo
	opts   []model.PipelineOption
}

// New creates a new pipeline owning independent duplicates of the given
// agents, in the given order. An empty sequence is legal and yields a no-op
// pipeline whose output is the original query unchanged.
func New(agents []agent.Agent, opts ...model.PipelineOption) (*Pipeline, error) {
	pipe := &Pipeline{
		agents: make([]agent.Agent, 0, len(agents)),
		infos:  make([]*model.StepInfo, 0, len(agents)),
		opts:   opts,
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	parent := model.StartStep
	for i, ag := range agents {
		if ag == nil {
			return nil, ErrNilAgent
		}

		info := &model.StepInfo{
			Type:  model.AgentStepType,
			Name:  ag.Name(),
			Index: i,
		}

		for _, opt := range pipe.opts {
			err := opt.PrepareStep(parent, info)
			if err != nil {
				return nil, errors.Wrapf(err, "unable to prepare step %s", info.Name)
			}
		}

		pipe.agents = append(pipe.agents, ag.Duplicate())
		pipe.infos = append(pipe.infos, info)
		parent = info
	}

	for _, opt := range pipe.opts {
		err := opt.PrepareStep(parent, model.EndStep)
		if err != nil {
			return nil, errors.Wrap(err, "unable to prepare end step")
		}
	}

	return pipe, nil
}

// Steps returns the ordered step descriptions of the chain.
func (p *Pipeline) Steps() []*model.StepInfo {
	return p.infos
}

// Run executes the chain on the given query. For step 0 the input is the
// query; for every later step it is the previous step's output. On the
// first failure the remaining steps are not attempted and the returned
// error carries the history accumulated so far.
func (p *Pipeline) Run(ctx context.Context, query string) (*model.ExecutionState, error) {
	state := model.NewExecutionState(query)
	startTime := time.Now()

	parent := model.StartStep
	for i, ag := range p.agents {
		select {
		case <-ctx.Done():
			return nil, &CanceledError{History: state.History, Cause: ctx.Err()}
		default:
		}

		stepStart := time.Now()

		output, err := ag.Respond(ctx, state.CurrentInput())
		if err != nil {
			// An agent may surface context.DeadlineExceeded from its own
			// client timeouts; only the run context going dead makes the
			// abort a cancellation rather than a step failure.
			if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
				return nil, &CanceledError{History: state.History, Cause: err}
			}

			return nil, &StepError{
				Index:   i,
				Name:    p.infos[i].Name,
				History: state.History,
				Cause:   err,
			}
		}

		state.Append(p.infos[i].Name, output)

		for _, opt := range p.opts {
			err := opt.OnStepOutput(parent, p.infos[i], time.Since(stepStart))
			if err != nil {
				return nil, errors.Wrapf(err, "unable to run option on step %s output", p.infos[i].Name)
			}
		}

		parent = p.infos[i]
	}

	err := p.finishRun(time.Since(startTime))
	if err != nil {
		return nil, err
	}

	return state, nil
}

func (p *Pipeline) finishRun(totalDuration time.Duration) error {
	for _, opt := range p.opts {
		err := opt.Finish(totalDuration)
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}
