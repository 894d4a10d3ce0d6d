package agent

import "context"

// DefaultSystemPrompt applies when an agent does not define a persona of
// its own.
const DefaultSystemPrompt = "You are an agent. Answer the user as helpfully and concisely as you can."

// CompletionClient is the completion capability agents delegate to. The
// handle may be shared across agents and across concurrent runs; latency
// and retry behaviour are the client's concern, never the agent's.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userContent string) (string, error)
}

// SearchClient is the auxiliary retrieval capability used by the
// Researcher before its completion call.
type SearchClient interface {
	Search(ctx context.Context, query string) (string, error)
}

// Agent is a single pipeline step.
type Agent interface {
	// Name returns a stable, non-empty identifier used for attribution
	// in run history entries.
	Name() string

	// SystemPrompt returns the persona injected ahead of the user content.
	// An empty string means DefaultSystemPrompt applies.
	SystemPrompt() string

	// Respond produces the step's output from the accumulated input.
	Respond(ctx context.Context, input string) (string, error)

	// Duplicate returns an independent value with the same name and
	// persona. The client handle is copied by reference, not reconnected.
	Duplicate() Agent
}

type settings struct {
	system string
}

// Option configures a concrete agent at construction time.
type Option func(*settings)

// WithSystemPrompt replaces the agent's built-in persona.
func WithSystemPrompt(system string) Option {
	return func(s *settings) {
		s.system = system
	}
}

func applyOptions(opts []Option) settings {
	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}

	return s
}
