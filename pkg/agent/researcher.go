package agent

import "context"

const researcherSystemPrompt = `You are a research agent.

You will receive a question that may be quite short or lack context.
Your job is to produce a high-quality summary for the user, assisted by the provided context.
The provided context is in JSON format and contains the initial search results for the query.

Be concise.

Question:
`

// Researcher gathers reference material from the search capability before
// calling the completion capability with the enriched input.
type Researcher struct {
	client CompletionClient
	search SearchClient
	system string
}

// NewResearcher creates a Researcher bound to a completion client and a
// search client.
func NewResearcher(client CompletionClient, search SearchClient, opts ...Option) *Researcher {
	s := applyOptions(opts)

	return &Researcher{
		client: client,
		search: search,
		system: s.system,
	}
}

func (r *Researcher) Name() string { return "researcher" }

func (r *Researcher) SystemPrompt() string {
	if r.system != "" {
		return r.system
	}

	return researcherSystemPrompt
}

// Respond first invokes the search capability with the raw input, then
// calls the completion capability with the query plus retrieved material.
// A search failure is reported as KindToolFailure so callers can tell
// "couldn't search" apart from "couldn't generate".
func (r *Researcher) Respond(ctx context.Context, input string) (string, error) {
	results, err := r.search.Search(ctx, input)
	if err != nil {
		return "", NewError(KindToolFailure, r.Name(), "search call failed").WithCause(err)
	}

	enriched := input + "\n\nProvided context:\n" + results

	return complete(ctx, r.client, r.Name(), r.SystemPrompt(), enriched)
}

func (r *Researcher) Duplicate() Agent {
	dup := *r

	return &dup
}

var _ Agent = (*Researcher)(nil)
