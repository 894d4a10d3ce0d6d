package agent

import "context"

const writerSystemPrompt = `You are a writing agent.

You will receive some context from another agent about search results a user has gathered.
Your job is to write a high-quality article from that material. The article must not appear
to be AI written. The article should be SEO optimised without overly compromising its quality.

You are free to be as creative as you wish. However, each paragraph must have the following:
- The point you are trying to make
- If there is a follow up action point
- Why the follow up action point exists (or why the user needs to carry it out)

Search query:
`

// Writer restructures raw or researched content into well-formed prose.
// Pure completion call, no auxiliary tools.
type Writer struct {
	client CompletionClient
	system string
}

// NewWriter creates a Writer bound to a completion client.
func NewWriter(client CompletionClient, opts ...Option) *Writer {
	s := applyOptions(opts)

	return &Writer{
		client: client,
		system: s.system,
	}
}

func (w *Writer) Name() string { return "writer" }

func (w *Writer) SystemPrompt() string {
	if w.system != "" {
		return w.system
	}

	return writerSystemPrompt
}

func (w *Writer) Respond(ctx context.Context, input string) (string, error) {
	return complete(ctx, w.client, w.Name(), w.SystemPrompt(), input)
}

func (w *Writer) Duplicate() Agent {
	dup := *w

	return &dup
}

var _ Agent = (*Writer)(nil)
