package agent

import "context"

const twitterSystemPrompt = `You are a social media agent for Twitter.

You will receive researched content about a topic. Your job is to compress it into a single
engaging tweet. The tweet must stay under 280 characters, hook the reader in the first few
words, and end with at most two relevant hashtags.

Do not use emojis. Do not include links unless they appear in the content.

Content:
`

// TwitterAgent compresses content into a platform-length-constrained,
// engagement-oriented form. The length constraint is not enforced
// programmatically; adherence relies on the persona alone.
type TwitterAgent struct {
	client CompletionClient
	system string
}

// NewTwitterAgent creates a TwitterAgent bound to a completion client.
func NewTwitterAgent(client CompletionClient, opts ...Option) *TwitterAgent {
	s := applyOptions(opts)

	return &TwitterAgent{
		client: client,
		system: s.system,
	}
}

func (a *TwitterAgent) Name() string { return "twitter_agent" }

func (a *TwitterAgent) SystemPrompt() string {
	if a.system != "" {
		return a.system
	}

	return twitterSystemPrompt
}

func (a *TwitterAgent) Respond(ctx context.Context, input string) (string, error) {
	return complete(ctx, a.client, a.Name(), a.SystemPrompt(), input)
}

func (a *TwitterAgent) Duplicate() Agent {
	dup := *a

	return &dup
}

var _ Agent = (*TwitterAgent)(nil)
