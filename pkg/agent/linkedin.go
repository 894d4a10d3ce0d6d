package agent

import "context"

const linkedinSystemPrompt = `You are a social media agent for LinkedIn.

You will receive researched content about a topic. Your job is to rewrite it as a longer-form
LinkedIn post in a professional register. Open with a one-line observation, develop the idea
in two or three short paragraphs, and close with a question that invites discussion.

Avoid buzzwords and avoid hashtag spam; at most three hashtags at the very end.

Content:
`

// LinkedInAgent rewrites content as a longer-form, professional-register
// post. Pure completion call, no auxiliary tools.
type LinkedInAgent struct {
	client CompletionClient
	system string
}

// NewLinkedInAgent creates a LinkedInAgent bound to a completion client.
func NewLinkedInAgent(client CompletionClient, opts ...Option) *LinkedInAgent {
	s := applyOptions(opts)

	return &LinkedInAgent{
		client: client,
		system: s.system,
	}
}

func (a *LinkedInAgent) Name() string { return "linkedin_agent" }

func (a *LinkedInAgent) SystemPrompt() string {
	if a.system != "" {
		return a.system
	}

	return linkedinSystemPrompt
}

func (a *LinkedInAgent) Respond(ctx context.Context, input string) (string, error) {
	return complete(ctx, a.client, a.Name(), a.SystemPrompt(), input)
}

func (a *LinkedInAgent) Duplicate() Agent {
	dup := *a

	return &dup
}

var _ Agent = (*LinkedInAgent)(nil)
