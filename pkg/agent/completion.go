package agent

import (
	"context"
	"strings"
)

// complete is the single place where the outbound completion request is
// shaped and where client failures are translated into the package error
// taxonomy. Every concrete agent's Respond delegates here, so all agents
// stay behaviourally consistent apart from their persona text.
func complete(ctx context.Context, client CompletionClient, agentName, systemPrompt, input string) (string, error) {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}

	output, err := client.Complete(ctx, systemPrompt, input)
	if err != nil {
		return "", NewError(KindUpstreamFailure, agentName, "completion call failed").WithCause(err)
	}

	if strings.TrimSpace(output) == "" {
		return "", NewError(KindEmptyResponse, agentName, "completion returned no usable content")
	}

	return output, nil
}
