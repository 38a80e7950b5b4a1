package llm

import "context"

// Provider is the delegated answer generator. The pipeline builds the
// enriched context; a Provider turns it into the natural-language reply.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}
