package port

import "context"

// CompletionRequest is a single-turn prompt sent to a completion API.
type CompletionRequest struct {
	Prompt      string
	Temperature float64
}

// CompletionResponse is the upstream reply. Truncated is set when the
// provider stopped because it hit its output token limit.
type CompletionResponse struct {
	Text      string
	Model     string
	Truncated bool
}

// CompletionClient sends one prompt to a completion API and returns its reply.
// Implementations must not retry.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
