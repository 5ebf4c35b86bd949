package modelapi

import "context"

const (
	ASSISTANT = "assistant"
	SYSTEM    = "system"
	USER      = "user"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CompletionRequest struct {
	SystemPrompt string
	Messages     []ChatMessage
	MaxTokens    int
	Temperature  float64
}

// CompletionProvider is the one seam between the Sarthi pipeline and a
// model vendor. Implementations must honor the context deadline: an
// abandoned chat turn must not leave a model call running.
type CompletionProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
