package api

// CompletionRequest is a single-turn request to a completion provider.
type CompletionRequest struct {
	// Required
	Prompt string

	// Optional params
	ModelName   string
	Temperature float32
	MaxTokens   int
}
