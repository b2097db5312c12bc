package providers

import "context"

// Reviewer is the text-generation abstraction the handler and CLI call.
type Reviewer interface {
	// Generate sends one prompt and returns the generated text. The error
	// carries the raw upstream body on HTTP failures.
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}
