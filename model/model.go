package model

import "context"

// Request captures the normalized input for one generation call.
type Request struct {
	// Instructions is the system-level persona/task framing.
	Instructions string `json:"instructions"`
	// Input is the user-level content of the call.
	Input string `json:"input"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required to drive generation. Generate
// returns the complete generated text or an error; implementations must
// respect ctx cancellation and classify provider failures via the typed
// errors in this package.
type Model interface {
	Generate(ctx context.Context, req Request) (string, error)

	// Info returns information about the model implementation.
	Info() Info
}
