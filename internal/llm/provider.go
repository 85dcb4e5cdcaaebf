package llm

import (
	"context"
	"encoding/json"
)

// Provider abstracts the upstream generative-text service. Every use in this
// service is single-turn: one system prompt, one user prompt, one JSON reply.
// Providers are constructed once at startup and injected; never a hidden
// module-level singleton.
type Provider interface {
	// Generate sends a prompt and returns structured JSON. When req.Schema is
	// set the response content is validated against it before being returned.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Prompt is the user message.
	Prompt string

	// Schema, when set, is the JSON Schema the reply must conform to.
	Schema *Schema

	// MaxTokens caps the reply length. Zero means provider default.
	MaxTokens int

	// Temperature in [0,1]. Zero selects the provider default.
	Temperature float64
}

// Schema names a JSON response contract and carries its definition.
type Schema struct {
	Name       string
	Definition map[string]any
}

// Response is the model's reply.
type Response struct {
	// Content is the recovered JSON document (fences and surrounding prose
	// already stripped), validated when a Schema was requested.
	Content json.RawMessage

	// Model is the model that actually served the request.
	Model string
}
