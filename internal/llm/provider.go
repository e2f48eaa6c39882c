// Package llm abstracts the language-model backends used for content
// generation. Providers return structured JSON validated against a schema;
// the generation adapters in internal/source wrap them.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction. Content generation
// here is always single-turn: one system prompt, one user prompt, one
// structured response.
type Provider interface {
	// Generate sends the prompt and returns a structured response.
	// When the request carries a Schema the provider uses its native
	// structured-output mechanism and the returned Content is JSON
	// validated against that schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Prompt is the user message.
	Prompt string

	// Schema is the JSON Schema the response must conform to.
	// When nil the response Content is the raw text.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0–1.0. Zero means deterministic.
	Temperature float64
}

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies the schema, kebab-case (e.g. "meaning-content").
	Name string

	// Description guides the model; sent alongside the schema.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. With a Schema it is the validated
	// JSON object; without one, the raw text.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
