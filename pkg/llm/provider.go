package llm

import (
	"context"

	"github.com/invopop/jsonschema"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model

	// ResponseSchema, when set, constrains the model output to a JSON
	// document matching the schema. Providers map it onto their native
	// structured-output mechanism.
	ResponseSchema     *jsonschema.Schema
	ResponseSchemaName string
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(max int) Option {
	return func(o *Options) {
		o.MaxTokens = max
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithResponseSchema derives a JSON schema from v and asks the provider for
// structured output matching it. v should be a struct value; the schema is
// flattened so the model sees a single object with the struct's fields.
func WithResponseSchema(name string, v any) Option {
	reflector := jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(v)
	return func(o *Options) {
		o.ResponseSchema = schema
		o.ResponseSchemaName = name
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
