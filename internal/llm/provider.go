// Package llm is a thin, provider-neutral layer over the text generation
// APIs the tutor talks to. Every tutor call is a single prompt under a
// system instruction, answered either as free Markdown or as a flat JSON
// object of string fields.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends one prompt to the model. When req.Schema is set the
	// provider asks for JSON conforming to it and Content holds the
	// validated object; otherwise Content holds the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request is a single-turn generation request.
type Request struct {
	System string
	Prompt string

	// Schema constrains the response to a JSON object. Nil means free text.
	Schema *Schema

	// MaxTokens caps the response length. Zero leaves it to the provider
	// where the API allows that.
	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Stop reasons normalized across providers.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response holds the model's output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the actual model that served the request.
	Model string

	StopReason string
}

// Text returns the response content as a string.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finish applies the checks every provider runs on a raw reply before
// handing it back: truncated structured output is an error, and structured
// output must match its schema.
func finish(req Request, content json.RawMessage, stop, model string, usage Usage) (*Response, error) {
	if req.Schema != nil && stop == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if req.Schema != nil {
		obj, err := req.Schema.Validate(content)
		if err != nil {
			return nil, err
		}
		content = obj
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names are passed through so direct model IDs work.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
