// Package llm provides abstractions for LLM provider integration.
//
// Providers handle API communication with an OpenAI-compatible service and
// return the assistant's raw text. This keeps providers focused on transport
// concerns; prompt construction, response validation and memory merging live
// in the router and journal layers.
package llm

import "context"

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat-completion message.
type Message struct {
	Role    Role
	Content string
}

// SystemMessage creates a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage creates a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// CompleteOptions carries per-call request options.
type CompleteOptions struct {
	// JSONObject asks the provider for response_format {"type":"json_object"},
	// constraining the model to emit a single JSON document.
	JSONObject bool
}

// CompleteOption configures a single Complete call.
type CompleteOption func(*CompleteOptions)

// WithJSONObject requests JSON-object response formatting.
func WithJSONObject() CompleteOption {
	return func(o *CompleteOptions) {
		o.JSONObject = true
	}
}

// Provider defines the interface for LLM integrations.
//
// Complete sends messages and blocks until the full assistant response is
// available or the context is cancelled. Transport and HTTP-status failures
// are returned as errors; callers treat them as an aborted turn, never as
// partial data.
type Provider interface {
	Complete(ctx context.Context, messages []Message, opts ...CompleteOption) (string, error)

	// GetModel returns the model name being used.
	GetModel() string

	// GetBaseURL returns the base URL being used for API requests.
	GetBaseURL() string
}
