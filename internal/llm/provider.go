// Package llm defines the completion provider boundary the evaluation loop
// depends on: one prompt in, one text response (or failure) out.
package llm

import "context"

// Provider submits a single prompt and returns the model's text response.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req *Request) (*Response, error)
}

// CredentialChecker is an optional interface for providers that can verify
// their credentials before a run starts.
type CredentialChecker interface {
	CheckCredentials() error
}

// Request carries one prompt submission.
type Request struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Response carries the text result of one submission.
type Response struct {
	Text         string
	StopReason   string
	InputTokens  int
	OutputTokens int
}
