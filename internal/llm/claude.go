package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/stellarlinkco/gsm8k-eval/internal/claude"
)

// ClaudeProvider adapts the Anthropic messages client to the Provider
// boundary.
type ClaudeProvider struct {
	client *claude.Client
}

func NewClaudeProvider(apiKey string, baseURL string, model string) *ClaudeProvider {
	opts := make([]claude.Option, 0, 2)
	if v := strings.TrimSpace(baseURL); v != "" {
		opts = append(opts, claude.WithBaseURL(v))
	}
	if v := strings.TrimSpace(model); v != "" {
		opts = append(opts, claude.WithModel(v))
	}
	return &ClaudeProvider{
		client: claude.NewClient(strings.TrimSpace(apiKey), opts...),
	}
}

func (p *ClaudeProvider) Name() string {
	return "claude"
}

// CheckCredentials verifies a usable API key before any request is sent.
func (p *ClaudeProvider) CheckCredentials() error {
	if p == nil || p.client == nil {
		return errors.New("llm: claude: nil client")
	}
	return p.client.EnsureAuth()
}

func (p *ClaudeProvider) Complete(ctx context.Context, req *Request) (*Response, error) {
	if p == nil || p.client == nil {
		return nil, errors.New("llm: claude: nil client")
	}
	if req == nil {
		return nil, errors.New("llm: claude: nil request")
	}

	resp, err := p.client.Complete(ctx, &claude.Request{
		Messages:    []claude.Message{{Role: "user", Content: req.Prompt}},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.New("llm: claude: nil response")
	}

	return &Response{
		Text:         claude.Text(resp),
		StopReason:   resp.StopReason,
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
	}, nil
}
