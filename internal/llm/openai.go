package llm

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider runs prompts through the OpenAI chat completions API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	apiKey string
}

func NewOpenAIProvider(apiKey string, baseURL string, model string) *OpenAIProvider {
	apiKey = strings.TrimSpace(apiKey)
	cfg := openai.DefaultConfig(apiKey)
	if v := strings.TrimSpace(baseURL); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}

	m := strings.TrimSpace(model)
	if m == "" {
		m = "gpt-4o"
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  m,
		apiKey: apiKey,
	}
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

// CheckCredentials verifies a usable API key before any request is sent.
func (p *OpenAIProvider) CheckCredentials() error {
	if p == nil {
		return errors.New("llm: openai: nil provider")
	}
	if strings.TrimSpace(p.apiKey) == "" {
		return errors.New("llm: openai: missing api key")
	}
	return nil
}

func (p *OpenAIProvider) Complete(ctx context.Context, req *Request) (*Response, error) {
	if p == nil || p.client == nil {
		return nil, errors.New("llm: openai: nil client")
	}
	if ctx == nil {
		return nil, errors.New("llm: openai: nil context")
	}
	if req == nil {
		return nil, errors.New("llm: openai: nil request")
	}

	r := openai.ChatCompletionRequest{
		Model: strings.TrimSpace(p.model),
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: req.Prompt,
		}},
		Temperature: float32(req.Temperature),
	}
	if req.MaxTokens > 0 {
		r.MaxTokens = req.MaxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("llm: openai: empty choices")
	}

	choice := resp.Choices[0]
	return &Response{
		Text:         choice.Message.Content,
		StopReason:   string(choice.FinishReason),
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}
