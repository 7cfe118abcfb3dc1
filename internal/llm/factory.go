package llm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stellarlinkco/gsm8k-eval/internal/config"
)

// FromConfig resolves a provider and model name from the configuration,
// with optional flag overrides. Returns the provider and the model
// identifier used for reporting.
func FromConfig(cfg *config.Config, providerFlag, modelFlag string) (Provider, string, error) {
	if cfg == nil {
		return nil, "", fmt.Errorf("llm: missing config")
	}

	providerName := strings.TrimSpace(providerFlag)
	if providerName == "" {
		providerName = strings.TrimSpace(cfg.LLM.DefaultProvider)
	}
	providerName = NormalizeProviderName(providerName)
	if providerName == "" {
		return nil, "", fmt.Errorf("llm: missing provider")
	}

	pcfg, ok := cfg.LLM.Providers[providerName]
	if !ok && providerName != "claude" {
		available := make([]string, 0, len(cfg.LLM.Providers))
		for k := range cfg.LLM.Providers {
			available = append(available, k)
		}
		sort.Strings(available)
		return nil, "", fmt.Errorf("llm: provider %q not configured (available: %s)",
			providerName, strings.Join(available, ", "))
	}

	model := strings.TrimSpace(modelFlag)
	if model == "" {
		model = strings.TrimSpace(pcfg.Model)
	}

	switch providerName {
	case "claude":
		p := NewClaudeProvider(pcfg.APIKey, pcfg.BaseURL, model)
		return p, resolvedModelName(model, "claude-3-5-haiku-20241022"), nil
	case "openai":
		p := NewOpenAIProvider(pcfg.APIKey, pcfg.BaseURL, model)
		return p, resolvedModelName(model, "gpt-4o"), nil
	default:
		return nil, "", fmt.Errorf("llm: unsupported provider %q", providerName)
	}
}

// NormalizeProviderName maps aliases onto canonical provider names.
func NormalizeProviderName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "anthropic":
		return "claude"
	default:
		return name
	}
}

func resolvedModelName(model, fallback string) string {
	if model != "" {
		return model
	}
	return fallback
}
