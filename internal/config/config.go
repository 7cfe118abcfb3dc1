// Package config loads the harness configuration from YAML with
// environment overrides for credentials.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

const (
	defaultFewShotPath = "data/benchmark/gsm8k_main_few_shot_examples.jsonl"
	defaultDevSetPath  = "data/benchmark/gsm8k_main_train_dev_subset.jsonl"

	defaultMaxResponseTokens = 700
	defaultAnswerTolerance   = 1e-5
	defaultFewShotCount      = 10
	defaultDevCount          = 100
)

type Config struct {
	LLM        LLMConfig        `yaml:"llm"`
	Evaluation EvaluationConfig `yaml:"evaluation"`
	Dataset    DatasetConfig    `yaml:"dataset"`
	Storage    StorageConfig    `yaml:"storage"`
}

type LLMConfig struct {
	DefaultProvider string                    `yaml:"default_provider,omitempty"`
	Providers       map[string]ProviderConfig `yaml:"providers,omitempty"`
}

type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

type EvaluationConfig struct {
	MaxResponseTokens int           `yaml:"max_response_tokens,omitempty"`
	AnswerTolerance   float64       `yaml:"answer_tolerance,omitempty"`
	RequestDelay      time.Duration `yaml:"request_delay,omitempty"`
}

type DatasetConfig struct {
	FewShotPath  string `yaml:"few_shot_path,omitempty"`
	DevSetPath   string `yaml:"dev_set_path,omitempty"`
	FewShotCount int    `yaml:"few_shot_count,omitempty"`
	DevCount     int    `yaml:"dev_count,omitempty"`
}

type StorageConfig struct {
	Type string `yaml:"type,omitempty"` // "sqlite" or "memory"
	Path string `yaml:"path,omitempty"` // SQLite file path
}

// Load reads and normalizes a config file. A missing file at the default
// path yields the built-in defaults rather than an error, so the CLI works
// without a config when env credentials are present.
func Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultPath
	}
	usingDefault := path == DefaultPath

	var cfg Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", path, err)
		}
	case os.IsNotExist(err) && usingDefault:
		// Fall through to defaults.
	default:
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.LLM.Providers == nil {
		cfg.LLM.Providers = make(map[string]ProviderConfig)
	}
	if strings.TrimSpace(cfg.LLM.DefaultProvider) == "" {
		cfg.LLM.DefaultProvider = "claude"
	}

	if cfg.Evaluation.MaxResponseTokens <= 0 {
		cfg.Evaluation.MaxResponseTokens = defaultMaxResponseTokens
	}
	if cfg.Evaluation.AnswerTolerance <= 0 {
		cfg.Evaluation.AnswerTolerance = defaultAnswerTolerance
	}
	if cfg.Evaluation.RequestDelay < 0 {
		cfg.Evaluation.RequestDelay = 0
	}

	if strings.TrimSpace(cfg.Dataset.FewShotPath) == "" {
		cfg.Dataset.FewShotPath = defaultFewShotPath
	}
	if strings.TrimSpace(cfg.Dataset.DevSetPath) == "" {
		cfg.Dataset.DevSetPath = defaultDevSetPath
	}
	if cfg.Dataset.FewShotCount <= 0 {
		cfg.Dataset.FewShotCount = defaultFewShotCount
	}
	if cfg.Dataset.DevCount <= 0 {
		cfg.Dataset.DevCount = defaultDevCount
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")); v != "" {
		p := cfg.LLM.Providers["claude"]
		p.APIKey = v
		cfg.LLM.Providers["claude"] = p
	} else if v := strings.TrimSpace(os.Getenv("ANTHROPIC_AUTH_TOKEN")); v != "" {
		p := cfg.LLM.Providers["claude"]
		p.APIKey = v
		cfg.LLM.Providers["claude"] = p
	}

	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		p := cfg.LLM.Providers["openai"]
		p.APIKey = v
		cfg.LLM.Providers["openai"] = p
	}
}
