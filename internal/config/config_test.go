package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("ANTHROPIC_AUTH_TOKEN", "")
	t.Setenv("OPENAI_API_KEY", "")

	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.DefaultProvider != "claude" {
		t.Fatalf("default provider: got %q want %q", cfg.LLM.DefaultProvider, "claude")
	}
	if cfg.Evaluation.MaxResponseTokens != 700 {
		t.Fatalf("max tokens: got %d want %d", cfg.Evaluation.MaxResponseTokens, 700)
	}
	if cfg.Evaluation.AnswerTolerance != 1e-5 {
		t.Fatalf("tolerance: got %v want %v", cfg.Evaluation.AnswerTolerance, 1e-5)
	}
	if cfg.Dataset.FewShotCount != 10 || cfg.Dataset.DevCount != 100 {
		t.Fatalf("dataset counts: got %d/%d want 10/100", cfg.Dataset.FewShotCount, cfg.Dataset.DevCount)
	}
	if cfg.Dataset.FewShotPath == "" || cfg.Dataset.DevSetPath == "" {
		t.Fatalf("dataset paths empty: %+v", cfg.Dataset)
	}
}

func TestLoad_File(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("ANTHROPIC_AUTH_TOKEN", "")
	t.Setenv("OPENAI_API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
llm:
  default_provider: openai
  providers:
    openai:
      api_key: file-key
      model: gpt-4o-mini
evaluation:
  max_response_tokens: 512
  answer_tolerance: 0.001
  request_delay: 2s
dataset:
  few_shot_path: fs.jsonl
  dev_set_path: dev.jsonl
  few_shot_count: 5
  dev_count: 20
storage:
  type: memory
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.DefaultProvider != "openai" {
		t.Fatalf("default provider: got %q want %q", cfg.LLM.DefaultProvider, "openai")
	}
	if cfg.LLM.Providers["openai"].Model != "gpt-4o-mini" {
		t.Fatalf("model: got %q", cfg.LLM.Providers["openai"].Model)
	}
	if cfg.Evaluation.MaxResponseTokens != 512 {
		t.Fatalf("max tokens: got %d want %d", cfg.Evaluation.MaxResponseTokens, 512)
	}
	if cfg.Evaluation.RequestDelay != 2*time.Second {
		t.Fatalf("delay: got %v want %v", cfg.Evaluation.RequestDelay, 2*time.Second)
	}
	if cfg.Dataset.FewShotPath != "fs.jsonl" || cfg.Dataset.DevCount != 20 {
		t.Fatalf("dataset: got %+v", cfg.Dataset)
	}
	if cfg.Storage.Type != "memory" {
		t.Fatalf("storage type: got %q want %q", cfg.Storage.Type, "memory")
	}
}

func TestLoad_EnvOverridesCredentials(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "env-claude")
	t.Setenv("OPENAI_API_KEY", "env-openai")

	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
llm:
  providers:
    claude:
      api_key: file-claude
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.LLM.Providers["claude"].APIKey; got != "env-claude" {
		t.Fatalf("claude key: got %q want %q", got, "env-claude")
	}
	if got := cfg.LLM.Providers["openai"].APIKey; got != "env-openai" {
		t.Fatalf("openai key: got %q want %q", got, "env-openai")
	}
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("Load: expected error for missing explicit path")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\nnot yaml: ["), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load: expected parse error")
	}
}
