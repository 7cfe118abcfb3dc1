package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIProvider_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req["model"] != "gpt-4o-mini" {
			http.Error(w, "wrong model", http.StatusBadRequest)
			return
		}

		w.Header().Set("content-type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": "The answer is 4.\n#### 4",
				},
			}},
			"usage": map[string]any{
				"prompt_tokens":     11,
				"completion_tokens": 7,
				"total_tokens":      18,
			},
		})
	}))
	t.Cleanup(srv.Close)

	p := NewOpenAIProvider("test-key", srv.URL, "gpt-4o-mini")
	resp, err := p.Complete(context.Background(), &Request{Prompt: "2 + 2?", MaxTokens: 100})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Text != "The answer is 4.\n#### 4" {
		t.Fatalf("text: got %q", resp.Text)
	}
	if resp.InputTokens != 11 || resp.OutputTokens != 7 {
		t.Fatalf("usage: got %+v", resp)
	}
	if resp.StopReason != "stop" {
		t.Fatalf("stop reason: got %q want %q", resp.StopReason, "stop")
	}
}

func TestOpenAIProvider_NilArguments(t *testing.T) {
	p := NewOpenAIProvider("k", "", "")
	if _, err := p.Complete(nil, &Request{}); err == nil { //nolint:staticcheck
		t.Fatalf("Complete: expected nil context error")
	}
	if _, err := p.Complete(context.Background(), nil); err == nil {
		t.Fatalf("Complete: expected nil request error")
	}
}

func TestOpenAIProvider_CheckCredentials(t *testing.T) {
	if err := NewOpenAIProvider("", "", "").CheckCredentials(); err == nil {
		t.Fatalf("CheckCredentials: expected error for empty key")
	}
	if err := NewOpenAIProvider("k", "", "").CheckCredentials(); err != nil {
		t.Fatalf("CheckCredentials: %v", err)
	}
}

func TestOpenAIProvider_DefaultModel(t *testing.T) {
	p := NewOpenAIProvider("k", "", " ")
	if p.model != "gpt-4o" {
		t.Fatalf("model: got %q want %q", p.model, "gpt-4o")
	}
}
