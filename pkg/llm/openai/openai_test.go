package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tracelog/tracelog/pkg/llm"
)

func TestNewProviderRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewProvider(""); err == nil {
		t.Fatal("Expected error when no API key is available")
	}
}

func TestNewProviderDefaults(t *testing.T) {
	t.Setenv("OPENAI_BASE_URL", "")
	p, err := NewProvider("sk-test")
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if p.GetModel() != DefaultModel {
		t.Errorf("Expected default model %s, got %s", DefaultModel, p.GetModel())
	}
	if p.GetBaseURL() != DefaultBaseURL {
		t.Errorf("Expected default base URL %s, got %s", DefaultBaseURL, p.GetBaseURL())
	}
}

func TestNewProviderEnvBaseURL(t *testing.T) {
	t.Setenv("OPENAI_BASE_URL", "http://localhost:8080/v1")
	p, err := NewProvider("sk-test")
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if p.GetBaseURL() != "http://localhost:8080/v1" {
		t.Errorf("Expected env base URL, got %s", p.GetBaseURL())
	}
}

func TestComplete(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("Unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"reply\":\"好的\"}"}}]}`))
	}))
	defer srv.Close()

	p, err := NewProvider("sk-test", WithBaseURL(srv.URL), WithModel("test-model"))
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}

	got, err := p.Complete(context.Background(), []llm.Message{
		llm.SystemMessage("system prompt"),
		llm.UserMessage("今天练了吉他"),
	}, llm.WithJSONObject())
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if got != `{"reply":"好的"}` {
		t.Errorf("Unexpected completion %q", got)
	}
	if gotBody["model"] != "test-model" {
		t.Errorf("Expected model test-model, got %v", gotBody["model"])
	}
	rf, ok := gotBody["response_format"].(map[string]any)
	if !ok || rf["type"] != "json_object" {
		t.Errorf("Expected json_object response_format, got %v", gotBody["response_format"])
	}
	msgs, ok := gotBody["messages"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("Expected 2 messages, got %v", gotBody["messages"])
	}
}

func TestCompleteHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p, _ := NewProvider("sk-test", WithBaseURL(srv.URL))
	if _, err := p.Complete(context.Background(), []llm.Message{llm.UserMessage("hi")}); err == nil {
		t.Fatal("Expected error for non-200 response")
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	p, _ := NewProvider("sk-test", WithBaseURL(srv.URL))
	if _, err := p.Complete(context.Background(), []llm.Message{llm.UserMessage("hi")}); err == nil {
		t.Fatal("Expected error for empty choices")
	}
}
