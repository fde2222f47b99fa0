package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"db-qa-be/pkg/llm"
)

func TestChatSendsSchemaAsFormat(t *testing.T) {
	var captured ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q, want /api/chat", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaMessage{Role: "assistant", Content: `{"query": "SELECT 1"}`},
			Done:    true,
		})
	}))
	defer srv.Close()

	provider := NewOllamaProvider(srv.URL, "llama3.2")

	type out struct {
		Query string `json:"query"`
	}
	got, err := provider.Chat(context.Background(),
		[]llm.Message{
			{Role: "system", Content: "You write SQL."},
			{Role: "user", Content: "Question: how many?"},
		},
		llm.WithTemperature(0),
		llm.WithResponseSchema("sql_query", out{}),
	)
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if got != `{"query": "SELECT 1"}` {
		t.Errorf("Chat() = %q", got)
	}

	if captured.Model != "llama3.2" {
		t.Errorf("model = %q", captured.Model)
	}
	if captured.Stream {
		t.Error("stream must be disabled")
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" {
		t.Errorf("messages = %+v", captured.Messages)
	}
	if len(captured.Format) == 0 {
		t.Fatal("format field not populated from response schema")
	}
	var schema struct {
		Properties map[string]any `json:"properties"`
	}
	if err := json.Unmarshal(captured.Format, &schema); err != nil {
		t.Fatalf("format is not a JSON schema: %v", err)
	}
	if _, ok := schema.Properties["query"]; !ok {
		t.Errorf("schema missing query property: %s", captured.Format)
	}
}

func TestChatMapsModelRoleToAssistant(t *testing.T) {
	var captured ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(ollamaChatResponse{Message: ollamaMessage{Content: "ok"}})
	}))
	defer srv.Close()

	provider := NewOllamaProvider(srv.URL, "llama3.2")
	_, err := provider.Chat(context.Background(), []llm.Message{
		{Role: "user", Content: "hi"},
		{Role: "model", Content: "hello"},
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if captured.Messages[1].Role != "assistant" {
		t.Errorf("role = %q, want assistant", captured.Messages[1].Role)
	}
}

func TestChatSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	provider := NewOllamaProvider(srv.URL, "missing-model")
	if _, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}}); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
