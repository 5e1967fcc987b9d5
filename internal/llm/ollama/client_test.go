package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/llm"
)

func TestInvokeModel_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "biobyia-v2" {
			t.Errorf("model = %s", req.Model)
		}
		if req.Stream {
			t.Error("stream must be disabled")
		}

		json.NewEncoder(w).Encode(generateResponse{Response: "resposta clínica", DoneReason: "stop"})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "biobyia-v2")
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}

	resp, err := client.InvokeModel(context.Background(), llm.LLMRequest{Prompt: "pergunta", MaxTokens: 256})
	if err != nil {
		t.Fatalf("InvokeModel() failed: %v", err)
	}
	if resp.Content != "resposta clínica" {
		t.Errorf("content = %q", resp.Content)
	}
	if resp.StopReason != "stop" {
		t.Errorf("stop reason = %q", resp.StopReason)
	}
}

func TestInvokeModel_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, "biobyia-v2")

	_, err := client.InvokeModel(context.Background(), llm.LLMRequest{Prompt: "pergunta"})
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestInvokeModelWithRetry_RecoversAfterFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "loading model", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(generateResponse{Response: "ok", DoneReason: "stop"})
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, "biobyia-v2")
	client.RetryDelay = time.Millisecond

	resp, err := client.InvokeModelWithRetry(context.Background(), llm.LLMRequest{Prompt: "pergunta"})
	if err != nil {
		t.Fatalf("InvokeModelWithRetry() failed: %v", err)
	}
	if resp.Content != "ok" {
		t.Errorf("content = %q", resp.Content)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestNewClient_Validation(t *testing.T) {
	if _, err := NewClient("", "model"); err == nil {
		t.Error("expected error for empty base URL")
	}
	if _, err := NewClient("http://localhost:11434", ""); err == nil {
		t.Error("expected error for empty model ID")
	}
}
