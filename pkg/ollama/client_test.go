package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ollama-acp/ollama-agent/pkg/cache"
	agenterrors "github.com/ollama-acp/ollama-agent/pkg/errors"
)

func TestList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %q, want /api/tags", r.URL.Path)
		}
		fmt.Fprint(w, `{"models":[
			{"name":"llama3.2:latest","model":"llama3.2:latest","size":2019393189,"modified_at":"2025-01-15T10:30:00Z"},
			{"name":"gemma3:1b","model":"gemma3:1b","size":815319791,"modified_at":"2025-02-20T08:00:00Z"}
		]}`)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	models, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(models) != 2 {
		t.Fatalf("List() returned %d models, want 2", len(models))
	}
	if models[0].Model != "llama3.2:latest" {
		t.Errorf("model name = %q", models[0].Model)
	}
	if models[0].Size != 2019393189 {
		t.Errorf("model size = %d", models[0].Size)
	}
}

func TestList_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	_, err := c.List(context.Background())
	if err == nil {
		t.Fatal("List() expected error for 500 response")
	}
	if !agenterrors.IsType(err, agenterrors.ErrOllama) {
		t.Errorf("List() error = %v, want OLLAMA type", err)
	}
	if !agenterrors.IsRetryable(err) {
		t.Error("Ollama errors should be retryable")
	}
}

func TestList_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")
	if _, err := c.List(context.Background()); err == nil {
		t.Fatal("List() expected error for unreachable host")
	}
}

func TestList_UsesCache(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"models":[{"name":"llama3.2","model":"llama3.2","size":1}]}`)
	}))
	defer server.Close()

	c := NewClient(server.URL, WithListCache(cache.NewMemoryCache(), time.Minute))

	for i := 0; i < 3; i++ {
		models, err := c.List(context.Background())
		if err != nil {
			t.Fatalf("List() #%d error = %v", i, err)
		}
		if len(models) != 1 {
			t.Fatalf("List() #%d returned %d models, want 1", i, len(models))
		}
	}

	if calls != 1 {
		t.Errorf("server saw %d requests, want 1", calls)
	}
}

func TestChat_Streams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q, want /api/chat", r.URL.Path)
		}
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"Hello"},"done":false}`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":", world"},"done":false}`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":""},"done":true,"done_reason":"stop"}`)
	}))
	defer server.Close()

	c := NewClient(server.URL)

	var chunks []string
	full, err := c.Chat(context.Background(), "llama3.2",
		[]Message{{Role: "user", Content: "hi"}},
		func(chunk ChatChunk) error {
			chunks = append(chunks, chunk.Message.Content)
			return nil
		})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if full != "Hello, world" {
		t.Errorf("Chat() = %q, want %q", full, "Hello, world")
	}
	if len(chunks) != 2 {
		t.Errorf("received %d chunks, want 2", len(chunks))
	}
}

func TestChat_ChunkErrorAborts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"one"},"done":false}`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"two"},"done":false}`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":""},"done":true}`)
	}))
	defer server.Close()

	c := NewClient(server.URL)

	wantErr := fmt.Errorf("stop now")
	var seen int
	_, err := c.Chat(context.Background(), "llama3.2", nil, func(chunk ChatChunk) error {
		seen++
		return wantErr
	})

	if err != wantErr {
		t.Errorf("Chat() error = %v, want %v", err, wantErr)
	}
	if seen != 1 {
		t.Errorf("callback ran %d times, want 1", seen)
	}
}

func TestChat_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	_, err := c.Chat(context.Background(), "nope", nil, nil)
	if err == nil {
		t.Fatal("Chat() expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "model not found") {
		t.Errorf("error should carry the server message, got %v", err)
	}
}

func TestNewClient_TrimsSlash(t *testing.T) {
	c := NewClient("http://localhost:11434/")
	if c.Host() != "http://localhost:11434" {
		t.Errorf("Host() = %q", c.Host())
	}
}

func TestNewClient_DefaultHost(t *testing.T) {
	c := NewClient("")
	if c.Host() != DefaultHost {
		t.Errorf("Host() = %q, want %q", c.Host(), DefaultHost)
	}
}
