// Package ollama provides a client for the Ollama HTTP API.
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ollama-acp/ollama-agent/pkg/cache"
	agenterrors "github.com/ollama-acp/ollama-agent/pkg/errors"
)

// DefaultHost is the Ollama server used when none is configured.
const DefaultHost = "http://localhost:11434"

// maxLineSize bounds a single streamed chat line. Chat chunks are small;
// one megabyte leaves plenty of headroom.
const maxLineSize = 1024 * 1024

// ChunkFunc receives each streamed message delta.
type ChunkFunc func(chunk ChatChunk) error

// Client talks to an Ollama server.
type Client struct {
	host   string
	client *http.Client

	// timeout bounds non-streaming calls. Streaming chat is bounded by
	// its context; a client-wide timeout would cut generations short.
	timeout time.Duration

	// Optional model-list cache.
	listCache cache.Cache
	listTTL   time.Duration
	keys      *cache.KeyGenerator
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithTimeout bounds non-streaming requests such as List.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithListCache caches model listings per host for the given TTL.
func WithListCache(store cache.Cache, ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.listCache = store
		c.listTTL = ttl
	}
}

// NewClient creates a client for the given host.
func NewClient(host string, opts ...ClientOption) *Client {
	if host == "" {
		host = DefaultHost
	}

	c := &Client{
		host:   strings.TrimRight(host, "/"),
		client: &http.Client{},
		keys:   cache.NewKeyGenerator("models"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Host returns the server URL the client talks to.
func (c *Client) Host() string {
	return c.host
}

// List returns the models available on the server. Results are served from
// the cache when one is configured and fresh.
func (c *Client) List(ctx context.Context) ([]Model, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	key := c.keys.GenerateForHost(c.host)

	if c.listCache != nil {
		if data, err := c.listCache.Get(ctx, key); err == nil {
			var models []Model
			if err := json.Unmarshal(data, &models); err == nil {
				return models, nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		return nil, agenterrors.OllamaError("failed to create request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, agenterrors.OllamaError("request failed", err).WithContext("host", c.host)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, agenterrors.OllamaError(
			fmt.Sprintf("server returned status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var result listResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, agenterrors.OllamaError("failed to decode response", err)
	}

	if c.listCache != nil {
		if data, err := json.Marshal(result.Models); err == nil {
			_ = c.listCache.Set(ctx, key, data, c.listTTL)
		}
	}

	return result.Models, nil
}

// Chat sends the conversation to the server and streams the response.
// onChunk is called for every message delta; the assembled response text is
// returned once the stream reports done. A ChunkFunc error aborts the
// stream and is returned unchanged.
func (c *Client) Chat(ctx context.Context, model string, messages []Message, onChunk ChunkFunc) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		return "", agenterrors.OllamaError("failed to marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", agenterrors.OllamaError("failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", agenterrors.OllamaError("chat request failed", err).WithContext("host", c.host)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", agenterrors.OllamaError(
			fmt.Sprintf("server returned status %d: %s", resp.StatusCode, string(respBody)), nil)
	}

	var full strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var chunk ChatChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			return full.String(), agenterrors.OllamaError("failed to decode stream chunk", err)
		}

		if chunk.Message.Content != "" {
			full.WriteString(chunk.Message.Content)
			if onChunk != nil {
				if err := onChunk(chunk); err != nil {
					return full.String(), err
				}
			}
		}

		if chunk.Done {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return full.String(), ctx.Err()
		}
		return full.String(), agenterrors.OllamaError("stream read failed", err)
	}

	return full.String(), nil
}
