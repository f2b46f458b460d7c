// Package embedding provides Embedder implementations: an HTTP client
// against DeepInfra's OpenAI-compatible embeddings endpoint, and a
// deterministic fake for offline tests.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const deepInfraURL = "https://api.deepinfra.com/v1/openai/embeddings"

// DeepInfraEmbedder calls DeepInfra's OpenAI-compatible embeddings API.
// It is unavailable (Available() == false) whenever no API key was
// supplied, matching the "Embedder may be absent" contract; callers are
// never required to special-case a missing key.
type DeepInfraEmbedder struct {
	apiKey string
	model  string
	client *http.Client
	url    string
}

// NewDeepInfraEmbedder returns an embedder for model using apiKey. An
// empty apiKey produces an embedder that reports Available() == false.
func NewDeepInfraEmbedder(apiKey, model string) *DeepInfraEmbedder {
	return &DeepInfraEmbedder{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
		url:    deepInfraURL,
	}
}

func (e *DeepInfraEmbedder) Available() bool {
	return e.apiKey != ""
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed returns the embedding vector for text, retrying transient
// failures (timeouts, 429, 5xx) with exponential backoff and jitter.
func (e *DeepInfraEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if !e.Available() {
		return nil, fmt.Errorf("embedding: %w", ErrUnavailable)
	}

	const maxAttempts = 4
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * 500 * time.Millisecond
			jitter := time.Duration(rand.Int63n(int64(backoff) / 2))
			select {
			case <-time.After(backoff + jitter):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		vec, retryable, err := e.embedOnce(ctx, text)
		if err == nil {
			return vec, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return nil, fmt.Errorf("embedding: %w: %w", ErrQueryFailed, lastErr)
}

func (e *DeepInfraEmbedder) embedOnce(ctx context.Context, text string) ([]float32, bool, error) {
	body, err := json.Marshal(embeddingRequest{Model: e.model, Input: []string{text}})
	if err != nil {
		return nil, false, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}

	if resp.StatusCode == http.StatusRequestTimeout || resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("deepinfra status %d: %s", resp.StatusCode, respBody)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("deepinfra status %d: %s", resp.StatusCode, respBody)
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, false, fmt.Errorf("parsing response: %w", err)
	}
	if len(parsed.Data) == 0 {
		return nil, false, fmt.Errorf("empty embedding response")
	}
	return parsed.Data[0].Embedding, false, nil
}
