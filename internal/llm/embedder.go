package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Embedder turns text into a fixed-size vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// HTTPEmbedder calls a sidecar embedding service that wraps a sentence
// transformer model.
type HTTPEmbedder struct {
	url  string
	dim  int
	http *http.Client
}

// NewHTTPEmbedder creates an embedder against the given endpoint
func NewHTTPEmbedder(url string, dim int) *HTTPEmbedder {
	return &HTTPEmbedder{
		url: url,
		dim: dim,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed requests a vector for the text and validates its dimension
func (e *HTTPEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embed request failed with status %d", resp.StatusCode)
	}

	var parsed embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode embed response: %w", err)
	}
	if e.dim > 0 && len(parsed.Embedding) != e.dim {
		return nil, fmt.Errorf("embedding dimension mismatch: got %d, want %d", len(parsed.Embedding), e.dim)
	}

	return parsed.Embedding, nil
}
