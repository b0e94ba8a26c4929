// Package rag indexes hockey articles and notes into a vector store and
// retrieves the passages most similar to a query.
package rag

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/halverson/puckcast/internal/llm"
	"github.com/halverson/puckcast/internal/store"
	"github.com/halverson/puckcast/internal/store/repository"
)

const (
	// EmbeddingDim matches the sentence transformer the embedding
	// service runs.
	EmbeddingDim = 384

	defaultChunkSize    = 500
	defaultChunkOverlap = 50

	// DefaultMinSimilarity filters weak matches from search results
	DefaultMinSimilarity = 0.3
)

// Service chunks, embeds and searches documents
type Service struct {
	embedder  llm.Embedder
	documents *repository.DocumentRepository
	logger    *log.Logger
}

// NewService creates a document service. A nil embedder disables
// indexing and search.
func NewService(embedder llm.Embedder, db *store.Database) *Service {
	return &Service{
		embedder:  embedder,
		documents: repository.NewDocumentRepository(db),
		logger:    log.WithPrefix("rag"),
	}
}

// Enabled reports whether an embedding backend is configured
func (s *Service) Enabled() bool {
	return s.embedder != nil
}

// AddDocument chunks the content, embeds each chunk and stores the
// results. Returns the number of chunks written.
func (s *Service) AddDocument(ctx context.Context, title, content, source, url string, metadata []byte) (int, error) {
	if s.embedder == nil {
		return 0, fmt.Errorf("document indexing disabled: no embedding service configured")
	}

	chunks := ChunkText(content, defaultChunkSize, defaultChunkOverlap)
	for i, chunk := range chunks {
		vec, err := s.embedder.Embed(ctx, chunk)
		if err != nil {
			return i, fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}
		doc := &store.Document{
			Title:   sql.NullString{String: title, Valid: title != ""},
			Source:  sql.NullString{String: source, Valid: source != ""},
			Content: chunk,
			URL:     sql.NullString{String: url, Valid: url != ""},
		}
		if err := s.documents.Insert(ctx, doc, vec, metadata); err != nil {
			return i, fmt.Errorf("failed to store chunk %d: %w", i, err)
		}
	}

	s.logger.Info("document indexed", "title", title, "chunks", len(chunks))
	return len(chunks), nil
}

// Search embeds the query and returns the most similar chunks above the
// similarity floor.
func (s *Service) Search(ctx context.Context, query string, limit int, minSimilarity float64) ([]*store.Document, error) {
	if s.embedder == nil {
		return nil, fmt.Errorf("document search disabled: no embedding service configured")
	}
	if limit <= 0 {
		limit = 3
	}
	if minSimilarity <= 0 {
		minSimilarity = DefaultMinSimilarity
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	return s.documents.Search(ctx, vec, limit, minSimilarity)
}

// Count returns the number of stored chunks
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.documents.Count(ctx)
}

// ChunkText splits text into overlapping chunks, preferring paragraph
// breaks, then sentence ends, so chunks stay readable on their own.
func ChunkText(text string, size, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + size
		if end >= len(text) {
			chunk := strings.TrimSpace(text[start:])
			if chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		cut := end
		if idx := strings.LastIndex(text[start:end], "\n\n"); idx > size/2 {
			cut = start + idx
		} else if idx := lastSentenceEnd(text[start:end]); idx > size/2 {
			cut = start + idx
		}

		chunk := strings.TrimSpace(text[start:cut])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := cut - overlap
		if next <= start {
			next = cut
		}
		start = next
	}

	return chunks
}

// lastSentenceEnd finds the rightmost sentence boundary, returning the
// index just past the terminator.
func lastSentenceEnd(s string) int {
	best := -1
	for _, sep := range []string{". ", "! ", "? "} {
		if idx := strings.LastIndex(s, sep); idx >= 0 && idx+len(sep) > best {
			best = idx + len(sep)
		}
	}
	return best
}
