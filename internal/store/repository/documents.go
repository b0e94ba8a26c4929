package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/halverson/puckcast/internal/store"
)

// DocumentRepository handles embedded document storage and similarity search
type DocumentRepository struct {
	db *store.Database
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *store.Database) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Insert stores a document with its embedding and optional metadata JSON
func (r *DocumentRepository) Insert(ctx context.Context, doc *store.Document, embedding []float32, metadata []byte) error {
	query := `
		INSERT INTO documents (title, source, content, url, embedding, metadata)
		VALUES ($1, $2, $3, $4, $5::vector, $6)
		RETURNING id
	`

	var meta any
	if len(metadata) > 0 {
		meta = string(metadata)
	}

	err := r.db.DB().QueryRowContext(ctx, query,
		doc.Title, doc.Source, doc.Content, doc.URL, EncodeVector(embedding), meta,
	).Scan(&doc.ID)

	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}

	return nil
}

// Search returns the documents nearest to the query embedding by cosine
// distance. Rows below minSimilarity are filtered out after retrieval.
func (r *DocumentRepository) Search(ctx context.Context, embedding []float32, limit int, minSimilarity float64) ([]*store.Document, error) {
	query := `
		SELECT id, title, source, content, url,
			1 - (embedding <=> $1::vector) AS similarity,
			created_at, updated_at
		FROM documents
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1::vector
		LIMIT $2
	`

	rows, err := r.db.DB().QueryContext(ctx, query, EncodeVector(embedding), limit)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []*store.Document
	for rows.Next() {
		doc := &store.Document{}
		err := rows.Scan(
			&doc.ID, &doc.Title, &doc.Source, &doc.Content, &doc.URL,
			&doc.Similarity, &doc.CreatedAt, &doc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		if doc.Similarity >= minSimilarity {
			docs = append(docs, doc)
		}
	}

	return docs, rows.Err()
}

// Count returns the total number of document rows
func (r *DocumentRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return count, nil
}

// EncodeVector renders an embedding as a pgvector literal, e.g. [0.1,0.2]
func EncodeVector(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
