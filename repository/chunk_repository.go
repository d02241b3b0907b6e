package repository

import (
	"context"
	"fmt"
	"strings"

	"shariahaudit-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChunkRepository handles database operations for standards chunks.
type ChunkRepository struct {
	db *pgxpool.Pool
}

func NewChunkRepository(db *pgxpool.Pool) *ChunkRepository {
	return &ChunkRepository{db: db}
}

// formatVector formats an embedding vector as a pgvector string literal.
func formatVector(embedding []float64) string {
	if len(embedding) == 0 {
		return "[]"
	}
	parts := make([]string, len(embedding))
	for i, v := range embedding {
		parts[i] = fmt.Sprintf("%.6f", v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// ReplaceSource atomically replaces every chunk of one source document.
// Delete-then-insert inside a transaction keeps index rebuilds idempotent:
// re-running a build for the same document overwrites prior state cleanly.
func (r *ChunkRepository) ReplaceSource(ctx context.Context, source string, chunks []models.StandardChunk) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, "DELETE FROM standard_chunks WHERE source_document = $1", source)
	if err != nil {
		return fmt.Errorf("failed to clear chunks for %s: %w", source, err)
	}

	for _, chunk := range chunks {
		if chunk.SourceDocument != source {
			return fmt.Errorf("chunk %s belongs to %s, not %s", chunk.ID, chunk.SourceDocument, source)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO standard_chunks (id, source_document, chunk_index, chunk_text, embedding)
			VALUES ($1, $2, $3, $4, $5::vector)`,
			chunk.ID,
			chunk.SourceDocument,
			chunk.ChunkIndex,
			chunk.Text,
			formatVector(chunk.Embedding),
		)
		if err != nil {
			return fmt.Errorf("failed to insert chunk %d of %s: %w", chunk.ChunkIndex, source, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit chunks for %s: %w", source, err)
	}
	return nil
}

// SearchNearest returns the k nearest chunks by cosine distance, most
// similar first. Ties are broken by original document order.
func (r *ChunkRepository) SearchNearest(ctx context.Context, embedding []float64, k int) ([]models.ScoredChunk, error) {
	if len(embedding) != 768 {
		return nil, fmt.Errorf("embedding must be 768 dimensions, got %d", len(embedding))
	}
	if k <= 0 {
		k = 1
	}

	vectorStr := formatVector(embedding)

	rows, err := r.db.Query(ctx, `
		SELECT
			id,
			source_document,
			chunk_index,
			chunk_text,
			1 - (embedding <=> $1::vector) AS score
		FROM standard_chunks
		ORDER BY
			embedding <=> $1::vector,
			source_document,
			chunk_index
		LIMIT $2`, vectorStr, k)
	if err != nil {
		return nil, fmt.Errorf("failed to query standard chunks: %w", err)
	}
	defer rows.Close()

	var chunks []models.ScoredChunk
	for rows.Next() {
		var chunk models.ScoredChunk
		err := rows.Scan(
			&chunk.ID,
			&chunk.SourceDocument,
			&chunk.ChunkIndex,
			&chunk.Text,
			&chunk.Score,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan standard chunk: %w", err)
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating standard chunks: %w", err)
	}

	return chunks, nil
}

// Count returns the number of indexed chunks.
func (r *ChunkRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM standard_chunks").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count standard chunks: %w", err)
	}
	return count, nil
}
