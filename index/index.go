// Package index composes an embedding model with a persisted chunk store
// into a semantic similarity index over the standards corpus.
package index

import (
	"context"
	"fmt"
	"log"

	"shariahaudit-backend/llm"
	"shariahaudit-backend/models"

	"golang.org/x/time/rate"
)

// Embedder converts text to a fixed-dimension vector. The same model must
// be used at build time and query time or similarity scores are
// meaningless.
type Embedder interface {
	Embed(ctx context.Context, text, taskType string) ([]float64, error)
}

// ChunkStore is the persistence boundary for the index.
type ChunkStore interface {
	ReplaceSource(ctx context.Context, source string, chunks []models.StandardChunk) error
	SearchNearest(ctx context.Context, embedding []float64, k int) ([]models.ScoredChunk, error)
	Count(ctx context.Context) (int, error)
}

// Builder embeds chunks and persists them. Building is a maintenance
// operation; it must not run concurrently with queries against the same
// store.
type Builder struct {
	embedder Embedder
	store    ChunkStore
	limiter  *rate.Limiter
}

// NewBuilder creates a builder. limiter paces embedding calls against the
// provider quota; pass nil to embed unpaced.
func NewBuilder(embedder Embedder, store ChunkStore, limiter *rate.Limiter) *Builder {
	return &Builder{embedder: embedder, store: store, limiter: limiter}
}

// Build embeds every chunk and replaces the persisted state per source
// document. Any embedding or persistence failure aborts the build: an
// empty or partially written index is worse than failing fast.
func (b *Builder) Build(ctx context.Context, chunks []models.StandardChunk) error {
	bySource := make(map[string][]models.StandardChunk)
	var sources []string
	for _, chunk := range chunks {
		if _, seen := bySource[chunk.SourceDocument]; !seen {
			sources = append(sources, chunk.SourceDocument)
		}
		bySource[chunk.SourceDocument] = append(bySource[chunk.SourceDocument], chunk)
	}

	embedded := 0
	for _, source := range sources {
		group := bySource[source]
		for j := range group {
			if b.limiter != nil {
				if err := b.limiter.Wait(ctx); err != nil {
					return err
				}
			}
			vec, err := b.embedder.Embed(ctx, group[j].Text, llm.TaskRetrievalDocument)
			if err != nil {
				return fmt.Errorf("failed to embed chunk %d of %s: %w", group[j].ChunkIndex, source, err)
			}
			group[j].Embedding = vec
			embedded++
		}

		if err := b.store.ReplaceSource(ctx, source, group); err != nil {
			return fmt.Errorf("failed to persist chunks for %s: %w", source, err)
		}
		log.Printf("Indexed %d chunks from %s", len(group), source)
	}

	log.Printf("Index build complete: %d chunks across %d documents", embedded, len(sources))
	return nil
}

// Index answers similarity queries against the persisted chunks. Reads are
// safe to run concurrently.
type Index struct {
	embedder Embedder
	store    ChunkStore
}

func New(embedder Embedder, store ChunkStore) *Index {
	return &Index{embedder: embedder, store: store}
}

// Search returns the top-k chunks most similar to query, best first. The
// audit pipeline proceeds without attribution when this fails, so errors
// are returned for the caller to degrade on rather than swallowed here.
func (idx *Index) Search(ctx context.Context, query string, k int) ([]models.ScoredChunk, error) {
	vec, err := idx.embedder.Embed(ctx, query, llm.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results, err := idx.store.SearchNearest(ctx, vec, k)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}
	return results, nil
}
