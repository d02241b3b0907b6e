package models

import (
	"github.com/google/uuid"
)

// StandardChunk represents a chunk of reference text from the standards
// knowledge base. Chunks are immutable after ingestion.
type StandardChunk struct {
	ID             uuid.UUID `json:"id"`
	SourceDocument string    `json:"source_document"`
	ChunkIndex     int       `json:"chunk_index"`
	Text           string    `json:"text"`
	Embedding      []float64 `json:"-"`
}

// ScoredChunk is a chunk returned from a similarity search together with
// its cosine similarity score (1 = identical direction).
type ScoredChunk struct {
	StandardChunk
	Score float64 `json:"score"`
}

// SourceRef points a clause assessment at the supporting passage.
type SourceRef struct {
	SourceDoc  string `json:"source_doc"`
	SourceText string `json:"source_text"`
}
