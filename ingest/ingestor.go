package ingest

import (
	"context"
	"io"
	"log"

	"shariahaudit-backend/models"
	"shariahaudit-backend/storage"

	"github.com/google/uuid"
)

// SeedSource tags the fallback principle statements used when no standards
// documents can be loaded, so the index is never empty.
const SeedSource = "default_principles.txt"

var seedPrinciples = []string{
	"Riba (interest) is prohibited in Islamic finance. Any contractual increase over the principal in a loan is considered riba.",
	"Gharar (excessive uncertainty) should be avoided in Islamic contracts. Terms should be clear and well-defined.",
	"Maysir (gambling/speculation) is prohibited in Islamic finance. Contracts should be based on real economic activities.",
	"Investment in haram (prohibited) activities is not allowed, such as alcohol, pork products, conventional banking, or weapons.",
	"Murabaha is a cost-plus financing arrangement where the bank purchases an item and sells it to the customer at a markup.",
}

// document is one loaded standards document before splitting.
type document struct {
	source string
	text   string
}

// Ingestor loads reference documents from a store and turns them into
// chunks ready for embedding.
type Ingestor struct {
	store    storage.DocumentStore
	splitter *Splitter
}

func NewIngestor(store storage.DocumentStore, splitter *Splitter) *Ingestor {
	if splitter == nil {
		splitter = NewSplitter(DefaultChunkSize, DefaultOverlap)
	}
	return &Ingestor{store: store, splitter: splitter}
}

// LoadChunks loads every document in the store and splits each into
// overlapping chunks tagged with its source. An unreadable document is
// skipped and logged; it never aborts ingestion. When nothing loads, the
// canonical principle seed set is ingested instead, so the result is never
// empty.
func (i *Ingestor) LoadChunks(ctx context.Context) ([]models.StandardChunk, error) {
	names, err := i.store.List(ctx)
	if err != nil {
		log.Printf("Error listing standards documents: %v", err)
		names = nil
	}

	var docs []document
	for _, name := range names {
		text, err := i.readDocument(ctx, name)
		if err != nil {
			log.Printf("Error loading %s: %v", name, err)
			continue
		}
		docs = append(docs, document{source: name, text: text})
		log.Printf("Loaded %d characters from %s", len(text), name)
	}

	if len(docs) == 0 {
		log.Printf("No standards documents found. Using the default principle set.")
		for _, principle := range seedPrinciples {
			docs = append(docs, document{source: SeedSource, text: principle})
		}
	}

	var chunks []models.StandardChunk
	perSource := make(map[string]int)
	for _, doc := range docs {
		for _, text := range i.splitter.Split(doc.text) {
			chunks = append(chunks, models.StandardChunk{
				ID:             uuid.New(),
				SourceDocument: doc.source,
				ChunkIndex:     perSource[doc.source],
				Text:           text,
			})
			perSource[doc.source]++
		}
	}

	log.Printf("Ingested %d documents into %d chunks", len(docs), len(chunks))
	return chunks, nil
}

func (i *Ingestor) readDocument(ctx context.Context, name string) (string, error) {
	reader, err := i.store.Open(ctx, name)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
