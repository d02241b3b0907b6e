package main

import (
	"context"
	"log"

	"shariahaudit-backend/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()

	// Enable pgvector extension
	_, err = pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		log.Printf("Warning: Failed to create pgvector extension: %v", err)
	} else {
		log.Println("✓ pgvector extension enabled")
	}

	// Drop table if exists (for development - remove in production)
	_, err = pool.Exec(ctx, "DROP TABLE IF EXISTS standard_chunks CASCADE")
	if err != nil {
		log.Fatalf("Failed to drop table: %v", err)
	}
	log.Println("✓ Dropped existing standard_chunks table (if any)")

	schemaSQL := `
CREATE TABLE standard_chunks (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),

    -- Document identification
    source_document VARCHAR(255) NOT NULL,
    chunk_index INTEGER NOT NULL,

    -- Content
    chunk_text TEXT NOT NULL,

    -- Vector embedding
    embedding vector(768),

    created_at TIMESTAMP DEFAULT NOW(),

    CONSTRAINT chunk_order_unique UNIQUE (source_document, chunk_index)
);`

	_, err = pool.Exec(ctx, schemaSQL)
	if err != nil {
		log.Fatalf("Failed to create standard_chunks table: %v", err)
	}
	log.Println("✓ Created standard_chunks table")

	indexes := []struct {
		name string
		sql  string
	}{
		{
			name: "Vector similarity search (HNSW)",
			sql: `CREATE INDEX idx_embedding_hnsw ON standard_chunks
USING hnsw (embedding vector_cosine_ops)
WITH (m = 16, ef_construction = 64);`,
		},
		{
			name: "Source document filtering",
			sql:  "CREATE INDEX idx_source_document ON standard_chunks(source_document);",
		},
	}

	for _, idx := range indexes {
		_, err = pool.Exec(ctx, idx.sql)
		if err != nil {
			log.Fatalf("Failed to create index (%s): %v", idx.name, err)
		}
		log.Printf("✓ Created index: %s", idx.name)
	}

	log.Println("Schema created successfully")
}
