package main

import (
	"context"
	"log"
	"time"

	"shariahaudit-backend/config"
	"shariahaudit-backend/index"
	"shariahaudit-backend/ingest"
	"shariahaudit-backend/llm"
	"shariahaudit-backend/repository"
	"shariahaudit-backend/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	store, err := storage.NewDocumentStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize document store: %v", err)
	}

	ingestor := ingest.NewIngestor(store, ingest.NewSplitter(ingest.DefaultChunkSize, ingest.DefaultOverlap))
	chunks, err := ingestor.LoadChunks(ctx)
	if err != nil {
		log.Fatalf("Failed to load standards documents: %v", err)
	}
	if len(chunks) == 0 {
		log.Fatal("No chunks produced, nothing to index")
	}

	embedder := llm.NewGeminiEmbedder(cfg.GeminiAPIKey, cfg.EmbeddingModel)
	chunkRepo := repository.NewChunkRepository(pool)
	limiter := rate.NewLimiter(rate.Every(time.Duration(cfg.PacingIntervalMs)*time.Millisecond), 1)

	builder := index.NewBuilder(embedder, chunkRepo, limiter)
	if err := builder.Build(ctx, chunks); err != nil {
		log.Fatalf("Failed to build index: %v", err)
	}

	count, err := chunkRepo.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count indexed chunks: %v", err)
	}
	log.Printf("Index build complete, %d chunks stored", count)
}
