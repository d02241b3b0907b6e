package main

import (
	"context"
	"log"
	"time"

	"shariahaudit-backend/config"
	"shariahaudit-backend/handlers"
	"shariahaudit-backend/index"
	"shariahaudit-backend/llm"
	"shariahaudit-backend/repository"
	"shariahaudit-backend/search"
	"shariahaudit-backend/service"
	"shariahaudit-backend/zakat"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/api/option"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := initPostgres(cfg)
	if err != nil {
		log.Fatal("Failed to initialize Postgres:", err)
	}
	defer db.Close()

	genaiClient, err := initGemini(cfg)
	if err != nil {
		log.Fatal("Failed to initialize Gemini:", err)
	}
	defer genaiClient.Close()

	completer := llm.NewGeminiClient(genaiClient, cfg.CompletionModel)
	gateway := llm.NewGateway(completer, llm.CriticalPolicy)
	suggestGateway := llm.NewGateway(completer, llm.RelaxedPolicy)

	embedder := llm.NewGeminiEmbedder(cfg.GeminiAPIKey, cfg.EmbeddingModel)
	chunkRepo := repository.NewChunkRepository(db)
	standardsIndex := index.New(embedder, chunkRepo)

	auditService := service.NewAuditService(
		service.WithGateway(gateway),
		service.WithSuggestionGateway(suggestGateway),
		service.WithSourceIndex(standardsIndex),
		service.WithPacer(service.NewRatePacer(time.Duration(cfg.PacingIntervalMs)*time.Millisecond)),
	)

	searchAgent := search.NewAgent(cfg.SearchAPIKey, cfg.SearchEndpoint)
	calculator := zakat.NewCalculator(zakat.DefaultMetalPrices())

	auditHandler := handlers.NewAuditHandler(auditService)
	standardsHandler := handlers.NewStandardsHandler(searchAgent, cfg.SearchEnabled)
	zakatHandler := handlers.NewZakatHandler(calculator)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	api := r.Group("/api")
	{
		api.POST("/audit", auditHandler.AuditProduct)
		api.POST("/extract", auditHandler.ExtractProduct)
		api.POST("/check-clause", auditHandler.CheckClause)
		api.POST("/find-source", auditHandler.FindSource)

		api.GET("/search-standards", standardsHandler.SearchStandards)
		api.GET("/standard-details", standardsHandler.StandardDetails)
		api.GET("/applicable-standards", standardsHandler.ApplicableStandards)

		api.POST("/zakat", zakatHandler.Calculate)
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func initPostgres(cfg *config.Config) (*pgxpool.Pool, error) {
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	_, err = pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		log.Printf("Warning: Failed to create pgvector extension: %v", err)
		log.Println("This may be normal if extension is already installed or requires superuser privileges")
	} else {
		log.Println("pgvector extension enabled")
	}

	log.Println("Postgres connection established with pgvector support")
	return pool, nil
}

func initGemini(cfg *config.Config) (*genai.Client, error) {
	if cfg.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, err
	}

	log.Println("Gemini client initialized")
	return client, nil
}
