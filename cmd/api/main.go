package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"supaagent/internal/auth"
	"supaagent/internal/config"
	"supaagent/internal/http"
	"supaagent/internal/ingest"
	"supaagent/internal/llm"
	"supaagent/internal/rag"
	"supaagent/internal/service"
	"supaagent/internal/storage"
	"supaagent/internal/vectorstore"
	"supaagent/internal/whatsapp"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API powers WhatsApp chatbots that answer customer questions from a
// per-chatbot knowledge base using retrieval-augmented generation.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Supa Agent API
//   description: |
//     Multi-tenant WhatsApp chatbot backend. Companies register, create
//     chatbots bound to WhatsApp phone numbers, upload knowledge files and
//     get grounded answers with confidence scores and source citations.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	companyRepo := storage.NewCompanyRepo(db)
	chatbotRepo := storage.NewChatbotRepo(db)
	documentRepo := storage.NewDocumentRepo(db)
	chunkRepo := storage.NewChunkRepo(db)
	conversationRepo := storage.NewConversationRepo(db)
	usageRepo := storage.NewUsageRepo(db)

	// Initialize Qdrant vector store
	ctx := context.Background()

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.QdrantVectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.QdrantVectorSize, len(testEmbeddings[0]))
	}
	slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

	// Create ingestion pipeline
	pipeline := ingest.NewPipeline(
		documentRepo,
		chunkRepo,
		embedder,
		vectorStore,
		cfg.QdrantCollection,
	)

	// Create LLM client (external service layer)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	// Create retrieval engine with the query embedding cache
	embedCache := rag.NewEmbeddingCache(embedder)
	engine := rag.NewEngine(
		embedCache,
		vectorStore,
		cfg.QdrantCollection,
		chunkRepo,
		chatbotRepo,
		llmClient,
	)
	slog.Info("Retrieval engine initialized")

	// WhatsApp Cloud API client and inbound message service
	sender := whatsapp.NewClient(cfg.WhatsAppAPIBase, cfg.WhatsAppToken)
	inbound := service.NewInboundService(chatbotRepo, engine, sender, conversationRepo, usageRepo)

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	// Create router with dependencies
	deps := &http.Deps{
		DB:             db,
		VectorStore:    vectorStore,
		CollectionName: cfg.QdrantCollection,
		Engine:         engine,
		Pipeline:       pipeline,
		Inbound:        inbound,
		Issuer:         issuer,
		VerifyToken:    cfg.WhatsAppVerifyToken,
		Companies:      companyRepo,
		Chatbots:       chatbotRepo,
		Documents:      documentRepo,
		Conversations:  conversationRepo,
		Usage:          usageRepo,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
