package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"supaagent/internal/contextutil"
	"supaagent/internal/llm"
	"supaagent/internal/storage"
	"supaagent/internal/vectorstore"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_generator.go -package=mocks supaagent/internal/rag Generator
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks supaagent/internal/rag Engine

const (
	// searchNumCandidates is how many candidates the ANN search considers.
	searchNumCandidates = 60
	// searchLimit is how many scored results the search returns.
	searchLimit = 8
	// generationTemperature is the sampling temperature for answers.
	generationTemperature = 0.4
	// sourcePreviewLength is how many characters of a chunk a source preview shows.
	sourcePreviewLength = 160
)

// ErrInvalidInput signals a request missing its chatbot ID or question.
var ErrInvalidInput = errors.New("chatbotId and question are required")

// Generator produces a chat completion for a composed message list.
type Generator interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// Engine answers questions against a chatbot's knowledge base.
type Engine interface {
	// Answer runs the full retrieval pipeline for one question. It returns
	// an error only for invalid input or failures of embedding/generation;
	// a failing vector search degrades to an answer without context.
	Answer(ctx context.Context, req QueryRequest) (QueryResult, error)
}

// ragEngine implements Engine. Retrieval is strictly scoped to the
// requesting chatbot; the vector store filter guarantees isolation.
type ragEngine struct {
	cache      *EmbeddingCache
	store      vectorstore.VectorStore
	collection string
	chunks     storage.ChunkStore
	chatbots   storage.ChatbotStore
	generator  Generator
}

// NewEngine creates the retrieval engine.
func NewEngine(cache *EmbeddingCache, store vectorstore.VectorStore, collection string, chunks storage.ChunkStore, chatbots storage.ChatbotStore, generator Generator) Engine {
	return &ragEngine{
		cache:      cache,
		store:      store,
		collection: collection,
		chunks:     chunks,
		chatbots:   chatbots,
		generator:  generator,
	}
}

// Answer runs the full retrieval pipeline for one question.
func (e *ragEngine) Answer(ctx context.Context, req QueryRequest) (QueryResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	chatbotID := strings.TrimSpace(req.ChatbotID)
	question := strings.TrimSpace(req.Question)
	if chatbotID == "" || question == "" {
		return QueryResult{}, ErrInvalidInput
	}

	vec, err := e.cache.GetOrCompute(ctx, question)
	if err != nil {
		return QueryResult{}, fmt.Errorf("failed to embed question: %w", err)
	}

	results, err := e.store.Search(ctx, e.collection, vec, chatbotID, searchNumCandidates, searchLimit)
	if err != nil {
		// Degrade to an answer without context rather than failing the query.
		logger.Warn("vector search failed, continuing without context", "error", err)
		results = nil
	}

	kept := filterByRelevance(results)

	cands := make([]candidate, 0, len(kept))
	for _, r := range kept {
		chunk, err := e.chunks.GetByID(ctx, r.PointID)
		if err != nil {
			logger.Warn("chunk text missing for search hit", "chunk_id", r.PointID, "error", err)
			continue
		}
		cands = append(cands, candidate{ID: chunk.ID, Score: r.Score, Text: chunk.Text})
	}

	used := budgetChunks(cands)
	if len(used) == 0 {
		logger.Info("no context survived retrieval", "chatbot_id", chatbotID)
		return QueryResult{Answer: fallbackAnswer, Sources: []Source{}}, nil
	}

	persona := e.lookupPersona(ctx, chatbotID)
	messages := buildMessages(persona, used, req.History, question)

	answer, err := e.generator.ChatWithMessages(ctx, messages, llm.ChatParams{Temperature: generationTemperature})
	if err != nil {
		return QueryResult{}, fmt.Errorf("failed to generate answer: %w", err)
	}

	logger.Info("answered question",
		"chatbot_id", chatbotID,
		"chunks_used", len(used),
	)
	return QueryResult{
		Answer:     answer,
		Confidence: confidenceScore(used),
		Sources:    buildSources(used),
	}, nil
}

// lookupPersona returns the chatbot's persona, or "" when the chatbot is
// unknown or has none configured. The caller falls back to the default.
func (e *ragEngine) lookupPersona(ctx context.Context, chatbotID string) string {
	bot, err := e.chatbots.GetByID(ctx, chatbotID)
	if err != nil {
		return ""
	}
	return bot.Persona
}

// buildSources describes the used chunks in rank order.
func buildSources(used []candidate) []Source {
	sources := make([]Source, 0, len(used))
	for i, c := range used {
		preview := c.Text
		if runes := []rune(preview); len(runes) > sourcePreviewLength {
			preview = string(runes[:sourcePreviewLength])
		}
		sources = append(sources, Source{
			ID:       c.ID,
			Rank:     i + 1,
			Citation: fmt.Sprintf("[%d]", i+1),
			Score:    float64(c.Score),
			Preview:  preview,
		})
	}
	return sources
}
