package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"supaagent/internal/llm"
	"supaagent/internal/storage"
	storage_mocks "supaagent/internal/storage/mocks"
	"supaagent/internal/vectorstore"
	vectorstore_mocks "supaagent/internal/vectorstore/mocks"

	"go.uber.org/mock/gomock"
)

// stubGenerator lets a test inspect the composed messages and count calls.
type stubGenerator struct {
	calls  int
	answer string
	err    error
	verify func(t *testing.T, messages []llm.Message, params llm.ChatParams)
	t      *testing.T
}

func (g *stubGenerator) ChatWithMessages(_ context.Context, messages []llm.Message, params llm.ChatParams) (string, error) {
	g.calls++
	if g.verify != nil {
		g.verify(g.t, messages, params)
	}
	return g.answer, g.err
}

type engineMocks struct {
	vectorStore *vectorstore_mocks.MockVectorStore
	chunks      *storage_mocks.MockChunkStore
	chatbots    *storage_mocks.MockChatbotStore
	generator   *stubGenerator
	embedder    *countingEmbedder
}

func newTestEngine(t *testing.T, ctrl *gomock.Controller) (Engine, *engineMocks) {
	m := &engineMocks{
		vectorStore: vectorstore_mocks.NewMockVectorStore(ctrl),
		chunks:      storage_mocks.NewMockChunkStore(ctrl),
		chatbots:    storage_mocks.NewMockChatbotStore(ctrl),
		generator:   &stubGenerator{t: t},
		embedder:    newCountingEmbedder(),
	}
	engine := NewEngine(NewEmbeddingCache(m.embedder), m.vectorStore, "kb_chunks", m.chunks, m.chatbots, m.generator)
	return engine, m
}

func TestEngineAnswerValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, _ := newTestEngine(t, ctrl)

	tests := []struct {
		name string
		req  QueryRequest
	}{
		{"missing chatbot", QueryRequest{Question: "hi"}},
		{"missing question", QueryRequest{ChatbotID: "bot-1"}},
		{"blank question", QueryRequest{ChatbotID: "bot-1", Question: "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Answer(context.Background(), tt.req)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestEngineAnswerFullPipeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, m := newTestEngine(t, ctrl)

	m.vectorStore.EXPECT().
		Search(gomock.Any(), "kb_chunks", gomock.Any(), "bot-1", 60, 8).
		Return([]vectorstore.SearchResult{
			{PointID: "chunk-a", Score: 0.9},
			{PointID: "chunk-b", Score: 0.6},
			{PointID: "chunk-c", Score: 0.2}, // below 55% of top, filtered out
		}, nil)
	m.chunks.EXPECT().GetByID(gomock.Any(), "chunk-a").
		Return(&storage.ChunkRecord{ID: "chunk-a", Text: "Refunds are processed within 14 days."}, nil)
	m.chunks.EXPECT().GetByID(gomock.Any(), "chunk-b").
		Return(&storage.ChunkRecord{ID: "chunk-b", Text: "Contact support to start a refund."}, nil)
	m.chatbots.EXPECT().GetByID(gomock.Any(), "bot-1").
		Return(&storage.Chatbot{ID: "bot-1", Persona: "You are the Acme helper."}, nil)
	m.generator.answer = "Refunds take 14 days [1]."
	m.generator.verify = func(t *testing.T, messages []llm.Message, params llm.ChatParams) {
		if params.Temperature != 0.4 {
			t.Fatalf("expected temperature 0.4, got %v", params.Temperature)
		}
		if messages[0].Content != "You are the Acme helper." {
			t.Fatalf("expected configured persona, got %q", messages[0].Content)
		}
		if !strings.Contains(messages[2].Content, "[[CHUNK_1 id:chunk-a") {
			t.Fatalf("expected context block with chunk-a, got %q", messages[2].Content)
		}
		if messages[len(messages)-1].Content != "What is the refund policy?" {
			t.Fatalf("expected question last, got %q", messages[len(messages)-1].Content)
		}
	}

	result, err := engine.Answer(context.Background(), QueryRequest{
		ChatbotID: "bot-1",
		Question:  "What is the refund policy?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Answer != "Refunds take 14 days [1]." {
		t.Fatalf("unexpected answer: %q", result.Answer)
	}
	if result.Confidence == nil {
		t.Fatal("expected confidence with context used")
	}
	if len(result.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(result.Sources))
	}
	if result.Sources[0].Rank != 1 || result.Sources[0].Citation != "[1]" || result.Sources[0].ID != "chunk-a" {
		t.Fatalf("unexpected first source: %+v", result.Sources[0])
	}
	if result.Sources[1].Rank != 2 || result.Sources[1].Citation != "[2]" {
		t.Fatalf("unexpected second source: %+v", result.Sources[1])
	}
}

func TestEngineAnswerNoContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, m := newTestEngine(t, ctrl)

	// All hits score below the absolute floor.
	m.vectorStore.EXPECT().
		Search(gomock.Any(), "kb_chunks", gomock.Any(), "bot-1", 60, 8).
		Return([]vectorstore.SearchResult{{PointID: "chunk-a", Score: 0.1}}, nil)

	result, err := engine.Answer(context.Background(), QueryRequest{ChatbotID: "bot-1", Question: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Answer != fallbackAnswer {
		t.Fatalf("expected the fixed fallback answer, got %q", result.Answer)
	}
	if result.Confidence != nil {
		t.Fatalf("expected nil confidence, got %v", *result.Confidence)
	}
	if len(result.Sources) != 0 {
		t.Fatalf("expected no sources, got %v", result.Sources)
	}
	if m.generator.calls != 0 {
		t.Fatalf("expected generator not to run without context, got %d calls", m.generator.calls)
	}
}

func TestEngineAnswerSearchFailureDegrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, m := newTestEngine(t, ctrl)

	m.vectorStore.EXPECT().
		Search(gomock.Any(), "kb_chunks", gomock.Any(), "bot-1", 60, 8).
		Return(nil, errors.New("connection refused"))

	result, err := engine.Answer(context.Background(), QueryRequest{ChatbotID: "bot-1", Question: "hello"})
	if err != nil {
		t.Fatalf("expected degradation instead of failure, got %v", err)
	}
	if result.Answer != fallbackAnswer {
		t.Fatalf("expected fallback answer, got %q", result.Answer)
	}
}

func TestEngineAnswerSkipsMissingChunkText(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, m := newTestEngine(t, ctrl)

	m.vectorStore.EXPECT().
		Search(gomock.Any(), "kb_chunks", gomock.Any(), "bot-1", 60, 8).
		Return([]vectorstore.SearchResult{
			{PointID: "chunk-a", Score: 0.9},
			{PointID: "chunk-gone", Score: 0.8},
		}, nil)
	m.chunks.EXPECT().GetByID(gomock.Any(), "chunk-a").
		Return(&storage.ChunkRecord{ID: "chunk-a", Text: "Kept text."}, nil)
	m.chunks.EXPECT().GetByID(gomock.Any(), "chunk-gone").
		Return(nil, storage.ErrNotFound)
	m.chatbots.EXPECT().GetByID(gomock.Any(), "bot-1").
		Return(nil, storage.ErrNotFound)
	m.generator.answer = "answer"
	m.generator.verify = func(t *testing.T, messages []llm.Message, _ llm.ChatParams) {
		if messages[0].Content != fallbackPersona {
			t.Fatalf("expected fallback persona for unknown chatbot")
		}
		if strings.Contains(messages[2].Content, "chunk-gone") {
			t.Fatalf("expected missing chunk dropped from context")
		}
	}

	result, err := engine.Answer(context.Background(), QueryRequest{ChatbotID: "bot-1", Question: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Sources) != 1 || result.Sources[0].ID != "chunk-a" {
		t.Fatalf("expected only the surviving chunk as source, got %v", result.Sources)
	}
}

func TestEngineAnswerGeneratorError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, m := newTestEngine(t, ctrl)

	m.vectorStore.EXPECT().
		Search(gomock.Any(), "kb_chunks", gomock.Any(), "bot-1", 60, 8).
		Return([]vectorstore.SearchResult{{PointID: "chunk-a", Score: 0.9}}, nil)
	m.chunks.EXPECT().GetByID(gomock.Any(), "chunk-a").
		Return(&storage.ChunkRecord{ID: "chunk-a", Text: "Some text."}, nil)
	m.chatbots.EXPECT().GetByID(gomock.Any(), "bot-1").
		Return(&storage.Chatbot{ID: "bot-1"}, nil)
	m.generator.err = fmt.Errorf("model overloaded")

	if _, err := engine.Answer(context.Background(), QueryRequest{ChatbotID: "bot-1", Question: "hello"}); err == nil {
		t.Fatal("expected generation failure to propagate")
	}
}

func TestEngineAnswerQuestionEmbeddingCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engine, m := newTestEngine(t, ctrl)

	m.vectorStore.EXPECT().
		Search(gomock.Any(), "kb_chunks", gomock.Any(), "bot-1", 60, 8).
		Return(nil, nil).Times(2)

	req := QueryRequest{ChatbotID: "bot-1", Question: "same question"}
	for i := 0; i < 2; i++ {
		if _, err := engine.Answer(context.Background(), req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if m.embedder.calls["same question"] != 1 {
		t.Fatalf("expected one embedding call for repeated question, got %d", m.embedder.calls["same question"])
	}
}
