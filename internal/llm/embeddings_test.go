package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewEmbeddingsClient(t *testing.T) {
	client := NewEmbeddingsClient("http://localhost:8081", "test-key", "test-model", 1536)
	if client == nil {
		t.Fatal("NewEmbeddingsClient() returned nil")
	}
	if client.ExpectedSize != 1536 {
		t.Errorf("NewEmbeddingsClient() ExpectedSize = %v, want 1536", client.ExpectedSize)
	}
}

func embeddingsServer(t *testing.T, vectors [][]float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("expected /v1/embeddings, got %s", r.URL.Path)
		}

		data := make([]EmbeddingData, len(vectors))
		for i, v := range vectors {
			data[i] = EmbeddingData{Embedding: v}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(EmbeddingsResponse{Data: data})
	}))
}

func TestEmbeddingsClient_EmbedTexts(t *testing.T) {
	server := embeddingsServer(t, [][]float64{{0.1, 0.2, 0.3}, {0.4, 0.5, 0.6}})
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "test-key", "test-model", 3)
	got, err := client.EmbedTexts(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("EmbedTexts() unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("EmbedTexts() returned %d vectors, want 2", len(got))
	}
	if got[0][1] != 0.2 || got[1][2] != 0.6 {
		t.Errorf("EmbedTexts() unexpected values: %v", got)
	}
}

func TestEmbeddingsClient_EmbedTexts_EmptyInput(t *testing.T) {
	client := NewEmbeddingsClient("http://localhost:8081", "test-key", "test-model", 3)
	if _, err := client.EmbedTexts(context.Background(), nil); err == nil {
		t.Error("EmbedTexts() expected error for empty input")
	}
}

func TestEmbeddingsClient_EmbedTexts_SizeMismatch(t *testing.T) {
	server := embeddingsServer(t, [][]float64{{0.1, 0.2}})
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "test-key", "test-model", 3)
	if _, err := client.EmbedTexts(context.Background(), []string{"text"}); err == nil {
		t.Error("EmbedTexts() expected error for size mismatch")
	}
}

func TestEmbeddingsClient_EmbedTexts_CountMismatch(t *testing.T) {
	server := embeddingsServer(t, [][]float64{{0.1, 0.2, 0.3}})
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "test-key", "test-model", 3)
	if _, err := client.EmbedTexts(context.Background(), []string{"one", "two"}); err == nil {
		t.Error("EmbedTexts() expected error for count mismatch")
	}
}

func TestEmbeddingsClient_EmbedTexts_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "test-key", "test-model", 3)
	if _, err := client.EmbedTexts(context.Background(), []string{"text"}); err == nil {
		t.Error("EmbedTexts() expected error for server failure")
	}
}
