package ingest

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"supaagent/internal/contextutil"
	"supaagent/internal/storage"
	"supaagent/internal/vectorstore"
)

var (
	// ErrDuplicate signals that the same file content was already uploaded
	// for this chatbot.
	ErrDuplicate = errors.New("document already uploaded")
	// ErrNoText signals a file with no readable text.
	ErrNoText = errors.New("file has no readable text")
)

// Embedder turns texts into embedding vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Pipeline turns uploaded files into stored, embedded knowledge chunks.
// Chunk rows in SQLite and points in Qdrant share the same UUID.
type Pipeline struct {
	documents   storage.DocumentStore
	chunks      storage.ChunkStore
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	documents storage.DocumentStore,
	chunks storage.ChunkStore,
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
) *Pipeline {
	return &Pipeline{
		documents:   documents,
		chunks:      chunks,
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
	}
}

// IngestDocument extracts text from an uploaded file, stores the document and
// indexes its chunks. Returns ErrDuplicate when the same content was already
// uploaded for the chatbot and ErrNoText when nothing readable was extracted.
func (p *Pipeline) IngestDocument(ctx context.Context, chatbotID, filename string, data []byte) (*storage.Document, error) {
	logger := contextutil.LoggerFromContext(ctx)

	text, err := ExtractText(filename, data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}

	hash := fmt.Sprintf("%x", sha256.Sum256(data))
	existing, err := p.documents.GetByHash(ctx, chatbotID, hash)
	if err != nil && err != storage.ErrNotFound {
		return nil, fmt.Errorf("failed to check for duplicate upload: %w", err)
	}
	if existing != nil {
		return existing, ErrDuplicate
	}

	doc := &storage.Document{
		ID:        uuid.New().String(),
		ChatbotID: chatbotID,
		Filename:  filename,
		Size:      int64(len(data)),
		FileHash:  hash,
		Content:   text,
	}
	if err := p.documents.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	count, err := p.indexContent(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc.Processed = true
	doc.ChunkCount = count

	logger.Info("document ingested",
		"chatbot_id", chatbotID,
		"document_id", doc.ID,
		"filename", filename,
		"chunks", count,
	)
	return doc, nil
}

// Reembed rebuilds all chunks and vectors for a document from its stored
// text. Used after switching embedding models or fixing chunking.
func (p *Pipeline) Reembed(ctx context.Context, documentID string) (int, error) {
	doc, err := p.documents.GetByID(ctx, documentID)
	if err != nil {
		return 0, err
	}

	if err := p.removeChunks(ctx, doc.ID); err != nil {
		return 0, err
	}

	count, err := p.indexContent(ctx, doc)
	if err != nil {
		return 0, err
	}

	contextutil.LoggerFromContext(ctx).Info("document re-embedded",
		"document_id", doc.ID,
		"chunks", count,
	)
	return count, nil
}

// DeleteDocument removes a document together with its chunks and vectors.
func (p *Pipeline) DeleteDocument(ctx context.Context, documentID string) error {
	doc, err := p.documents.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	if err := p.removeChunks(ctx, doc.ID); err != nil {
		return err
	}
	if err := p.documents.Delete(ctx, doc.ID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// indexContent chunks, embeds and stores a document's text, then marks the
// document processed. Returns the chunk count.
func (p *Pipeline) indexContent(ctx context.Context, doc *storage.Document) (int, error) {
	texts := SplitText(doc.Content)
	if len(texts) == 0 {
		return 0, ErrNoText
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(embeddings) != len(texts) {
		return 0, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(texts), len(embeddings))
	}

	points := make([]vectorstore.Point, len(texts))
	records := make([]*storage.ChunkRecord, len(texts))
	for i, text := range texts {
		chunkID := uuid.New().String()
		records[i] = &storage.ChunkRecord{
			ID:         chunkID,
			DocumentID: doc.ID,
			ChatbotID:  doc.ChatbotID,
			ChunkIndex: i,
			Text:       text,
		}
		points[i] = vectorstore.Point{
			ID:  chunkID,
			Vec: embeddings[i],
			Meta: map[string]any{
				"chatbot_id":  doc.ChatbotID,
				"doc_id":      doc.ID,
				"chunk_index": i,
			},
		}
	}

	for _, record := range records {
		if err := p.chunks.Insert(ctx, record); err != nil {
			return 0, fmt.Errorf("failed to store chunk: %w", err)
		}
	}
	if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
		return 0, fmt.Errorf("failed to store vectors: %w", err)
	}

	if err := p.documents.SetProcessed(ctx, doc.ID, len(texts)); err != nil {
		return 0, fmt.Errorf("failed to mark document processed: %w", err)
	}
	return len(texts), nil
}

// removeChunks deletes a document's chunks from both stores. A failing
// vector delete is logged and tolerated since the points get overwritten or
// orphaned harmlessly behind the chatbot filter.
func (p *Pipeline) removeChunks(ctx context.Context, documentID string) error {
	ids, err := p.chunks.ListIDsByDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("failed to list chunk IDs: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	if err := p.vectorStore.Delete(ctx, p.collection, ids); err != nil {
		contextutil.LoggerFromContext(ctx).Warn("failed to delete vectors", "error", err, "count", len(ids))
	}
	if err := p.chunks.DeleteByDocument(ctx, documentID); err != nil {
		return fmt.Errorf("failed to delete chunks: %w", err)
	}
	return nil
}
