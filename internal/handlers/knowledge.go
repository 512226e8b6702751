package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"supaagent/internal/auth"
	"supaagent/internal/contextutil"
	"supaagent/internal/ingest"
	"supaagent/internal/storage"
)

// maxUploadSize bounds the size of uploaded knowledge files.
const maxUploadSize = 20 << 20 // 20 MiB

// KnowledgeHandler handles knowledge-base file management for a chatbot.
type KnowledgeHandler struct {
	chatbots  storage.ChatbotStore
	documents storage.DocumentStore
	pipeline  *ingest.Pipeline
}

// NewKnowledgeHandler creates a new KnowledgeHandler.
func NewKnowledgeHandler(chatbots storage.ChatbotStore, documents storage.DocumentStore, pipeline *ingest.Pipeline) *KnowledgeHandler {
	return &KnowledgeHandler{chatbots: chatbots, documents: documents, pipeline: pipeline}
}

// DocumentResponse is the public view of a knowledge document. The extracted
// text stays server-side.
type DocumentResponse struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	FileHash   string    `json:"fileHash"`
	Processed  bool      `json:"processed"`
	ChunkCount int       `json:"chunkCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

func documentResponse(doc *storage.Document) DocumentResponse {
	return DocumentResponse{
		ID:         doc.ID,
		Filename:   doc.Filename,
		Size:       doc.Size,
		FileHash:   doc.FileHash,
		Processed:  doc.Processed,
		ChunkCount: doc.ChunkCount,
		CreatedAt:  doc.CreatedAt,
	}
}

// Upload handles POST /api/chatbots/{id}/knowledge. Expects a multipart form
// with a single "file" field.
func (h *KnowledgeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	chatbot := ownedChatbot(w, r, h.chatbots)
	if chatbot == nil {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read upload", "error", err)
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	doc, err := h.pipeline.IngestDocument(ctx, chatbot.ID, header.Filename, data)
	switch {
	case errors.Is(err, ingest.ErrDuplicate):
		writeError(w, http.StatusConflict, "File already uploaded")
		return
	case errors.Is(err, ingest.ErrUnsupportedType):
		writeError(w, http.StatusBadRequest, "Unsupported file type")
		return
	case errors.Is(err, ingest.ErrNoText):
		writeError(w, http.StatusBadRequest, "File has no readable text")
		return
	case err != nil:
		logger.ErrorContext(ctx, "failed to ingest document", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to process file")
		return
	}

	writeJSON(w, http.StatusCreated, documentResponse(doc))
}

// List handles GET /api/chatbots/{id}/knowledge.
func (h *KnowledgeHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chatbot := ownedChatbot(w, r, h.chatbots)
	if chatbot == nil {
		return
	}

	docs, err := h.documents.ListByChatbot(ctx, chatbot.ID)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list documents", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list knowledge")
		return
	}

	responses := make([]DocumentResponse, 0, len(docs))
	for i := range docs {
		responses = append(responses, documentResponse(&docs[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":     len(responses),
		"knowledge": responses,
	})
}

// Delete handles DELETE /api/chatbots/{id}/knowledge/{docId}. Removes the
// document together with its chunks and vectors.
func (h *KnowledgeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	chatbot := ownedChatbot(w, r, h.chatbots)
	if chatbot == nil {
		return
	}

	docID := chi.URLParam(r, "docId")
	doc, err := h.documents.GetByID(ctx, docID)
	if err != nil || doc.ChatbotID != chatbot.ID {
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			logger.ErrorContext(ctx, "failed to fetch document", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete knowledge")
			return
		}
		writeError(w, http.StatusNotFound, "Knowledge file not found for this chatbot")
		return
	}

	if err := h.pipeline.DeleteDocument(ctx, doc.ID); err != nil {
		logger.ErrorContext(ctx, "failed to delete document", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete knowledge")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Knowledge deleted",
		"deletedChunks": doc.ChunkCount,
	})
}

// Reembed handles POST /api/embed/{docId}. Rebuilds chunks and vectors from
// the document's stored text.
func (h *KnowledgeHandler) Reembed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	docID := chi.URLParam(r, "docId")
	doc, err := h.documents.GetByID(ctx, docID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Document not found")
			return
		}
		logger.ErrorContext(ctx, "failed to fetch document", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate embeddings")
		return
	}

	chatbot, err := h.chatbots.GetByID(ctx, doc.ChatbotID)
	if err != nil || chatbot.CompanyID != auth.CompanyIDFromContext(ctx) {
		writeError(w, http.StatusNotFound, "Document not found")
		return
	}

	count, err := h.pipeline.Reembed(ctx, doc.ID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to re-embed document", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate embeddings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Embeddings generated",
		"chunks":  count,
	})
}
