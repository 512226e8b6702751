package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks supaagent/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"fmt"
)

// DocumentStore defines the interface for knowledge document storage.
type DocumentStore interface {
	// Create inserts a new document. The doc.ID must be set (UUID).
	Create(ctx context.Context, doc *Document) error
	// GetByID gets a document by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Document, error)
	// GetByHash finds a document for a chatbot with the given file hash.
	// Returns ErrNotFound if no such document exists. Used for duplicate
	// upload detection.
	GetByHash(ctx context.Context, chatbotID, fileHash string) (*Document, error)
	// ListByChatbot returns all documents for a chatbot, newest first.
	ListByChatbot(ctx context.Context, chatbotID string) ([]Document, error)
	// SetProcessed marks a document processed and records its chunk count.
	SetProcessed(ctx context.Context, id string, chunkCount int) error
	// Delete removes a document. Returns ErrNotFound if missing.
	Delete(ctx context.Context, id string) error
}

// DocumentRepo provides methods for document operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

const documentColumns = "id, chatbot_id, filename, size, file_hash, content, processed, chunk_count, created_at"

// Create inserts a new document.
func (r *DocumentRepo) Create(ctx context.Context, doc *Document) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO documents (id, chatbot_id, filename, size, file_hash, content, processed, chunk_count) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		doc.ID, doc.ChatbotID, doc.Filename, doc.Size, doc.FileHash, doc.Content, doc.Processed, doc.ChunkCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// GetByID gets a document by ID.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*Document, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE id = ?", id)
	return scanDocument(row)
}

// GetByHash finds a document for a chatbot with the given file hash.
func (r *DocumentRepo) GetByHash(ctx context.Context, chatbotID, fileHash string) (*Document, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE chatbot_id = ? AND file_hash = ?",
		chatbotID, fileHash)
	return scanDocument(row)
}

// ListByChatbot returns all documents for a chatbot, newest first.
func (r *DocumentRepo) ListByChatbot(ctx context.Context, chatbotID string) ([]Document, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE chatbot_id = ? ORDER BY created_at DESC",
		chatbotID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.ChatbotID, &doc.Filename, &doc.Size, &doc.FileHash, &doc.Content, &doc.Processed, &doc.ChunkCount, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return docs, nil
}

// SetProcessed marks a document processed and records its chunk count.
func (r *DocumentRepo) SetProcessed(ctx context.Context, id string, chunkCount int) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE documents SET processed = 1, chunk_count = ? WHERE id = ?", chunkCount, id)
	if err != nil {
		return fmt.Errorf("failed to mark document processed: %w", err)
	}
	return checkAffected(result)
}

// Delete removes a document.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return checkAffected(result)
}

// scanDocument scans a single document row, mapping sql.ErrNoRows to ErrNotFound.
func scanDocument(row *sql.Row) (*Document, error) {
	var doc Document
	err := row.Scan(&doc.ID, &doc.ChatbotID, &doc.Filename, &doc.Size, &doc.FileHash, &doc.Content, &doc.Processed, &doc.ChunkCount, &doc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return &doc, nil
}
