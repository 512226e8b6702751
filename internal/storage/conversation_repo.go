package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_conversation_store.go -package=mocks supaagent/internal/storage ConversationStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// ConversationFilter narrows conversation listings.
// Zero values mean "no constraint".
type ConversationFilter struct {
	UserNumber string
	FromDate   time.Time
	ToDate     time.Time
}

// ConversationStore defines the interface for conversation logging.
type ConversationStore interface {
	// Create inserts a conversation log entry. The convo.ID must be set (UUID).
	Create(ctx context.Context, convo *Conversation) error
	// GetByID gets a conversation by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Conversation, error)
	// ListByChatbot returns conversations for a chatbot, newest first,
	// optionally filtered by user number and date range.
	ListByChatbot(ctx context.Context, chatbotID string, filter ConversationFilter) ([]Conversation, error)
}

// ConversationRepo provides methods for conversation operations.
// It implements the ConversationStore interface.
type ConversationRepo struct {
	db *sql.DB
}

// NewConversationRepo creates a new ConversationRepo.
func NewConversationRepo(db *sql.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

// Create inserts a conversation log entry.
func (r *ConversationRepo) Create(ctx context.Context, convo *Conversation) error {
	sourceDocs := convo.SourceDocs
	if sourceDocs == nil {
		sourceDocs = []string{}
	}
	sourcesJSON, err := json.Marshal(sourceDocs)
	if err != nil {
		return fmt.Errorf("failed to marshal source docs: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO conversations (id, chatbot_id, user_number, question, answer, confidence, source_docs) VALUES (?, ?, ?, ?, ?, ?, ?)",
		convo.ID, convo.ChatbotID, convo.UserNumber, convo.Question, convo.Answer, convo.Confidence, string(sourcesJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}
	return nil
}

// GetByID gets a conversation by ID.
func (r *ConversationRepo) GetByID(ctx context.Context, id string) (*Conversation, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, chatbot_id, user_number, question, answer, confidence, source_docs, created_at FROM conversations WHERE id = ?",
		id,
	)

	convo, err := scanConversation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query conversation: %w", err)
	}
	return convo, nil
}

// ListByChatbot returns conversations for a chatbot, newest first.
func (r *ConversationRepo) ListByChatbot(ctx context.Context, chatbotID string, filter ConversationFilter) ([]Conversation, error) {
	query := "SELECT id, chatbot_id, user_number, question, answer, confidence, source_docs, created_at FROM conversations WHERE chatbot_id = ?"
	args := []any{chatbotID}

	if filter.UserNumber != "" {
		query += " AND user_number = ?"
		args = append(args, filter.UserNumber)
	}
	if !filter.FromDate.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, filter.FromDate)
	}
	if !filter.ToDate.IsZero() {
		query += " AND created_at <= ?"
		args = append(args, filter.ToDate)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var convos []Conversation
	for rows.Next() {
		convo, err := scanConversation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		convos = append(convos, *convo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return convos, nil
}

// scanConversation scans one conversation row using the given scan function.
func scanConversation(scan func(dest ...any) error) (*Conversation, error) {
	var convo Conversation
	var sourcesJSON string
	if err := scan(&convo.ID, &convo.ChatbotID, &convo.UserNumber, &convo.Question, &convo.Answer, &convo.Confidence, &sourcesJSON, &convo.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(sourcesJSON), &convo.SourceDocs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal source docs: %w", err)
	}
	return &convo, nil
}
