package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_usage_store.go -package=mocks supaagent/internal/storage UsageStore

import (
	"context"
	"database/sql"
	"fmt"
)

// UsageStore defines the interface for usage tracking.
type UsageStore interface {
	// RecordMessage increments the chatbot's message counter and adds the
	// sender to its unique-user set. Creates the counter row on first use.
	RecordMessage(ctx context.Context, chatbotID, companyID, userNumber string) error
	// GetByChatbot returns usage for one chatbot. A chatbot with no traffic
	// yields zero counters, not an error.
	GetByChatbot(ctx context.Context, chatbotID string) (*Usage, error)
	// GetByCompany aggregates usage across all of a company's chatbots.
	GetByCompany(ctx context.Context, companyID string) (*Usage, error)
}

// UsageRepo provides methods for usage operations.
// It implements the UsageStore interface.
type UsageRepo struct {
	db *sql.DB
}

// NewUsageRepo creates a new UsageRepo.
func NewUsageRepo(db *sql.DB) *UsageRepo {
	return &UsageRepo{db: db}
}

// RecordMessage increments counters for one handled message.
func (r *UsageRepo) RecordMessage(ctx context.Context, chatbotID, companyID, userNumber string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin usage transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO usage_counters (chatbot_id, company_id, total_messages) VALUES (?, ?, 1)
		 ON CONFLICT(chatbot_id) DO UPDATE SET total_messages = total_messages + 1`,
		chatbotID, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to increment message counter: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO usage_users (chatbot_id, user_number) VALUES (?, ?)",
		chatbotID, userNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to record unique user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit usage transaction: %w", err)
	}
	return nil
}

// GetByChatbot returns usage for one chatbot.
func (r *UsageRepo) GetByChatbot(ctx context.Context, chatbotID string) (*Usage, error) {
	usage := &Usage{ChatbotID: chatbotID}

	err := r.db.QueryRowContext(ctx,
		"SELECT company_id, total_messages, last_reset FROM usage_counters WHERE chatbot_id = ?",
		chatbotID,
	).Scan(&usage.CompanyID, &usage.TotalMessages, &usage.LastReset)
	if err == sql.ErrNoRows {
		// No traffic yet: zero counters
		return usage, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query usage: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM usage_users WHERE chatbot_id = ?", chatbotID,
	).Scan(&usage.UniqueUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to count unique users: %w", err)
	}

	return usage, nil
}

// GetByCompany aggregates usage across all of a company's chatbots.
// Unique users are deduplicated across chatbots.
func (r *UsageRepo) GetByCompany(ctx context.Context, companyID string) (*Usage, error) {
	usage := &Usage{CompanyID: companyID}

	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(total_messages), 0) FROM usage_counters WHERE company_id = ?",
		companyID,
	).Scan(&usage.TotalMessages)
	if err != nil {
		return nil, fmt.Errorf("failed to sum messages: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT u.user_number)
		 FROM usage_users u
		 JOIN usage_counters c ON c.chatbot_id = u.chatbot_id
		 WHERE c.company_id = ?`,
		companyID,
	).Scan(&usage.UniqueUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to count unique users: %w", err)
	}

	return usage, nil
}
