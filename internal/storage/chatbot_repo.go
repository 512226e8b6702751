package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chatbot_store.go -package=mocks supaagent/internal/storage ChatbotStore

import (
	"context"
	"database/sql"
	"fmt"
)

// ChatbotStore defines the interface for chatbot storage operations.
type ChatbotStore interface {
	// Create inserts a new chatbot. The chatbot.ID must be set (UUID).
	Create(ctx context.Context, bot *Chatbot) error
	// GetByID gets a chatbot by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Chatbot, error)
	// GetByPhoneNumberID resolves the chatbot bound to a WhatsApp phone
	// number ID. Returns ErrNotFound if no chatbot is bound.
	GetByPhoneNumberID(ctx context.Context, phoneNumberID string) (*Chatbot, error)
	// ListByCompany returns all chatbots for a company, newest first.
	// An empty companyID returns all chatbots.
	ListByCompany(ctx context.Context, companyID string) ([]Chatbot, error)
	// Update updates name, phone number binding, status and persona.
	// Returns ErrNotFound if missing.
	Update(ctx context.Context, bot *Chatbot) error
	// UpdatePersona updates only the persona. Returns ErrNotFound if missing.
	UpdatePersona(ctx context.Context, id, persona string) error
	// Delete removes a chatbot. Returns ErrNotFound if missing.
	Delete(ctx context.Context, id string) error
}

// ChatbotRepo provides methods for chatbot operations.
// It implements the ChatbotStore interface.
type ChatbotRepo struct {
	db *sql.DB
}

// NewChatbotRepo creates a new ChatbotRepo.
func NewChatbotRepo(db *sql.DB) *ChatbotRepo {
	return &ChatbotRepo{db: db}
}

const chatbotColumns = "id, company_id, name, phone_number_id, status, persona, created_at"

// Create inserts a new chatbot.
func (r *ChatbotRepo) Create(ctx context.Context, bot *Chatbot) error {
	if bot.Status == "" {
		bot.Status = "active"
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO chatbots (id, company_id, name, phone_number_id, status, persona) VALUES (?, ?, ?, ?, ?, ?)",
		bot.ID, bot.CompanyID, bot.Name, bot.PhoneNumberID, bot.Status, bot.Persona,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chatbot: %w", err)
	}
	return nil
}

// GetByID gets a chatbot by ID.
func (r *ChatbotRepo) GetByID(ctx context.Context, id string) (*Chatbot, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+chatbotColumns+" FROM chatbots WHERE id = ?", id)
	return scanChatbot(row)
}

// GetByPhoneNumberID resolves the chatbot bound to a WhatsApp phone number ID.
func (r *ChatbotRepo) GetByPhoneNumberID(ctx context.Context, phoneNumberID string) (*Chatbot, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+chatbotColumns+" FROM chatbots WHERE phone_number_id = ?", phoneNumberID)
	return scanChatbot(row)
}

// ListByCompany returns all chatbots for a company, newest first.
func (r *ChatbotRepo) ListByCompany(ctx context.Context, companyID string) ([]Chatbot, error) {
	query := "SELECT " + chatbotColumns + " FROM chatbots ORDER BY created_at DESC"
	args := []any{}
	if companyID != "" {
		query = "SELECT " + chatbotColumns + " FROM chatbots WHERE company_id = ? ORDER BY created_at DESC"
		args = append(args, companyID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chatbots: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var bots []Chatbot
	for rows.Next() {
		var bot Chatbot
		if err := rows.Scan(&bot.ID, &bot.CompanyID, &bot.Name, &bot.PhoneNumberID, &bot.Status, &bot.Persona, &bot.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chatbot: %w", err)
		}
		bots = append(bots, bot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return bots, nil
}

// Update updates name, phone number binding, status and persona of a chatbot.
func (r *ChatbotRepo) Update(ctx context.Context, bot *Chatbot) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE chatbots SET name = ?, phone_number_id = ?, status = ?, persona = ? WHERE id = ?",
		bot.Name, bot.PhoneNumberID, bot.Status, bot.Persona, bot.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update chatbot: %w", err)
	}
	return checkAffected(result)
}

// UpdatePersona updates only the persona of a chatbot.
func (r *ChatbotRepo) UpdatePersona(ctx context.Context, id, persona string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE chatbots SET persona = ? WHERE id = ?", persona, id)
	if err != nil {
		return fmt.Errorf("failed to update persona: %w", err)
	}
	return checkAffected(result)
}

// Delete removes a chatbot.
func (r *ChatbotRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM chatbots WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete chatbot: %w", err)
	}
	return checkAffected(result)
}

// scanChatbot scans a single chatbot row, mapping sql.ErrNoRows to ErrNotFound.
func scanChatbot(row *sql.Row) (*Chatbot, error) {
	var bot Chatbot
	err := row.Scan(&bot.ID, &bot.CompanyID, &bot.Name, &bot.PhoneNumberID, &bot.Status, &bot.Persona, &bot.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query chatbot: %w", err)
	}
	return &bot, nil
}

// checkAffected maps zero affected rows to ErrNotFound.
func checkAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
