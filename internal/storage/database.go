package storage

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			domain TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS chatbots (
			id TEXT PRIMARY KEY,
			company_id TEXT NOT NULL,
			name TEXT NOT NULL,
			phone_number_id TEXT NOT NULL UNIQUE,
			status TEXT NOT NULL DEFAULT 'active',
			persona TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (company_id) REFERENCES companies(id)
		);`,
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			chatbot_id TEXT NOT NULL,
			filename TEXT NOT NULL,
			size INTEGER NOT NULL DEFAULT 0,
			file_hash TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			processed INTEGER NOT NULL DEFAULT 0,
			chunk_count INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (chatbot_id) REFERENCES chatbots(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_documents_chatbot_hash ON documents(chatbot_id, file_hash);`,
		`CREATE TABLE IF NOT EXISTS chunks (
			id TEXT PRIMARY KEY,
			document_id TEXT NOT NULL,
			chatbot_id TEXT NOT NULL,
			chunk_index INTEGER NOT NULL,
			text TEXT NOT NULL,
			FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_document ON chunks(document_id);`,
		`CREATE TABLE IF NOT EXISTS conversations (
			id TEXT PRIMARY KEY,
			chatbot_id TEXT NOT NULL,
			user_number TEXT NOT NULL,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			confidence REAL,
			source_docs TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (chatbot_id) REFERENCES chatbots(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_chatbot ON conversations(chatbot_id, created_at);`,
		`CREATE TABLE IF NOT EXISTS usage_counters (
			chatbot_id TEXT PRIMARY KEY,
			company_id TEXT NOT NULL,
			total_messages INTEGER NOT NULL DEFAULT 0,
			last_reset DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (chatbot_id) REFERENCES chatbots(id)
		);`,
		`CREATE TABLE IF NOT EXISTS usage_users (
			chatbot_id TEXT NOT NULL,
			user_number TEXT NOT NULL,
			PRIMARY KEY (chatbot_id, user_number)
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
