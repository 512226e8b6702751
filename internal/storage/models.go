package storage

import "time"

// Company represents a registered company account.
type Company struct {
	ID           string // UUID
	Name         string
	Domain       string
	Email        string // login identity, unique
	PasswordHash string // bcrypt hash, never exposed over the API
	CreatedAt    time.Time
}

// Chatbot represents a chatbot bound to a WhatsApp business number.
type Chatbot struct {
	ID            string // UUID
	CompanyID     string // Foreign key to companies.id
	Name          string
	PhoneNumberID string // Meta WhatsApp phone number ID, unique
	Status        string // "active" or "inactive"
	Persona       string // System instruction for the prompt composer; may be blank
	CreatedAt     time.Time
}

// Document represents an uploaded knowledge base document.
type Document struct {
	ID         string // UUID
	ChatbotID  string // Foreign key to chatbots.id
	Filename   string
	Size       int64
	FileHash   string // SHA-256 hex of the raw upload, for duplicate detection
	Content    string // extracted plain text, kept for re-embedding
	Processed  bool
	ChunkCount int
	CreatedAt  time.Time
}

// ChunkRecord represents a chunk of document text indexed for vector search.
// The ID doubles as the Qdrant point ID.
type ChunkRecord struct {
	ID         string // UUID (same as Qdrant point ID)
	DocumentID string // Foreign key to documents.id
	ChatbotID  string // Foreign key to chatbots.id; retrieval isolation key
	ChunkIndex int    // Index within document (starts at 0)
	Text       string
}

// Conversation represents one question/answer exchange with an end user.
type Conversation struct {
	ID         string // UUID
	ChatbotID  string
	UserNumber string // WhatsApp number of the end user
	Question   string
	Answer     string
	Confidence *float64 // nil when the pipeline produced no usable context
	SourceDocs []string // chunk IDs used for the answer
	CreatedAt  time.Time
}

// Usage aggregates message traffic for one chatbot.
type Usage struct {
	ChatbotID     string
	CompanyID     string
	TotalMessages int
	UniqueUsers   int
	LastReset     time.Time
}
