package rag

// Turn is one prior exchange message supplied as conversation history.
// A "bot" role is accepted and normalized to "assistant" when composing
// the prompt.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// QueryRequest represents one question against one chatbot's knowledge base.
type QueryRequest struct {
	// ChatbotID scopes retrieval; chunks of other chatbots are never visible.
	ChatbotID string `json:"chatbotId"`
	// Question is the user's question to answer.
	Question string `json:"question"`
	// History holds prior conversation turns, oldest first.
	History []Turn `json:"history,omitempty"`
}

// Source describes one context chunk that was used to answer a question.
type Source struct {
	// ID is the chunk ID (shared with the vector store point ID).
	ID string `json:"id"`
	// Rank is the 1-based position within the used chunks.
	Rank int `json:"rank"`
	// Citation is the inline marker the model was instructed to emit, e.g. "[1]".
	Citation string `json:"citation"`
	// Score is the similarity score from the vector search.
	Score float64 `json:"score"`
	// Preview is the first 160 characters of the chunk text.
	Preview string `json:"preview"`
}

// QueryResult is the pipeline's output.
type QueryResult struct {
	Answer string `json:"answer"`
	// Confidence is the mean relative similarity of the used chunks,
	// rounded to 3 decimals. Nil when no context was used.
	Confidence *float64 `json:"confidence"`
	// Sources lists the used chunks in rank order. Never more than 5.
	Sources []Source `json:"sources"`
}

// candidate is a retrieval result enriched during filtering and budgeting.
// It exists only within one query's execution.
type candidate struct {
	ID        string
	Score     float32
	Text      string
	EstTokens int
}
