package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"supaagent/internal/contextutil"
	"supaagent/internal/rag"
	"supaagent/internal/service"
)

// QueryHandler handles direct knowledge-base queries over HTTP.
type QueryHandler struct {
	query service.QueryService
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(query service.QueryService) *QueryHandler {
	return &QueryHandler{query: query}
}

// QueryRequest represents the HTTP request payload for queries.
// This mirrors rag.QueryRequest but is defined here for HTTP layer separation.
//
// swagger:model QueryRequest
type QueryRequest struct {
	ChatbotID string        `json:"chatbotId"`
	Question  string        `json:"question"`
	History   []HistoryTurn `json:"history,omitempty"`
}

// HistoryTurn is one prior conversation message.
type HistoryTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// QueryResponse represents the HTTP response payload for queries.
//
// swagger:model QueryResponse
type QueryResponse struct {
	Answer     string           `json:"answer"`
	Confidence *float64         `json:"confidence"`
	Sources    []SourceResponse `json:"sources"`
}

// SourceResponse describes one context chunk used for the answer.
type SourceResponse struct {
	ID       string  `json:"id"`
	Rank     int     `json:"rank"`
	Citation string  `json:"citation"`
	Score    float64 `json:"score"`
	Preview  string  `json:"preview"`
}

// ServeHTTP handles POST /api/query.
//
// swagger:route POST /api/query queryChatbot
//
// # Query a chatbot's knowledge base
//
// Runs the retrieval pipeline for a question and returns the answer with
// confidence and source chunks.
//
// responses:
//
//	'200':
//	  schema:
//	    "$ref": "#/definitions/QueryResponse"
//	'400':
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'502':
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *QueryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	history := make([]rag.Turn, 0, len(req.History))
	for _, turn := range req.History {
		history = append(history, rag.Turn{Role: turn.Role, Content: turn.Content})
	}

	result, err := h.query.Answer(ctx, rag.QueryRequest{
		ChatbotID: req.ChatbotID,
		Question:  req.Question,
		History:   history,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	sources := make([]SourceResponse, 0, len(result.Sources))
	for _, src := range result.Sources {
		sources = append(sources, SourceResponse{
			ID:       src.ID,
			Rank:     src.Rank,
			Citation: src.Citation,
			Score:    src.Score,
			Preview:  src.Preview,
		})
	}

	writeJSON(w, http.StatusOK, QueryResponse{
		Answer:     result.Answer,
		Confidence: result.Confidence,
		Sources:    sources,
	})
}

// handleServiceError maps service errors to HTTP status codes.
func (h *QueryHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		logger.WarnContext(ctx, "invalid query", "error", err)
		writeError(w, http.StatusBadRequest, "chatbotId and question are required")
		return
	}
	if errors.Is(err, service.ErrInvalidInput) {
		logger.WarnContext(ctx, "invalid query", "error", err)
		writeError(w, http.StatusBadRequest, "chatbotId and question are required")
		return
	}

	logger.ErrorContext(ctx, "query failed", "error", err)

	if errors.Is(err, service.ErrExternalService) {
		writeError(w, http.StatusBadGateway, "External service error")
		return
	}
	writeError(w, http.StatusInternalServerError, "Failed to process query")
}
