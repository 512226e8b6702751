package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"supaagent/internal/auth"
	"supaagent/internal/contextutil"
	"supaagent/internal/storage"
)

// ConversationHandler exposes the conversation log for a chatbot.
type ConversationHandler struct {
	chatbots      storage.ChatbotStore
	conversations storage.ConversationStore
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(chatbots storage.ChatbotStore, conversations storage.ConversationStore) *ConversationHandler {
	return &ConversationHandler{chatbots: chatbots, conversations: conversations}
}

// ConversationResponse is the public view of a logged exchange.
type ConversationResponse struct {
	ID         string    `json:"id"`
	ChatbotID  string    `json:"chatbotId"`
	UserNumber string    `json:"userNumber"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Confidence *float64  `json:"confidence"`
	SourceDocs []string  `json:"sourceDocs"`
	CreatedAt  time.Time `json:"createdAt"`
}

func conversationResponse(c *storage.Conversation) ConversationResponse {
	sourceDocs := c.SourceDocs
	if sourceDocs == nil {
		sourceDocs = []string{}
	}
	return ConversationResponse{
		ID:         c.ID,
		ChatbotID:  c.ChatbotID,
		UserNumber: c.UserNumber,
		Question:   c.Question,
		Answer:     c.Answer,
		Confidence: c.Confidence,
		SourceDocs: sourceDocs,
		CreatedAt:  c.CreatedAt,
	}
}

// List handles GET /api/conversations/{id}. Optional query parameters:
// userNumber, fromDate, toDate (RFC 3339 or YYYY-MM-DD).
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chatbot := ownedChatbot(w, r, h.chatbots)
	if chatbot == nil {
		return
	}

	filter := storage.ConversationFilter{
		UserNumber: r.URL.Query().Get("userNumber"),
	}
	if from := r.URL.Query().Get("fromDate"); from != "" {
		t, err := parseDate(from)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid fromDate")
			return
		}
		filter.FromDate = t
	}
	if to := r.URL.Query().Get("toDate"); to != "" {
		t, err := parseDate(to)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid toDate")
			return
		}
		filter.ToDate = t
	}

	convos, err := h.conversations.ListByChatbot(ctx, chatbot.ID, filter)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list conversations", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch conversations")
		return
	}
	responses := make([]ConversationResponse, 0, len(convos))
	for i := range convos {
		responses = append(responses, conversationResponse(&convos[i]))
	}
	writeJSON(w, http.StatusOK, responses)
}

// Get handles GET /api/conversations/single/{convoId}.
func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	convo, err := h.conversations.GetByID(ctx, chi.URLParam(r, "convoId"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Conversation not found")
			return
		}
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to fetch conversation", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch conversation")
		return
	}

	// The conversation must belong to one of the company's chatbots.
	chatbot, err := h.chatbots.GetByID(ctx, convo.ChatbotID)
	if err != nil || chatbot.CompanyID != auth.CompanyIDFromContext(ctx) {
		writeError(w, http.StatusNotFound, "Conversation not found")
		return
	}

	writeJSON(w, http.StatusOK, conversationResponse(convo))
}

// parseDate accepts RFC 3339 timestamps and bare dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
