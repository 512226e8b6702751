package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"supaagent/internal/auth"
	"supaagent/internal/contextutil"
	"supaagent/internal/storage"
)

// UsageHandler exposes usage counters per chatbot and per company.
type UsageHandler struct {
	chatbots storage.ChatbotStore
	usage    storage.UsageStore
}

// NewUsageHandler creates a new UsageHandler.
func NewUsageHandler(chatbots storage.ChatbotStore, usage storage.UsageStore) *UsageHandler {
	return &UsageHandler{chatbots: chatbots, usage: usage}
}

// UsageResponse reports message and user counters.
type UsageResponse struct {
	TotalMessages int        `json:"totalMessages"`
	UniqueUsers   int        `json:"uniqueUsers"`
	LastReset     *time.Time `json:"lastReset,omitempty"`
}

// ByChatbot handles GET /api/usage/chatbot/{id}.
func (h *UsageHandler) ByChatbot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chatbot := ownedChatbot(w, r, h.chatbots)
	if chatbot == nil {
		return
	}

	usage, err := h.usage.GetByChatbot(ctx, chatbot.ID)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to fetch usage", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch usage")
		return
	}

	resp := UsageResponse{
		TotalMessages: usage.TotalMessages,
		UniqueUsers:   usage.UniqueUsers,
	}
	if !usage.LastReset.IsZero() {
		resp.LastReset = &usage.LastReset
	}
	writeJSON(w, http.StatusOK, resp)
}

// ByCompany handles GET /api/usage/company/{companyId}, aggregated across
// the company's chatbots.
func (h *UsageHandler) ByCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	companyID := chi.URLParam(r, "companyId")
	if companyID != auth.CompanyIDFromContext(ctx) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	usage, err := h.usage.GetByCompany(ctx, companyID)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to fetch company usage", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch usage")
		return
	}
	writeJSON(w, http.StatusOK, UsageResponse{
		TotalMessages: usage.TotalMessages,
		UniqueUsers:   usage.UniqueUsers,
	})
}
