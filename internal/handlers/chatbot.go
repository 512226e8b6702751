package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"supaagent/internal/auth"
	"supaagent/internal/contextutil"
	"supaagent/internal/storage"
)

// ChatbotHandler handles chatbot management for the authenticated company.
type ChatbotHandler struct {
	chatbots storage.ChatbotStore
}

// NewChatbotHandler creates a new ChatbotHandler.
func NewChatbotHandler(chatbots storage.ChatbotStore) *ChatbotHandler {
	return &ChatbotHandler{chatbots: chatbots}
}

// ChatbotRequest is the payload for creating or updating a chatbot.
type ChatbotRequest struct {
	Name          string `json:"name"`
	PhoneNumberID string `json:"phoneNumberId"`
	Status        string `json:"status"`
}

// PersonaRequest is the payload for updating a chatbot's persona.
type PersonaRequest struct {
	Persona string `json:"persona"`
}

// ChatbotResponse is the public view of a chatbot.
type ChatbotResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"companyId"`
	Name          string    `json:"name"`
	PhoneNumberID string    `json:"phoneNumberId"`
	Status        string    `json:"status"`
	Persona       string    `json:"persona,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func chatbotResponse(c *storage.Chatbot) ChatbotResponse {
	return ChatbotResponse{
		ID:            c.ID,
		CompanyID:     c.CompanyID,
		Name:          c.Name,
		PhoneNumberID: c.PhoneNumberID,
		Status:        c.Status,
		Persona:       c.Persona,
		CreatedAt:     c.CreatedAt,
	}
}

// ownedChatbot loads the chatbot from the {id} URL parameter and verifies it
// belongs to the authenticated company. Writes the error response itself and
// returns nil on failure.
func ownedChatbot(w http.ResponseWriter, r *http.Request, chatbots storage.ChatbotStore) *storage.Chatbot {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	chatbot, err := chatbots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Chatbot not found")
			return nil
		}
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to fetch chatbot", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch chatbot")
		return nil
	}
	if chatbot.CompanyID != auth.CompanyIDFromContext(ctx) {
		// Hide other tenants' chatbots entirely
		writeError(w, http.StatusNotFound, "Chatbot not found")
		return nil
	}
	return chatbot
}

// Create handles POST /api/chatbots.
func (h *ChatbotHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req ChatbotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.PhoneNumberID = strings.TrimSpace(req.PhoneNumberID)
	if req.Name == "" || req.PhoneNumberID == "" {
		writeError(w, http.StatusBadRequest, "Name and phoneNumberId are required")
		return
	}

	if _, err := h.chatbots.GetByPhoneNumberID(ctx, req.PhoneNumberID); err == nil {
		writeError(w, http.StatusBadRequest, "phoneNumberId already exists")
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		logger.ErrorContext(ctx, "failed to check phone number", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create chatbot")
		return
	}

	chatbot := &storage.Chatbot{
		ID:            uuid.New().String(),
		CompanyID:     auth.CompanyIDFromContext(ctx),
		Name:          req.Name,
		PhoneNumberID: req.PhoneNumberID,
		Status:        "active",
	}
	if err := h.chatbots.Create(ctx, chatbot); err != nil {
		logger.ErrorContext(ctx, "failed to create chatbot", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create chatbot")
		return
	}

	logger.InfoContext(ctx, "chatbot created", "chatbot_id", chatbot.ID)
	writeJSON(w, http.StatusCreated, chatbotResponse(chatbot))
}

// List handles GET /api/chatbots, returning the company's chatbots.
func (h *ChatbotHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chatbots, err := h.chatbots.ListByCompany(ctx, auth.CompanyIDFromContext(ctx))
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list chatbots", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch chatbots")
		return
	}
	responses := make([]ChatbotResponse, 0, len(chatbots))
	for i := range chatbots {
		responses = append(responses, chatbotResponse(&chatbots[i]))
	}
	writeJSON(w, http.StatusOK, responses)
}

// Get handles GET /api/chatbots/{id}.
func (h *ChatbotHandler) Get(w http.ResponseWriter, r *http.Request) {
	chatbot := ownedChatbot(w, r, h.chatbots)
	if chatbot == nil {
		return
	}
	writeJSON(w, http.StatusOK, chatbotResponse(chatbot))
}

// Update handles PUT /api/chatbots/{id}.
func (h *ChatbotHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	chatbot := ownedChatbot(w, r, h.chatbots)
	if chatbot == nil {
		return
	}

	var req ChatbotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		chatbot.Name = name
	}
	if phoneNumberID := strings.TrimSpace(req.PhoneNumberID); phoneNumberID != "" {
		chatbot.PhoneNumberID = phoneNumberID
	}
	switch req.Status {
	case "":
	case "active", "inactive":
		chatbot.Status = req.Status
	default:
		writeError(w, http.StatusBadRequest, "Status must be active or inactive")
		return
	}

	if err := h.chatbots.Update(ctx, chatbot); err != nil {
		logger.ErrorContext(ctx, "failed to update chatbot", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update chatbot")
		return
	}
	writeJSON(w, http.StatusOK, chatbotResponse(chatbot))
}

// UpdatePersona handles PATCH /api/chatbots/{id}/persona.
func (h *ChatbotHandler) UpdatePersona(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chatbot := ownedChatbot(w, r, h.chatbots)
	if chatbot == nil {
		return
	}

	var req PersonaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Persona) == "" {
		writeError(w, http.StatusBadRequest, "Persona is required")
		return
	}

	if err := h.chatbots.UpdatePersona(ctx, chatbot.ID, req.Persona); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to update persona", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update persona")
		return
	}
	chatbot.Persona = req.Persona
	writeJSON(w, http.StatusOK, chatbotResponse(chatbot))
}

// Delete handles DELETE /api/chatbots/{id}.
func (h *ChatbotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chatbot := ownedChatbot(w, r, h.chatbots)
	if chatbot == nil {
		return
	}

	if err := h.chatbots.Delete(ctx, chatbot.ID); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to delete chatbot", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete chatbot")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Chatbot deleted"})
}
