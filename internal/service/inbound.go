package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_inbound_service.go -package=mocks -mock_names=InboundService=MockInboundService supaagent/internal/service InboundService

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"supaagent/internal/contextutil"
	"supaagent/internal/rag"
	"supaagent/internal/storage"
	"supaagent/internal/whatsapp"
)

const (
	// chatbotNotFoundReply is sent when no chatbot owns the receiving number.
	chatbotNotFoundReply = "❌ Chatbot not found."
	// pipelineErrorReply is sent when answering fails.
	pipelineErrorReply = "⚠️ Sorry, I couldn't process that right now."
)

// InboundService handles user messages arriving over WhatsApp.
type InboundService interface {
	// HandleIncoming answers one inbound text message. The user always gets
	// a reply; failures of conversation logging and usage tracking are
	// swallowed so the webhook can acknowledge the delivery.
	HandleIncoming(ctx context.Context, msg whatsapp.IncomingText) error
}

// inboundService implements InboundService.
type inboundService struct {
	chatbots      storage.ChatbotStore
	engine        rag.Engine
	sender        whatsapp.Sender
	conversations storage.ConversationStore
	usage         storage.UsageStore
}

// NewInboundService creates the inbound message service.
func NewInboundService(
	chatbots storage.ChatbotStore,
	engine rag.Engine,
	sender whatsapp.Sender,
	conversations storage.ConversationStore,
	usage storage.UsageStore,
) InboundService {
	return &inboundService{
		chatbots:      chatbots,
		engine:        engine,
		sender:        sender,
		conversations: conversations,
		usage:         usage,
	}
}

// HandleIncoming answers one inbound text message.
func (s *inboundService) HandleIncoming(ctx context.Context, msg whatsapp.IncomingText) error {
	logger := contextutil.LoggerFromContext(ctx)

	chatbot, err := s.chatbots.GetByPhoneNumberID(ctx, msg.PhoneNumberID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			logger.WarnContext(ctx, "no chatbot for phone number", "phone_number_id", msg.PhoneNumberID)
			s.reply(ctx, msg, chatbotNotFoundReply)
			return nil
		}
		return WrapError(err, "failed to look up chatbot")
	}

	result, err := s.engine.Answer(ctx, rag.QueryRequest{
		ChatbotID: chatbot.ID,
		Question:  msg.Body,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to answer question", "chatbot_id", chatbot.ID, "error", err)
		result = rag.QueryResult{Answer: pipelineErrorReply}
	}

	s.reply(ctx, msg, result.Answer)

	sourceDocs := make([]string, 0, len(result.Sources))
	for _, src := range result.Sources {
		sourceDocs = append(sourceDocs, src.ID)
	}
	convo := &storage.Conversation{
		ID:         uuid.New().String(),
		ChatbotID:  chatbot.ID,
		UserNumber: msg.From,
		Question:   msg.Body,
		Answer:     result.Answer,
		Confidence: result.Confidence,
		SourceDocs: sourceDocs,
	}
	if err := s.conversations.Create(ctx, convo); err != nil {
		logger.ErrorContext(ctx, "failed to log conversation", "chatbot_id", chatbot.ID, "error", err)
	}

	if err := s.usage.RecordMessage(ctx, chatbot.ID, chatbot.CompanyID, msg.From); err != nil {
		logger.ErrorContext(ctx, "failed to record usage", "chatbot_id", chatbot.ID, "error", err)
	}

	return nil
}

// reply sends a message back to the user. Send failures are logged, not
// propagated: Meta retries the whole webhook delivery on error responses,
// which would answer the user twice.
func (s *inboundService) reply(ctx context.Context, msg whatsapp.IncomingText, body string) {
	if err := s.sender.SendText(ctx, msg.PhoneNumberID, msg.From, body); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to send reply",
			"phone_number_id", msg.PhoneNumberID,
			"error", err,
		)
	}
}
