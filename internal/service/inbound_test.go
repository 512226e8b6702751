package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	rag_mocks "supaagent/internal/rag/mocks"
	"supaagent/internal/service"
	"supaagent/internal/storage"
	storage_mocks "supaagent/internal/storage/mocks"
	"supaagent/internal/whatsapp"
	whatsapp_mocks "supaagent/internal/whatsapp/mocks"

	"supaagent/internal/rag"

	"go.uber.org/mock/gomock"
)

func init() {
	// Suppress service-layer logs during tests
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type inboundMocks struct {
	chatbots      *storage_mocks.MockChatbotStore
	engine        *rag_mocks.MockEngine
	sender        *whatsapp_mocks.MockSender
	conversations *storage_mocks.MockConversationStore
	usage         *storage_mocks.MockUsageStore
}

func newInboundService(ctrl *gomock.Controller) (service.InboundService, *inboundMocks) {
	m := &inboundMocks{
		chatbots:      storage_mocks.NewMockChatbotStore(ctrl),
		engine:        rag_mocks.NewMockEngine(ctrl),
		sender:        whatsapp_mocks.NewMockSender(ctrl),
		conversations: storage_mocks.NewMockConversationStore(ctrl),
		usage:         storage_mocks.NewMockUsageStore(ctrl),
	}
	svc := service.NewInboundService(m.chatbots, m.engine, m.sender, m.conversations, m.usage)
	return svc, m
}

func incoming() whatsapp.IncomingText {
	return whatsapp.IncomingText{
		PhoneNumberID: "phone-1",
		From:          "15557770000",
		Body:          "What are your opening hours?",
	}
}

func TestHandleIncoming(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newInboundService(ctrl)

	chatbot := &storage.Chatbot{ID: "bot-1", CompanyID: "company-1"}
	confidence := 0.91
	m.chatbots.EXPECT().GetByPhoneNumberID(gomock.Any(), "phone-1").Return(chatbot, nil)
	m.engine.EXPECT().
		Answer(gomock.Any(), rag.QueryRequest{ChatbotID: "bot-1", Question: "What are your opening hours?"}).
		Return(rag.QueryResult{
			Answer:     "We are open 9-5 [1].",
			Confidence: &confidence,
			Sources:    []rag.Source{{ID: "chunk-1", Rank: 1, Citation: "[1]"}},
		}, nil)
	m.sender.EXPECT().
		SendText(gomock.Any(), "phone-1", "15557770000", "We are open 9-5 [1].").
		Return(nil)
	m.conversations.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, convo *storage.Conversation) error {
			if convo.ChatbotID != "bot-1" || convo.UserNumber != "15557770000" {
				t.Fatalf("unexpected conversation: %+v", convo)
			}
			if convo.Confidence == nil || *convo.Confidence != 0.91 {
				t.Fatalf("expected confidence stored, got %v", convo.Confidence)
			}
			if len(convo.SourceDocs) != 1 || convo.SourceDocs[0] != "chunk-1" {
				t.Fatalf("expected source doc IDs, got %v", convo.SourceDocs)
			}
			return nil
		})
	m.usage.EXPECT().RecordMessage(gomock.Any(), "bot-1", "company-1", "15557770000").Return(nil)

	if err := svc.HandleIncoming(context.Background(), incoming()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandleIncomingUnknownChatbot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newInboundService(ctrl)

	m.chatbots.EXPECT().GetByPhoneNumberID(gomock.Any(), "phone-1").
		Return(nil, storage.ErrNotFound)
	m.sender.EXPECT().
		SendText(gomock.Any(), "phone-1", "15557770000", "❌ Chatbot not found.").
		Return(nil)

	if err := svc.HandleIncoming(context.Background(), incoming()); err != nil {
		t.Fatalf("expected nil error for unknown chatbot, got %v", err)
	}
}

func TestHandleIncomingPipelineFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newInboundService(ctrl)

	chatbot := &storage.Chatbot{ID: "bot-1", CompanyID: "company-1"}
	m.chatbots.EXPECT().GetByPhoneNumberID(gomock.Any(), "phone-1").Return(chatbot, nil)
	m.engine.EXPECT().Answer(gomock.Any(), gomock.Any()).
		Return(rag.QueryResult{}, errors.New("llm down"))
	m.sender.EXPECT().
		SendText(gomock.Any(), "phone-1", "15557770000", "⚠️ Sorry, I couldn't process that right now.").
		Return(nil)
	m.conversations.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, convo *storage.Conversation) error {
			if convo.Answer != "⚠️ Sorry, I couldn't process that right now." {
				t.Fatalf("expected apology logged, got %q", convo.Answer)
			}
			return nil
		})
	m.usage.EXPECT().RecordMessage(gomock.Any(), "bot-1", "company-1", "15557770000").Return(nil)

	if err := svc.HandleIncoming(context.Background(), incoming()); err != nil {
		t.Fatalf("expected apology path to succeed, got %v", err)
	}
}

func TestHandleIncomingLoggingFailuresSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newInboundService(ctrl)

	chatbot := &storage.Chatbot{ID: "bot-1", CompanyID: "company-1"}
	m.chatbots.EXPECT().GetByPhoneNumberID(gomock.Any(), "phone-1").Return(chatbot, nil)
	m.engine.EXPECT().Answer(gomock.Any(), gomock.Any()).
		Return(rag.QueryResult{Answer: "hi"}, nil)
	m.sender.EXPECT().SendText(gomock.Any(), "phone-1", "15557770000", "hi").Return(nil)
	m.conversations.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(errors.New("db locked"))
	m.usage.EXPECT().RecordMessage(gomock.Any(), "bot-1", "company-1", "15557770000").
		Return(errors.New("db locked"))

	if err := svc.HandleIncoming(context.Background(), incoming()); err != nil {
		t.Fatalf("expected logging failures to be swallowed, got %v", err)
	}
}

func TestHandleIncomingSendFailureTolerated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newInboundService(ctrl)

	chatbot := &storage.Chatbot{ID: "bot-1", CompanyID: "company-1"}
	m.chatbots.EXPECT().GetByPhoneNumberID(gomock.Any(), "phone-1").Return(chatbot, nil)
	m.engine.EXPECT().Answer(gomock.Any(), gomock.Any()).
		Return(rag.QueryResult{Answer: "hi"}, nil)
	m.sender.EXPECT().SendText(gomock.Any(), "phone-1", "15557770000", "hi").
		Return(errors.New("graph api down"))
	m.conversations.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.usage.EXPECT().RecordMessage(gomock.Any(), "bot-1", "company-1", "15557770000").Return(nil)

	if err := svc.HandleIncoming(context.Background(), incoming()); err != nil {
		t.Fatalf("expected send failure to be tolerated, got %v", err)
	}
}
