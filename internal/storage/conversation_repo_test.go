package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConversationRepo_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	company := createTestCompany(t, db, "company-1")
	bot := createTestChatbot(t, db, "bot-1", company.ID)
	repo := NewConversationRepo(db)

	confidence := 0.91
	convo := &Conversation{
		ID:         "convo-1",
		ChatbotID:  bot.ID,
		UserNumber: "15557654321",
		Question:   "When is support open?",
		Answer:     "9-5 on weekdays.",
		Confidence: &confidence,
		SourceDocs: []string{"chunk-1", "chunk-2"},
	}
	if err := repo.Create(context.Background(), convo); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(context.Background(), "convo-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Question != convo.Question || got.Answer != convo.Answer {
		t.Errorf("GetByID() = %+v", got)
	}
	if got.Confidence == nil || *got.Confidence != 0.91 {
		t.Errorf("Confidence = %v, want 0.91", got.Confidence)
	}
	if len(got.SourceDocs) != 2 || got.SourceDocs[0] != "chunk-1" {
		t.Errorf("SourceDocs = %v", got.SourceDocs)
	}
}

func TestConversationRepo_NilConfidence(t *testing.T) {
	db := newTestDB(t)
	company := createTestCompany(t, db, "company-1")
	bot := createTestChatbot(t, db, "bot-1", company.ID)
	repo := NewConversationRepo(db)

	convo := &Conversation{
		ID:         "convo-1",
		ChatbotID:  bot.ID,
		UserNumber: "15557654321",
		Question:   "Anything?",
		Answer:     "I'm not sure.",
	}
	if err := repo.Create(context.Background(), convo); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(context.Background(), "convo-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Confidence != nil {
		t.Errorf("Confidence = %v, want nil", got.Confidence)
	}
	if got.SourceDocs == nil || len(got.SourceDocs) != 0 {
		t.Errorf("SourceDocs = %v, want empty slice", got.SourceDocs)
	}
}

func TestConversationRepo_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepo(db)

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestConversationRepo_ListByChatbot(t *testing.T) {
	db := newTestDB(t)
	company := createTestCompany(t, db, "company-1")
	bot := createTestChatbot(t, db, "bot-1", company.ID)
	other := createTestChatbot(t, db, "bot-2", company.ID)
	repo := NewConversationRepo(db)

	seed := []Conversation{
		{ID: "c1", ChatbotID: bot.ID, UserNumber: "111", Question: "q1", Answer: "a1"},
		{ID: "c2", ChatbotID: bot.ID, UserNumber: "222", Question: "q2", Answer: "a2"},
		{ID: "c3", ChatbotID: other.ID, UserNumber: "111", Question: "q3", Answer: "a3"},
	}
	for i := range seed {
		if err := repo.Create(context.Background(), &seed[i]); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	convos, err := repo.ListByChatbot(context.Background(), bot.ID, ConversationFilter{})
	if err != nil {
		t.Fatalf("ListByChatbot() error = %v", err)
	}
	if len(convos) != 2 {
		t.Fatalf("ListByChatbot() returned %d, want 2", len(convos))
	}

	convos, err = repo.ListByChatbot(context.Background(), bot.ID, ConversationFilter{UserNumber: "222"})
	if err != nil {
		t.Fatalf("ListByChatbot() error = %v", err)
	}
	if len(convos) != 1 || convos[0].ID != "c2" {
		t.Errorf("filter by user number returned %+v", convos)
	}

	// A future FromDate excludes everything
	convos, err = repo.ListByChatbot(context.Background(), bot.ID, ConversationFilter{
		FromDate: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("ListByChatbot() error = %v", err)
	}
	if len(convos) != 0 {
		t.Errorf("future FromDate returned %d conversations", len(convos))
	}
}
