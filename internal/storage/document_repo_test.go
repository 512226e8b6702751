package storage

import (
	"context"
	"errors"
	"testing"
)

func TestDocumentRepo_CreateAndGetByHash(t *testing.T) {
	db := newTestDB(t)
	company := createTestCompany(t, db, "company-1")
	bot := createTestChatbot(t, db, "bot-1", company.ID)
	repo := NewDocumentRepo(db)

	doc := &Document{
		ID:        "doc-1",
		ChatbotID: bot.ID,
		Filename:  "faq.pdf",
		Size:      1024,
		FileHash:  "abc123",
		Content:   "extracted text",
	}
	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByHash(context.Background(), bot.ID, "abc123")
	if err != nil {
		t.Fatalf("GetByHash() error = %v", err)
	}
	if got.ID != "doc-1" || got.Content != "extracted text" {
		t.Errorf("GetByHash() = %+v", got)
	}

	// Same hash under a different chatbot is not a duplicate
	if _, err := repo.GetByHash(context.Background(), "other-bot", "abc123"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for other chatbot, got %v", err)
	}
}

func TestDocumentRepo_SetProcessed(t *testing.T) {
	db := newTestDB(t)
	company := createTestCompany(t, db, "company-1")
	bot := createTestChatbot(t, db, "bot-1", company.ID)
	repo := NewDocumentRepo(db)

	doc := &Document{ID: "doc-1", ChatbotID: bot.ID, Filename: "faq.txt", FileHash: "h"}
	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.SetProcessed(context.Background(), "doc-1", 7); err != nil {
		t.Fatalf("SetProcessed() error = %v", err)
	}

	got, err := repo.GetByID(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !got.Processed || got.ChunkCount != 7 {
		t.Errorf("SetProcessed() not persisted: %+v", got)
	}

	if err := repo.SetProcessed(context.Background(), "missing", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDocumentRepo_ListAndDelete(t *testing.T) {
	db := newTestDB(t)
	company := createTestCompany(t, db, "company-1")
	bot := createTestChatbot(t, db, "bot-1", company.ID)
	repo := NewDocumentRepo(db)

	for _, id := range []string{"doc-1", "doc-2"} {
		doc := &Document{ID: id, ChatbotID: bot.ID, Filename: id + ".txt", FileHash: "hash-" + id}
		if err := repo.Create(context.Background(), doc); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	docs, err := repo.ListByChatbot(context.Background(), bot.ID)
	if err != nil {
		t.Fatalf("ListByChatbot() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("ListByChatbot() returned %d, want 2", len(docs))
	}

	if err := repo.Delete(context.Background(), "doc-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "doc-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
