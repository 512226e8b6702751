package storage

import (
	"context"
	"testing"
)

func TestUsageRepo_RecordMessage(t *testing.T) {
	db := newTestDB(t)
	company := createTestCompany(t, db, "company-1")
	bot := createTestChatbot(t, db, "bot-1", company.ID)
	repo := NewUsageRepo(db)

	// Two messages from one user, one from another
	for _, user := range []string{"111", "111", "222"} {
		if err := repo.RecordMessage(context.Background(), bot.ID, company.ID, user); err != nil {
			t.Fatalf("RecordMessage() error = %v", err)
		}
	}

	usage, err := repo.GetByChatbot(context.Background(), bot.ID)
	if err != nil {
		t.Fatalf("GetByChatbot() error = %v", err)
	}
	if usage.TotalMessages != 3 {
		t.Errorf("TotalMessages = %d, want 3", usage.TotalMessages)
	}
	if usage.UniqueUsers != 2 {
		t.Errorf("UniqueUsers = %d, want 2", usage.UniqueUsers)
	}
	if usage.LastReset.IsZero() {
		t.Error("expected last_reset to be set")
	}
}

func TestUsageRepo_GetByChatbot_NoTraffic(t *testing.T) {
	db := newTestDB(t)
	repo := NewUsageRepo(db)

	usage, err := repo.GetByChatbot(context.Background(), "quiet-bot")
	if err != nil {
		t.Fatalf("GetByChatbot() error = %v", err)
	}
	if usage.TotalMessages != 0 || usage.UniqueUsers != 0 {
		t.Errorf("expected zero counters, got %+v", usage)
	}
}

func TestUsageRepo_GetByCompany(t *testing.T) {
	db := newTestDB(t)
	company := createTestCompany(t, db, "company-1")
	botA := createTestChatbot(t, db, "bot-a", company.ID)
	botB := createTestChatbot(t, db, "bot-b", company.ID)
	repo := NewUsageRepo(db)

	// User 111 talks to both chatbots and must be counted once
	records := []struct{ botID, user string }{
		{botA.ID, "111"},
		{botA.ID, "222"},
		{botB.ID, "111"},
	}
	for _, rec := range records {
		if err := repo.RecordMessage(context.Background(), rec.botID, company.ID, rec.user); err != nil {
			t.Fatalf("RecordMessage() error = %v", err)
		}
	}

	usage, err := repo.GetByCompany(context.Background(), company.ID)
	if err != nil {
		t.Fatalf("GetByCompany() error = %v", err)
	}
	if usage.TotalMessages != 3 {
		t.Errorf("TotalMessages = %d, want 3", usage.TotalMessages)
	}
	if usage.UniqueUsers != 2 {
		t.Errorf("UniqueUsers = %d, want 2", usage.UniqueUsers)
	}
}
