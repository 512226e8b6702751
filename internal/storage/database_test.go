package storage

import (
	"context"
	"database/sql"
	"testing"
)

// newTestDB opens a migrated database in a temp directory.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

// createTestCompany inserts a company for foreign key constraints.
func createTestCompany(t *testing.T, db *sql.DB, id string) *Company {
	t.Helper()

	company := &Company{
		ID:           id,
		Name:         "Test Company",
		Email:        id + "@example.com",
		PasswordHash: "hash",
	}
	if err := NewCompanyRepo(db).Create(context.Background(), company); err != nil {
		t.Fatalf("CompanyRepo.Create() error = %v", err)
	}
	return company
}

// createTestChatbot inserts a chatbot for foreign key constraints.
func createTestChatbot(t *testing.T, db *sql.DB, id, companyID string) *Chatbot {
	t.Helper()

	bot := &Chatbot{
		ID:            id,
		CompanyID:     companyID,
		Name:          "Test Bot",
		PhoneNumberID: "pn-" + id,
	}
	if err := NewChatbotRepo(db).Create(context.Background(), bot); err != nil {
		t.Fatalf("ChatbotRepo.Create() error = %v", err)
	}
	return bot
}

func TestNew(t *testing.T) {
	db := newTestDB(t)
	if err := db.Ping(); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	// Running migrations again must not fail
	if err := Migrate(db); err != nil {
		t.Errorf("second Migrate() error = %v", err)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	db := newTestDB(t)

	bot := &Chatbot{
		ID:            "bot-orphan",
		CompanyID:     "no-such-company",
		Name:          "Orphan",
		PhoneNumberID: "pn-orphan",
	}
	if err := NewChatbotRepo(db).Create(context.Background(), bot); err == nil {
		t.Error("expected foreign key violation for unknown company")
	}
}
