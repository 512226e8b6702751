package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_company_store.go -package=mocks supaagent/internal/storage CompanyStore

import (
	"context"
	"database/sql"
	"fmt"
)

// CompanyStore defines the interface for company storage operations.
type CompanyStore interface {
	// Create inserts a new company. The company.ID must be set (UUID).
	Create(ctx context.Context, c *Company) error
	// GetByID gets a company by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Company, error)
	// GetByEmail gets a company by login email. Returns ErrNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*Company, error)
	// ListAll returns all companies, newest first.
	ListAll(ctx context.Context) ([]Company, error)
	// Update updates name, domain and password hash. Returns ErrNotFound if missing.
	Update(ctx context.Context, c *Company) error
	// Delete removes a company. Returns ErrNotFound if missing.
	Delete(ctx context.Context, id string) error
}

// CompanyRepo provides methods for company operations.
// It implements the CompanyStore interface.
type CompanyRepo struct {
	db *sql.DB
}

// NewCompanyRepo creates a new CompanyRepo.
func NewCompanyRepo(db *sql.DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

const companyColumns = "id, name, domain, email, password_hash, created_at"

// Create inserts a new company.
func (r *CompanyRepo) Create(ctx context.Context, c *Company) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO companies (id, name, domain, email, password_hash) VALUES (?, ?, ?, ?, ?)",
		c.ID, c.Name, c.Domain, c.Email, c.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to insert company: %w", err)
	}
	return nil
}

// GetByID gets a company by ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*Company, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+companyColumns+" FROM companies WHERE id = ?", id)
	return scanCompany(row)
}

// GetByEmail gets a company by login email.
func (r *CompanyRepo) GetByEmail(ctx context.Context, email string) (*Company, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+companyColumns+" FROM companies WHERE email = ?", email)
	return scanCompany(row)
}

// ListAll returns all companies, newest first.
func (r *CompanyRepo) ListAll(ctx context.Context) ([]Company, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+companyColumns+" FROM companies ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var companies []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Domain, &c.Email, &c.PasswordHash, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return companies, nil
}

// Update updates name, domain and password hash of a company.
func (r *CompanyRepo) Update(ctx context.Context, c *Company) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE companies SET name = ?, domain = ?, password_hash = ? WHERE id = ?",
		c.Name, c.Domain, c.PasswordHash, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	return checkAffected(result)
}

// Delete removes a company.
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM companies WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	return checkAffected(result)
}

// scanCompany scans a single company row, mapping sql.ErrNoRows to ErrNotFound.
func scanCompany(row *sql.Row) (*Company, error) {
	var c Company
	err := row.Scan(&c.ID, &c.Name, &c.Domain, &c.Email, &c.PasswordHash, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query company: %w", err)
	}
	return &c, nil
}
