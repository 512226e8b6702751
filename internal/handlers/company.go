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

// CompanyHandler handles company registration, login and account management.
type CompanyHandler struct {
	companies storage.CompanyStore
	issuer    *auth.TokenIssuer
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companies storage.CompanyStore, issuer *auth.TokenIssuer) *CompanyHandler {
	return &CompanyHandler{companies: companies, issuer: issuer}
}

// RegisterRequest is the payload for company registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Domain   string `json:"domain"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the payload for company login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CompanyResponse is the public view of a company. The password hash never
// leaves the storage layer.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain,omitempty"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResponse carries the session token after registration or login.
type LoginResponse struct {
	Token   string          `json:"token"`
	Company CompanyResponse `json:"company"`
}

func companyResponse(c *storage.Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Domain:    c.Domain,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}

// Register handles POST /api/companies/register.
func (h *CompanyHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "Name, email and a password of at least 8 characters are required")
		return
	}

	if _, err := h.companies.GetByEmail(ctx, req.Email); err == nil {
		writeError(w, http.StatusBadRequest, "Email already registered")
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		logger.ErrorContext(ctx, "failed to check email", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create company")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.ErrorContext(ctx, "failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create company")
		return
	}

	company := &storage.Company{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Domain:       strings.TrimSpace(req.Domain),
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.companies.Create(ctx, company); err != nil {
		logger.ErrorContext(ctx, "failed to create company", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create company")
		return
	}

	token, err := h.issuer.Generate(company.ID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create company")
		return
	}

	logger.InfoContext(ctx, "company registered", "company_id", company.ID)
	writeJSON(w, http.StatusCreated, LoginResponse{Token: token, Company: companyResponse(company)})
}

// Login handles POST /api/companies/login.
func (h *CompanyHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	company, err := h.companies.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		logger.ErrorContext(ctx, "failed to look up company", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	if !auth.CheckPassword(company.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.issuer.Generate(company.ID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, Company: companyResponse(company)})
}

// Get handles GET /api/companies/{id}. A company can only read itself.
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if auth.CompanyIDFromContext(ctx) != id {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	company, err := h.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Company not found")
			return
		}
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to fetch company", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch company")
		return
	}
	writeJSON(w, http.StatusOK, companyResponse(company))
}

// UpdateRequest is the payload for company updates. Blank fields keep their
// current value.
type UpdateRequest struct {
	Name     string `json:"name"`
	Domain   string `json:"domain"`
	Password string `json:"password"`
}

// Update handles PUT /api/companies/{id}.
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	id := chi.URLParam(r, "id")

	if auth.CompanyIDFromContext(ctx) != id {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	company, err := h.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Company not found")
			return
		}
		logger.ErrorContext(ctx, "failed to fetch company", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update company")
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		company.Name = name
	}
	if domain := strings.TrimSpace(req.Domain); domain != "" {
		company.Domain = domain
	}
	if req.Password != "" {
		if len(req.Password) < 8 {
			writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			logger.ErrorContext(ctx, "failed to hash password", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update company")
			return
		}
		company.PasswordHash = hash
	}

	if err := h.companies.Update(ctx, company); err != nil {
		logger.ErrorContext(ctx, "failed to update company", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update company")
		return
	}
	writeJSON(w, http.StatusOK, companyResponse(company))
}

// Delete handles DELETE /api/companies/{id}.
func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if auth.CompanyIDFromContext(ctx) != id {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	if err := h.companies.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Company not found")
			return
		}
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to delete company", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete company")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Company deleted"})
}
