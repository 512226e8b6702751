package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_query_service.go -package=mocks -mock_names=QueryService=MockQueryService supaagent/internal/service QueryService

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"supaagent/internal/rag"
)

// QueryService answers knowledge-base queries for the dashboard API.
type QueryService interface {
	// Answer runs the retrieval pipeline for one question. Validation
	// failures are reported as *ValidationError or ErrInvalidInput;
	// embedding and generation failures as ErrExternalService.
	Answer(ctx context.Context, req rag.QueryRequest) (rag.QueryResult, error)
}

// queryService implements QueryService.
type queryService struct {
	engine rag.Engine
}

// NewQueryService creates the query service.
func NewQueryService(engine rag.Engine) QueryService {
	return &queryService{engine: engine}
}

// Answer runs the retrieval pipeline for one question.
func (s *queryService) Answer(ctx context.Context, req rag.QueryRequest) (rag.QueryResult, error) {
	if strings.TrimSpace(req.ChatbotID) == "" {
		return rag.QueryResult{}, &ValidationError{
			Field:   "chatbotId",
			Message: "cannot be empty",
		}
	}
	if strings.TrimSpace(req.Question) == "" {
		return rag.QueryResult{}, &ValidationError{
			Field:   "question",
			Message: "cannot be empty",
		}
	}

	result, err := s.engine.Answer(ctx, req)
	if err != nil {
		if errors.Is(err, rag.ErrInvalidInput) {
			return rag.QueryResult{}, ErrInvalidInput
		}
		// The engine degrades search failures internally; what propagates
		// here is an embedding or generation failure.
		return rag.QueryResult{}, fmt.Errorf("%w: %w", ErrExternalService, err)
	}
	return result, nil
}
