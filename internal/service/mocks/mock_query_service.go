// Code generated by MockGen. DO NOT EDIT.
// Source: supaagent/internal/service (interfaces: QueryService)
//
// Generated by this command:
//
//	mockgen -destination=mocks/mock_query_service.go -package=mocks -mock_names=QueryService=MockQueryService supaagent/internal/service QueryService
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"
	rag "supaagent/internal/rag"

	gomock "go.uber.org/mock/gomock"
)

// MockQueryService is a mock of QueryService interface.
type MockQueryService struct {
	ctrl     *gomock.Controller
	recorder *MockQueryServiceMockRecorder
	isgomock struct{}
}

// MockQueryServiceMockRecorder is the mock recorder for MockQueryService.
type MockQueryServiceMockRecorder struct {
	mock *MockQueryService
}

// NewMockQueryService creates a new mock instance.
func NewMockQueryService(ctrl *gomock.Controller) *MockQueryService {
	mock := &MockQueryService{ctrl: ctrl}
	mock.recorder = &MockQueryServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockQueryService) EXPECT() *MockQueryServiceMockRecorder {
	return m.recorder
}

// Answer mocks base method.
func (m *MockQueryService) Answer(ctx context.Context, req rag.QueryRequest) (rag.QueryResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Answer", ctx, req)
	ret0, _ := ret[0].(rag.QueryResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Answer indicates an expected call of Answer.
func (mr *MockQueryServiceMockRecorder) Answer(ctx, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Answer", reflect.TypeOf((*MockQueryService)(nil).Answer), ctx, req)
}
