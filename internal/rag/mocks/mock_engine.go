// Code generated by MockGen. DO NOT EDIT.
// Source: supaagent/internal/rag (interfaces: Engine)
//
// Generated by this command:
//
//	mockgen -destination=mocks/mock_engine.go -package=mocks supaagent/internal/rag Engine
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"
	rag "supaagent/internal/rag"

	gomock "go.uber.org/mock/gomock"
)

// MockEngine is a mock of Engine interface.
type MockEngine struct {
	ctrl     *gomock.Controller
	recorder *MockEngineMockRecorder
	isgomock struct{}
}

// MockEngineMockRecorder is the mock recorder for MockEngine.
type MockEngineMockRecorder struct {
	mock *MockEngine
}

// NewMockEngine creates a new mock instance.
func NewMockEngine(ctrl *gomock.Controller) *MockEngine {
	mock := &MockEngine{ctrl: ctrl}
	mock.recorder = &MockEngineMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockEngine) EXPECT() *MockEngineMockRecorder {
	return m.recorder
}

// Answer mocks base method.
func (m *MockEngine) Answer(ctx context.Context, req rag.QueryRequest) (rag.QueryResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Answer", ctx, req)
	ret0, _ := ret[0].(rag.QueryResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Answer indicates an expected call of Answer.
func (mr *MockEngineMockRecorder) Answer(ctx, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Answer", reflect.TypeOf((*MockEngine)(nil).Answer), ctx, req)
}
