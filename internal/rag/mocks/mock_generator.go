// Code generated by MockGen. DO NOT EDIT.
// Source: supaagent/internal/rag (interfaces: Generator)
//
// Generated by this command:
//
//	mockgen -destination=mocks/mock_generator.go -package=mocks supaagent/internal/rag Generator
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"
	llm "supaagent/internal/llm"

	gomock "go.uber.org/mock/gomock"
)

// MockGenerator is a mock of Generator interface.
type MockGenerator struct {
	ctrl     *gomock.Controller
	recorder *MockGeneratorMockRecorder
	isgomock struct{}
}

// MockGeneratorMockRecorder is the mock recorder for MockGenerator.
type MockGeneratorMockRecorder struct {
	mock *MockGenerator
}

// NewMockGenerator creates a new mock instance.
func NewMockGenerator(ctrl *gomock.Controller) *MockGenerator {
	mock := &MockGenerator{ctrl: ctrl}
	mock.recorder = &MockGeneratorMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockGenerator) EXPECT() *MockGeneratorMockRecorder {
	return m.recorder
}

// ChatWithMessages mocks base method.
func (m *MockGenerator) ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ChatWithMessages", ctx, messages, params)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ChatWithMessages indicates an expected call of ChatWithMessages.
func (mr *MockGeneratorMockRecorder) ChatWithMessages(ctx, messages, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ChatWithMessages", reflect.TypeOf((*MockGenerator)(nil).ChatWithMessages), ctx, messages, params)
}
