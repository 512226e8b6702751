// Code generated by MockGen. DO NOT EDIT.
// Source: supaagent/internal/storage (interfaces: ConversationStore)
//
// Generated by this command:
//
//	mockgen -destination=mocks/mock_conversation_store.go -package=mocks supaagent/internal/storage ConversationStore
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"
	storage "supaagent/internal/storage"

	gomock "go.uber.org/mock/gomock"
)

// MockConversationStore is a mock of ConversationStore interface.
type MockConversationStore struct {
	ctrl     *gomock.Controller
	recorder *MockConversationStoreMockRecorder
	isgomock struct{}
}

// MockConversationStoreMockRecorder is the mock recorder for MockConversationStore.
type MockConversationStoreMockRecorder struct {
	mock *MockConversationStore
}

// NewMockConversationStore creates a new mock instance.
func NewMockConversationStore(ctrl *gomock.Controller) *MockConversationStore {
	mock := &MockConversationStore{ctrl: ctrl}
	mock.recorder = &MockConversationStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockConversationStore) EXPECT() *MockConversationStoreMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockConversationStore) Create(ctx context.Context, convo *storage.Conversation) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, convo)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockConversationStoreMockRecorder) Create(ctx, convo any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockConversationStore)(nil).Create), ctx, convo)
}

// GetByID mocks base method.
func (m *MockConversationStore) GetByID(ctx context.Context, id string) (*storage.Conversation, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*storage.Conversation)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockConversationStoreMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockConversationStore)(nil).GetByID), ctx, id)
}

// ListByChatbot mocks base method.
func (m *MockConversationStore) ListByChatbot(ctx context.Context, chatbotID string, filter storage.ConversationFilter) ([]storage.Conversation, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByChatbot", ctx, chatbotID, filter)
	ret0, _ := ret[0].([]storage.Conversation)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByChatbot indicates an expected call of ListByChatbot.
func (mr *MockConversationStoreMockRecorder) ListByChatbot(ctx, chatbotID, filter any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByChatbot", reflect.TypeOf((*MockConversationStore)(nil).ListByChatbot), ctx, chatbotID, filter)
}
