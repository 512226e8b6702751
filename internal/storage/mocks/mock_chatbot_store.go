// Code generated by MockGen. DO NOT EDIT.
// Source: supaagent/internal/storage (interfaces: ChatbotStore)
//
// Generated by this command:
//
//	mockgen -destination=mocks/mock_chatbot_store.go -package=mocks supaagent/internal/storage ChatbotStore
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"
	storage "supaagent/internal/storage"

	gomock "go.uber.org/mock/gomock"
)

// MockChatbotStore is a mock of ChatbotStore interface.
type MockChatbotStore struct {
	ctrl     *gomock.Controller
	recorder *MockChatbotStoreMockRecorder
	isgomock struct{}
}

// MockChatbotStoreMockRecorder is the mock recorder for MockChatbotStore.
type MockChatbotStoreMockRecorder struct {
	mock *MockChatbotStore
}

// NewMockChatbotStore creates a new mock instance.
func NewMockChatbotStore(ctrl *gomock.Controller) *MockChatbotStore {
	mock := &MockChatbotStore{ctrl: ctrl}
	mock.recorder = &MockChatbotStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockChatbotStore) EXPECT() *MockChatbotStoreMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockChatbotStore) Create(ctx context.Context, bot *storage.Chatbot) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, bot)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockChatbotStoreMockRecorder) Create(ctx, bot any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockChatbotStore)(nil).Create), ctx, bot)
}

// Delete mocks base method.
func (m *MockChatbotStore) Delete(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockChatbotStoreMockRecorder) Delete(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockChatbotStore)(nil).Delete), ctx, id)
}

// GetByID mocks base method.
func (m *MockChatbotStore) GetByID(ctx context.Context, id string) (*storage.Chatbot, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*storage.Chatbot)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockChatbotStoreMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockChatbotStore)(nil).GetByID), ctx, id)
}

// GetByPhoneNumberID mocks base method.
func (m *MockChatbotStore) GetByPhoneNumberID(ctx context.Context, phoneNumberID string) (*storage.Chatbot, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByPhoneNumberID", ctx, phoneNumberID)
	ret0, _ := ret[0].(*storage.Chatbot)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByPhoneNumberID indicates an expected call of GetByPhoneNumberID.
func (mr *MockChatbotStoreMockRecorder) GetByPhoneNumberID(ctx, phoneNumberID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByPhoneNumberID", reflect.TypeOf((*MockChatbotStore)(nil).GetByPhoneNumberID), ctx, phoneNumberID)
}

// ListByCompany mocks base method.
func (m *MockChatbotStore) ListByCompany(ctx context.Context, companyID string) ([]storage.Chatbot, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByCompany", ctx, companyID)
	ret0, _ := ret[0].([]storage.Chatbot)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByCompany indicates an expected call of ListByCompany.
func (mr *MockChatbotStoreMockRecorder) ListByCompany(ctx, companyID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByCompany", reflect.TypeOf((*MockChatbotStore)(nil).ListByCompany), ctx, companyID)
}

// Update mocks base method.
func (m *MockChatbotStore) Update(ctx context.Context, bot *storage.Chatbot) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, bot)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockChatbotStoreMockRecorder) Update(ctx, bot any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockChatbotStore)(nil).Update), ctx, bot)
}

// UpdatePersona mocks base method.
func (m *MockChatbotStore) UpdatePersona(ctx context.Context, id, persona string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdatePersona", ctx, id, persona)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdatePersona indicates an expected call of UpdatePersona.
func (mr *MockChatbotStoreMockRecorder) UpdatePersona(ctx, id, persona any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdatePersona", reflect.TypeOf((*MockChatbotStore)(nil).UpdatePersona), ctx, id, persona)
}
