// Code generated by MockGen. DO NOT EDIT.
// Source: supaagent/internal/storage (interfaces: UsageStore)
//
// Generated by this command:
//
//	mockgen -destination=mocks/mock_usage_store.go -package=mocks supaagent/internal/storage UsageStore
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"
	storage "supaagent/internal/storage"

	gomock "go.uber.org/mock/gomock"
)

// MockUsageStore is a mock of UsageStore interface.
type MockUsageStore struct {
	ctrl     *gomock.Controller
	recorder *MockUsageStoreMockRecorder
	isgomock struct{}
}

// MockUsageStoreMockRecorder is the mock recorder for MockUsageStore.
type MockUsageStoreMockRecorder struct {
	mock *MockUsageStore
}

// NewMockUsageStore creates a new mock instance.
func NewMockUsageStore(ctrl *gomock.Controller) *MockUsageStore {
	mock := &MockUsageStore{ctrl: ctrl}
	mock.recorder = &MockUsageStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockUsageStore) EXPECT() *MockUsageStoreMockRecorder {
	return m.recorder
}

// GetByChatbot mocks base method.
func (m *MockUsageStore) GetByChatbot(ctx context.Context, chatbotID string) (*storage.Usage, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByChatbot", ctx, chatbotID)
	ret0, _ := ret[0].(*storage.Usage)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByChatbot indicates an expected call of GetByChatbot.
func (mr *MockUsageStoreMockRecorder) GetByChatbot(ctx, chatbotID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByChatbot", reflect.TypeOf((*MockUsageStore)(nil).GetByChatbot), ctx, chatbotID)
}

// GetByCompany mocks base method.
func (m *MockUsageStore) GetByCompany(ctx context.Context, companyID string) (*storage.Usage, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByCompany", ctx, companyID)
	ret0, _ := ret[0].(*storage.Usage)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByCompany indicates an expected call of GetByCompany.
func (mr *MockUsageStoreMockRecorder) GetByCompany(ctx, companyID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByCompany", reflect.TypeOf((*MockUsageStore)(nil).GetByCompany), ctx, companyID)
}

// RecordMessage mocks base method.
func (m *MockUsageStore) RecordMessage(ctx context.Context, chatbotID, companyID, userNumber string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RecordMessage", ctx, chatbotID, companyID, userNumber)
	ret0, _ := ret[0].(error)
	return ret0
}

// RecordMessage indicates an expected call of RecordMessage.
func (mr *MockUsageStoreMockRecorder) RecordMessage(ctx, chatbotID, companyID, userNumber any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecordMessage", reflect.TypeOf((*MockUsageStore)(nil).RecordMessage), ctx, chatbotID, companyID, userNumber)
}
