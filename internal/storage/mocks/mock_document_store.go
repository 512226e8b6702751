// Code generated by MockGen. DO NOT EDIT.
// Source: supaagent/internal/storage (interfaces: DocumentStore)
//
// Generated by this command:
//
//	mockgen -destination=mocks/mock_document_store.go -package=mocks supaagent/internal/storage DocumentStore
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"
	storage "supaagent/internal/storage"

	gomock "go.uber.org/mock/gomock"
)

// MockDocumentStore is a mock of DocumentStore interface.
type MockDocumentStore struct {
	ctrl     *gomock.Controller
	recorder *MockDocumentStoreMockRecorder
	isgomock struct{}
}

// MockDocumentStoreMockRecorder is the mock recorder for MockDocumentStore.
type MockDocumentStoreMockRecorder struct {
	mock *MockDocumentStore
}

// NewMockDocumentStore creates a new mock instance.
func NewMockDocumentStore(ctrl *gomock.Controller) *MockDocumentStore {
	mock := &MockDocumentStore{ctrl: ctrl}
	mock.recorder = &MockDocumentStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockDocumentStore) EXPECT() *MockDocumentStoreMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockDocumentStore) Create(ctx context.Context, doc *storage.Document) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, doc)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockDocumentStoreMockRecorder) Create(ctx, doc any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockDocumentStore)(nil).Create), ctx, doc)
}

// Delete mocks base method.
func (m *MockDocumentStore) Delete(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockDocumentStoreMockRecorder) Delete(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockDocumentStore)(nil).Delete), ctx, id)
}

// GetByHash mocks base method.
func (m *MockDocumentStore) GetByHash(ctx context.Context, chatbotID, fileHash string) (*storage.Document, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByHash", ctx, chatbotID, fileHash)
	ret0, _ := ret[0].(*storage.Document)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByHash indicates an expected call of GetByHash.
func (mr *MockDocumentStoreMockRecorder) GetByHash(ctx, chatbotID, fileHash any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByHash", reflect.TypeOf((*MockDocumentStore)(nil).GetByHash), ctx, chatbotID, fileHash)
}

// GetByID mocks base method.
func (m *MockDocumentStore) GetByID(ctx context.Context, id string) (*storage.Document, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*storage.Document)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockDocumentStoreMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockDocumentStore)(nil).GetByID), ctx, id)
}

// ListByChatbot mocks base method.
func (m *MockDocumentStore) ListByChatbot(ctx context.Context, chatbotID string) ([]storage.Document, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByChatbot", ctx, chatbotID)
	ret0, _ := ret[0].([]storage.Document)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByChatbot indicates an expected call of ListByChatbot.
func (mr *MockDocumentStoreMockRecorder) ListByChatbot(ctx, chatbotID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByChatbot", reflect.TypeOf((*MockDocumentStore)(nil).ListByChatbot), ctx, chatbotID)
}

// SetProcessed mocks base method.
func (m *MockDocumentStore) SetProcessed(ctx context.Context, id string, chunkCount int) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetProcessed", ctx, id, chunkCount)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetProcessed indicates an expected call of SetProcessed.
func (mr *MockDocumentStoreMockRecorder) SetProcessed(ctx, id, chunkCount any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetProcessed", reflect.TypeOf((*MockDocumentStore)(nil).SetProcessed), ctx, id, chunkCount)
}
