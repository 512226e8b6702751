// Code generated by MockGen. DO NOT EDIT.
// Source: supaagent/internal/storage (interfaces: ChunkStore)
//
// Generated by this command:
//
//	mockgen -destination=mocks/mock_chunk_store.go -package=mocks supaagent/internal/storage ChunkStore
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"
	storage "supaagent/internal/storage"

	gomock "go.uber.org/mock/gomock"
)

// MockChunkStore is a mock of ChunkStore interface.
type MockChunkStore struct {
	ctrl     *gomock.Controller
	recorder *MockChunkStoreMockRecorder
	isgomock struct{}
}

// MockChunkStoreMockRecorder is the mock recorder for MockChunkStore.
type MockChunkStoreMockRecorder struct {
	mock *MockChunkStore
}

// NewMockChunkStore creates a new mock instance.
func NewMockChunkStore(ctrl *gomock.Controller) *MockChunkStore {
	mock := &MockChunkStore{ctrl: ctrl}
	mock.recorder = &MockChunkStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockChunkStore) EXPECT() *MockChunkStoreMockRecorder {
	return m.recorder
}

// DeleteByDocument mocks base method.
func (m *MockChunkStore) DeleteByDocument(ctx context.Context, documentID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteByDocument", ctx, documentID)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteByDocument indicates an expected call of DeleteByDocument.
func (mr *MockChunkStoreMockRecorder) DeleteByDocument(ctx, documentID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteByDocument", reflect.TypeOf((*MockChunkStore)(nil).DeleteByDocument), ctx, documentID)
}

// GetByID mocks base method.
func (m *MockChunkStore) GetByID(ctx context.Context, id string) (*storage.ChunkRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*storage.ChunkRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockChunkStoreMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockChunkStore)(nil).GetByID), ctx, id)
}

// Insert mocks base method.
func (m *MockChunkStore) Insert(ctx context.Context, chunk *storage.ChunkRecord) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Insert", ctx, chunk)
	ret0, _ := ret[0].(error)
	return ret0
}

// Insert indicates an expected call of Insert.
func (mr *MockChunkStoreMockRecorder) Insert(ctx, chunk any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Insert", reflect.TypeOf((*MockChunkStore)(nil).Insert), ctx, chunk)
}

// ListIDsByDocument mocks base method.
func (m *MockChunkStore) ListIDsByDocument(ctx context.Context, documentID string) ([]string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListIDsByDocument", ctx, documentID)
	ret0, _ := ret[0].([]string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListIDsByDocument indicates an expected call of ListIDsByDocument.
func (mr *MockChunkStoreMockRecorder) ListIDsByDocument(ctx, documentID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListIDsByDocument", reflect.TypeOf((*MockChunkStore)(nil).ListIDsByDocument), ctx, documentID)
}
