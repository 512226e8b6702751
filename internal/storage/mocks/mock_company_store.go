// Code generated by MockGen. DO NOT EDIT.
// Source: supaagent/internal/storage (interfaces: CompanyStore)
//
// Generated by this command:
//
//	mockgen -destination=mocks/mock_company_store.go -package=mocks supaagent/internal/storage CompanyStore
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"
	storage "supaagent/internal/storage"

	gomock "go.uber.org/mock/gomock"
)

// MockCompanyStore is a mock of CompanyStore interface.
type MockCompanyStore struct {
	ctrl     *gomock.Controller
	recorder *MockCompanyStoreMockRecorder
	isgomock struct{}
}

// MockCompanyStoreMockRecorder is the mock recorder for MockCompanyStore.
type MockCompanyStoreMockRecorder struct {
	mock *MockCompanyStore
}

// NewMockCompanyStore creates a new mock instance.
func NewMockCompanyStore(ctrl *gomock.Controller) *MockCompanyStore {
	mock := &MockCompanyStore{ctrl: ctrl}
	mock.recorder = &MockCompanyStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCompanyStore) EXPECT() *MockCompanyStoreMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockCompanyStore) Create(ctx context.Context, c *storage.Company) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, c)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockCompanyStoreMockRecorder) Create(ctx, c any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockCompanyStore)(nil).Create), ctx, c)
}

// Delete mocks base method.
func (m *MockCompanyStore) Delete(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockCompanyStoreMockRecorder) Delete(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockCompanyStore)(nil).Delete), ctx, id)
}

// GetByEmail mocks base method.
func (m *MockCompanyStore) GetByEmail(ctx context.Context, email string) (*storage.Company, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByEmail", ctx, email)
	ret0, _ := ret[0].(*storage.Company)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByEmail indicates an expected call of GetByEmail.
func (mr *MockCompanyStoreMockRecorder) GetByEmail(ctx, email any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByEmail", reflect.TypeOf((*MockCompanyStore)(nil).GetByEmail), ctx, email)
}

// GetByID mocks base method.
func (m *MockCompanyStore) GetByID(ctx context.Context, id string) (*storage.Company, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*storage.Company)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockCompanyStoreMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockCompanyStore)(nil).GetByID), ctx, id)
}

// ListAll mocks base method.
func (m *MockCompanyStore) ListAll(ctx context.Context) ([]storage.Company, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListAll", ctx)
	ret0, _ := ret[0].([]storage.Company)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListAll indicates an expected call of ListAll.
func (mr *MockCompanyStoreMockRecorder) ListAll(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListAll", reflect.TypeOf((*MockCompanyStore)(nil).ListAll), ctx)
}

// Update mocks base method.
func (m *MockCompanyStore) Update(ctx context.Context, c *storage.Company) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, c)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockCompanyStoreMockRecorder) Update(ctx, c any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockCompanyStore)(nil).Update), ctx, c)
}
