// Code generated by MockGen. DO NOT EDIT.
// Source: supaagent/internal/service (interfaces: InboundService)
//
// Generated by this command:
//
//	mockgen -destination=mocks/mock_inbound_service.go -package=mocks -mock_names=InboundService=MockInboundService supaagent/internal/service InboundService
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"
	whatsapp "supaagent/internal/whatsapp"

	gomock "go.uber.org/mock/gomock"
)

// MockInboundService is a mock of InboundService interface.
type MockInboundService struct {
	ctrl     *gomock.Controller
	recorder *MockInboundServiceMockRecorder
	isgomock struct{}
}

// MockInboundServiceMockRecorder is the mock recorder for MockInboundService.
type MockInboundServiceMockRecorder struct {
	mock *MockInboundService
}

// NewMockInboundService creates a new mock instance.
func NewMockInboundService(ctrl *gomock.Controller) *MockInboundService {
	mock := &MockInboundService{ctrl: ctrl}
	mock.recorder = &MockInboundServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockInboundService) EXPECT() *MockInboundServiceMockRecorder {
	return m.recorder
}

// HandleIncoming mocks base method.
func (m *MockInboundService) HandleIncoming(ctx context.Context, msg whatsapp.IncomingText) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HandleIncoming", ctx, msg)
	ret0, _ := ret[0].(error)
	return ret0
}

// HandleIncoming indicates an expected call of HandleIncoming.
func (mr *MockInboundServiceMockRecorder) HandleIncoming(ctx, msg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HandleIncoming", reflect.TypeOf((*MockInboundService)(nil).HandleIncoming), ctx, msg)
}
