// Code generated by MockGen. DO NOT EDIT.
// Source: supaagent/internal/whatsapp (interfaces: Sender)
//
// Generated by this command:
//
//	mockgen -destination=mocks/mock_sender.go -package=mocks supaagent/internal/whatsapp Sender
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockSender is a mock of Sender interface.
type MockSender struct {
	ctrl     *gomock.Controller
	recorder *MockSenderMockRecorder
	isgomock struct{}
}

// MockSenderMockRecorder is the mock recorder for MockSender.
type MockSenderMockRecorder struct {
	mock *MockSender
}

// NewMockSender creates a new mock instance.
func NewMockSender(ctrl *gomock.Controller) *MockSender {
	mock := &MockSender{ctrl: ctrl}
	mock.recorder = &MockSenderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSender) EXPECT() *MockSenderMockRecorder {
	return m.recorder
}

// SendText mocks base method.
func (m *MockSender) SendText(ctx context.Context, phoneNumberID, to, body string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SendText", ctx, phoneNumberID, to, body)
	ret0, _ := ret[0].(error)
	return ret0
}

// SendText indicates an expected call of SendText.
func (mr *MockSenderMockRecorder) SendText(ctx, phoneNumberID, to, body any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendText", reflect.TypeOf((*MockSender)(nil).SendText), ctx, phoneNumberID, to, body)
}
