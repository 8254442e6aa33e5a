// Package mocks holds testify mocks of the domain and backend interfaces.
package mocks

import (
	http "net/http"

	transport "courier/pkg/transport"

	mock "github.com/stretchr/testify/mock"
)

// MockTransportService is a mock type for the TransportService type
type MockTransportService struct {
	mock.Mock
}

// CancelAllTasks provides a mock function with no fields
func (_m *MockTransportService) CancelAllTasks() {
	_m.Called()
}

// CancelTask provides a mock function with given fields: req
func (_m *MockTransportService) CancelTask(req *http.Request) {
	_m.Called(req)
}

// Execute provides a mock function with given fields: req, completion
func (_m *MockTransportService) Execute(req *http.Request, completion transport.Completion) transport.Key {
	ret := _m.Called(req, completion)

	if len(ret) == 0 {
		panic("no return value specified for Execute")
	}

	var r0 transport.Key
	if rf, ok := ret.Get(0).(func(*http.Request, transport.Completion) transport.Key); ok {
		r0 = rf(req, completion)
	} else {
		r0 = ret.Get(0).(transport.Key)
	}

	return r0
}

// NewMockTransportService creates a new instance of MockTransportService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockTransportService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransportService {
	mock := &MockTransportService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
