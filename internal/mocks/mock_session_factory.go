package mocks

import (
	domain "courier/internal/domain"
	transport "courier/pkg/transport"

	mock "github.com/stretchr/testify/mock"
)

// MockSessionFactory is a mock type for the SessionFactory type
type MockSessionFactory struct {
	mock.Mock
}

// NewSession provides a mock function with given fields: cfg
func (_m *MockSessionFactory) NewSession(cfg domain.SessionConfig) transport.Session {
	ret := _m.Called(cfg)

	if len(ret) == 0 {
		panic("no return value specified for NewSession")
	}

	var r0 transport.Session
	if rf, ok := ret.Get(0).(func(domain.SessionConfig) transport.Session); ok {
		r0 = rf(cfg)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(transport.Session)
	}

	return r0
}

// NewMockSessionFactory creates a new instance of MockSessionFactory. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockSessionFactory(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSessionFactory {
	mock := &MockSessionFactory{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
