package mocks

import (
	context "context"

	domain "courier/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// MockDefinitionLoader is a mock type for the DefinitionLoader type
type MockDefinitionLoader struct {
	mock.Mock
}

// Load provides a mock function with given fields: ctx, path
func (_m *MockDefinitionLoader) Load(ctx context.Context, path string) ([]domain.RequestDefinition, error) {
	ret := _m.Called(ctx, path)

	if len(ret) == 0 {
		panic("no return value specified for Load")
	}

	var r0 []domain.RequestDefinition
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]domain.RequestDefinition, error)); ok {
		return rf(ctx, path)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.RequestDefinition)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// NewMockDefinitionLoader creates a new instance of MockDefinitionLoader. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockDefinitionLoader(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDefinitionLoader {
	mock := &MockDefinitionLoader{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
