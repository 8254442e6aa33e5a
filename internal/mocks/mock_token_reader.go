package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

// MockTokenReader is a mock type for the TokenReader type
type MockTokenReader struct {
	mock.Mock
}

// IsInteractive provides a mock function with no fields
func (_m *MockTokenReader) IsInteractive() bool {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for IsInteractive")
	}

	return ret.Bool(0)
}

// ReadToken provides a mock function with given fields: ctx, prompt
func (_m *MockTokenReader) ReadToken(ctx context.Context, prompt string) (string, error) {
	ret := _m.Called(ctx, prompt)

	if len(ret) == 0 {
		panic("no return value specified for ReadToken")
	}

	return ret.String(0), ret.Error(1)
}

// NewMockTokenReader creates a new instance of MockTokenReader. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockTokenReader(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenReader {
	mock := &MockTokenReader{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
