package mocks

import (
	fs "io/fs"

	mock "github.com/stretchr/testify/mock"
)

// MockFileSystemAdapter is a mock type for the FileSystemAdapter type
type MockFileSystemAdapter struct {
	mock.Mock
}

// ReadFile provides a mock function with given fields: path
func (_m *MockFileSystemAdapter) ReadFile(path string) ([]byte, error) {
	ret := _m.Called(path)

	if len(ret) == 0 {
		panic("no return value specified for ReadFile")
	}

	var r0 []byte
	var r1 error
	if rf, ok := ret.Get(0).(func(string) ([]byte, error)); ok {
		return rf(path)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// Stat provides a mock function with given fields: path
func (_m *MockFileSystemAdapter) Stat(path string) (fs.FileInfo, error) {
	ret := _m.Called(path)

	if len(ret) == 0 {
		panic("no return value specified for Stat")
	}

	var r0 fs.FileInfo
	var r1 error
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(fs.FileInfo)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// UserHomeDir provides a mock function with no fields
func (_m *MockFileSystemAdapter) UserHomeDir() (string, error) {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for UserHomeDir")
	}

	return ret.String(0), ret.Error(1)
}

// NewMockFileSystemAdapter creates a new instance of MockFileSystemAdapter. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockFileSystemAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFileSystemAdapter {
	mock := &MockFileSystemAdapter{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
