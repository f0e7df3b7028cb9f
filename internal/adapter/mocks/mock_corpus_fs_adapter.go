// Package mocks provides testify mocks for the adapter interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"gooze.dev/pkg/fuzzmut/internal/adapter"
	model "gooze.dev/pkg/fuzzmut/internal/model"
)

// MockCorpusFSAdapter is a mock type for the CorpusFSAdapter type.
type MockCorpusFSAdapter struct {
	mock.Mock
}

// Get provides a mock function with given fields: ctx, paths, exclude.
func (_m *MockCorpusFSAdapter) Get(ctx context.Context, paths []model.Path, exclude ...string) ([]model.File, error) {
	ret := _m.Called(ctx, paths, exclude)

	if len(ret) == 0 {
		panic("no return value specified for Get")
	}

	var r0 []model.File
	if rf, ok := ret.Get(0).(func(context.Context, []model.Path, ...string) []model.File); ok {
		r0 = rf(ctx, paths, exclude...)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.File)
	}

	return r0, ret.Error(1)
}

// Walk provides a mock function with given fields: root, recursive, fn.
func (_m *MockCorpusFSAdapter) Walk(root model.Path, recursive bool, fn adapter.FilepathWalkFunc) error {
	ret := _m.Called(root, recursive, fn)

	if len(ret) == 0 {
		panic("no return value specified for Walk")
	}

	return ret.Error(0)
}

// ReadFile provides a mock function with given fields: ctx, path.
func (_m *MockCorpusFSAdapter) ReadFile(ctx context.Context, path model.Path) ([]byte, error) {
	ret := _m.Called(ctx, path)

	if len(ret) == 0 {
		panic("no return value specified for ReadFile")
	}

	var r0 []byte
	if rf, ok := ret.Get(0).(func(context.Context, model.Path) []byte); ok {
		r0 = rf(ctx, path)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}

	return r0, ret.Error(1)
}

// HashFile provides a mock function with given fields: path.
func (_m *MockCorpusFSAdapter) HashFile(path model.Path) (string, error) {
	ret := _m.Called(path)

	if len(ret) == 0 {
		panic("no return value specified for HashFile")
	}

	return ret.String(0), ret.Error(1)
}

// WriteFile provides a mock function with given fields: ctx, path, content.
func (_m *MockCorpusFSAdapter) WriteFile(ctx context.Context, path model.Path, content []byte) error {
	ret := _m.Called(ctx, path, content)

	if len(ret) == 0 {
		panic("no return value specified for WriteFile")
	}

	if rf, ok := ret.Get(0).(func(context.Context, model.Path, []byte) error); ok {
		return rf(ctx, path, content)
	}

	return ret.Error(0)
}

// JoinPath provides a mock function with given fields: elem.
func (_m *MockCorpusFSAdapter) JoinPath(elem ...string) model.Path {
	ret := _m.Called(elem)

	if len(ret) == 0 {
		panic("no return value specified for JoinPath")
	}

	if rf, ok := ret.Get(0).(func(...string) model.Path); ok {
		return rf(elem...)
	}

	return ret.Get(0).(model.Path)
}

// NewMockCorpusFSAdapter creates a new instance of MockCorpusFSAdapter. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockCorpusFSAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCorpusFSAdapter {
	m := &MockCorpusFSAdapter{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
