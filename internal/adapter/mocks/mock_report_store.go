package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	model "gooze.dev/pkg/fuzzmut/internal/model"
)

// MockReportStore is a mock type for the ReportStore type.
type MockReportStore struct {
	mock.Mock
}

// SaveManifest provides a mock function with given fields: ctx, dir, manifest.
func (_m *MockReportStore) SaveManifest(ctx context.Context, dir model.Path, manifest model.Manifest) error {
	ret := _m.Called(ctx, dir, manifest)

	if len(ret) == 0 {
		panic("no return value specified for SaveManifest")
	}

	if rf, ok := ret.Get(0).(func(context.Context, model.Path, model.Manifest) error); ok {
		return rf(ctx, dir, manifest)
	}

	return ret.Error(0)
}

// LoadManifest provides a mock function with given fields: ctx, dir.
func (_m *MockReportStore) LoadManifest(ctx context.Context, dir model.Path) (model.Manifest, error) {
	ret := _m.Called(ctx, dir)

	if len(ret) == 0 {
		panic("no return value specified for LoadManifest")
	}

	return ret.Get(0).(model.Manifest), ret.Error(1)
}

// NewMockReportStore creates a new instance of MockReportStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockReportStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockReportStore {
	m := &MockReportStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
