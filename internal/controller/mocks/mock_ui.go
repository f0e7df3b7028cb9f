// Package mocks provides testify mocks for the controller interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"gooze.dev/pkg/fuzzmut/internal/controller"
	model "gooze.dev/pkg/fuzzmut/internal/model"
)

// MockUI is a mock type for the UI type.
type MockUI struct {
	mock.Mock
}

// Start provides a mock function with given fields: ctx, options.
func (_m *MockUI) Start(ctx context.Context, options ...controller.StartOption) error {
	ret := _m.Called(ctx, options)

	if len(ret) == 0 {
		panic("no return value specified for Start")
	}

	return ret.Error(0)
}

// Close provides a mock function with given fields: ctx.
func (_m *MockUI) Close(ctx context.Context) {
	_m.Called(ctx)
}

// DisplayStrategies provides a mock function with given fields: ctx, strategies.
func (_m *MockUI) DisplayStrategies(ctx context.Context, strategies []model.StrategyInfo) error {
	ret := _m.Called(ctx, strategies)

	if len(ret) == 0 {
		panic("no return value specified for DisplayStrategies")
	}

	return ret.Error(0)
}

// DisplayRunInfo provides a mock function with given fields: ctx, info.
func (_m *MockUI) DisplayRunInfo(ctx context.Context, info controller.RunInfo) {
	_m.Called(ctx, info)
}

// DisplayJobResult provides a mock function with given fields: ctx, report.
func (_m *MockUI) DisplayJobResult(ctx context.Context, report model.Report) {
	_m.Called(ctx, report)
}

// DisplayRunSummary provides a mock function with given fields: ctx, summaries.
func (_m *MockUI) DisplayRunSummary(ctx context.Context, summaries []model.RunSummary) error {
	ret := _m.Called(ctx, summaries)

	if len(ret) == 0 {
		panic("no return value specified for DisplayRunSummary")
	}

	return ret.Error(0)
}

// NewMockUI creates a new instance of MockUI. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	m := &MockUI{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
