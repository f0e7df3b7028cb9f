// Package controller provides output adapters for displaying fuzzmut results.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	m "gooze.dev/pkg/fuzzmut/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeList StartMode = iota
	ModeRun
	ModeView
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithListMode sets the UI to strategy listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithRunMode sets the UI to batch generation mode.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// WithViewMode sets the UI to manifest viewing mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

// RunInfo describes a batch run before it starts.
type RunInfo struct {
	Files      int
	Jobs       int
	Parallel   int
	Seed       uint64
	ShardIndex int
	ShardCount int
}

// UI defines the interface for displaying strategies and run progress.
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	DisplayStrategies(ctx context.Context, strategies []m.StrategyInfo) error
	DisplayRunInfo(ctx context.Context, info RunInfo)
	DisplayJobResult(ctx context.Context, report m.Report)
	DisplayRunSummary(ctx context.Context, summaries []m.RunSummary) error
}

// NewUI returns the UI for cmd. Styling is enabled only on a terminal.
func NewUI(cmd *cobra.Command, tty bool) UI {
	return NewSimpleUI(cmd, tty)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
