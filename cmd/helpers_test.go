package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	domainmocks "gooze.dev/pkg/fuzzmut/internal/domain/mocks"
)

// useTempLog points the rotating log file into a test directory.
func useTempLog(t *testing.T) {
	t.Helper()

	previous := viper.Get(logFilenameKey)
	viper.Set(logFilenameKey, filepath.Join(t.TempDir(), "fuzzmut.log"))
	t.Cleanup(func() { viper.Set(logFilenameKey, previous) })
}

// withMockWorkflow swaps the shared workflow for a mock for the duration of t.
func withMockWorkflow(t *testing.T) *domainmocks.MockWorkflow {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow
	t.Cleanup(func() { workflow = originalWorkflow })

	return mockWorkflow
}

func newTestCmd(t *testing.T, sub *cobra.Command, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	useTempLog(t)

	out := &bytes.Buffer{}

	cmd := newRootCmd()
	cmd.AddCommand(sub)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	return cmd, out
}
