package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "gooze.dev/pkg/fuzzmut/internal/model"
	"gooze.dev/pkg/fuzzmut/pkg"
)

type errSpill[T any] struct {
	err error
}

func (e errSpill[T]) Len() uint64                                    { return 0 }
func (e errSpill[T]) Path() string                                   { return "" }
func (e errSpill[T]) Append(_ T) error                               { return nil }
func (e errSpill[T]) AppendBatch(_ []T) error                        { return nil }
func (e errSpill[T]) Get(_ uint64) (T, error)                        { var zero T; return zero, e.err }
func (e errSpill[T]) Range(_ func(index uint64, item T) error) error { return e.err }
func (e errSpill[T]) Close() error                                   { return nil }
func (e errSpill[T]) Remove() error                                  { return nil }

func TestCollectReports_SortsByInputStrategyIteration(t *testing.T) {
	spill, err := pkg.NewFileSpill[m.Report](t.TempDir())
	require.NoError(t, err)
	defer spill.Remove()

	require.NoError(t, spill.AppendBatch([]m.Report{
		{Input: "b", Strategy: m.StrategyByteDrop, Iteration: 0},
		{Input: "a", Strategy: m.StrategyLineSwap, Iteration: 1},
		{Input: "a", Strategy: m.StrategyByteDrop, Iteration: 1},
		{Input: "a", Strategy: m.StrategyByteDrop, Iteration: 0},
	}))

	reports, err := collectReports(spill)
	require.NoError(t, err)

	var order []string
	for _, report := range reports {
		order = append(order, string(report.Input)+"/"+string(report.Strategy)+"/"+string(rune('0'+report.Iteration)))
	}

	assert.Equal(t, []string{
		"a/byte-drop/0",
		"a/byte-drop/1",
		"a/line-swap/1",
		"b/byte-drop/0",
	}, order)
}

func TestCollectReports_RangeError(t *testing.T) {
	boom := errors.New("boom")

	_, err := collectReports(errSpill[m.Report]{err: boom})
	require.ErrorIs(t, err, boom)
}

func TestSummarizeReports(t *testing.T) {
	reports := []m.Report{
		{Strategy: m.StrategyByteDrop, Status: m.Generated, Size: 10},
		{Strategy: m.StrategyByteDrop, Status: m.Generated, Size: 5},
		{Strategy: m.StrategyLineSwap, Status: m.Skipped},
		{Strategy: m.StrategyLineSwap, Status: m.Failed},
		{Strategy: m.StrategyNumber, Status: m.Generated, Size: 99},
	}

	summaries := summarizeReports(reports, []m.Strategy{m.StrategyLineSwap, m.StrategyByteDrop, m.StrategyLineSwap})

	assert.Equal(t, []m.RunSummary{
		{Strategy: m.StrategyLineSwap, Skipped: 1, Failed: 1},
		{Strategy: m.StrategyByteDrop, Generated: 2, Bytes: 15},
	}, summaries)
}
