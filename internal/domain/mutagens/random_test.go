package mutagens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gooze.dev/pkg/fuzzmut/pkg"
)

type draw struct {
	lower, upper int
}

// scriptedRandom replays queued values, clamped into the requested range,
// and records every draw. An exhausted script returns the lower bound.
type scriptedRandom struct {
	values []int
	draws  []draw
}

func script(values ...int) *scriptedRandom {
	return &scriptedRandom{values: values}
}

func (s *scriptedRandom) Uniform(lower, upper int) int {
	s.draws = append(s.draws, draw{lower, upper})

	if len(s.values) == 0 {
		return lower
	}

	v := s.values[0]
	s.values = s.values[1:]

	return clamp(v, lower, upper)
}

func TestPickIndex(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		minSeed int
		drawn   int
		want    int
		upper   int
	}{
		{"floor zero", 5, 0, 2, 2, 5},
		{"shifted by floor", 5, 2, 1, 3, 3},
		{"upper boundary clamps", 4, 2, 2, 3, 2},
		{"top draw with zero floor clamps", 4, 0, 4, 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := script(tt.drawn)
			assert.Equal(t, tt.want, pickIndex(rng, tt.size, tt.minSeed))
			require.Len(t, rng.draws, 1)
			assert.Equal(t, draw{0, tt.upper}, rng.draws[0])
		})
	}
}

func TestRepetitionLength(t *testing.T) {
	t.Run("first coin zero keeps bound 2", func(t *testing.T) {
		rng := script(0, 2)
		assert.Equal(t, 3, RepetitionLength(rng))
		assert.Equal(t, []draw{{0, 2}, {0, 2}}, rng.draws)
	})

	t.Run("nonzero coins double the bound", func(t *testing.T) {
		rng := script(1, 2, 0, 5)
		assert.Equal(t, 6, RepetitionLength(rng))
		assert.Equal(t, []draw{{0, 2}, {0, 2}, {0, 2}, {0, 8}}, rng.draws)
	})

	t.Run("bound stops at cap", func(t *testing.T) {
		values := make([]int, 0, 32)
		for range 30 {
			values = append(values, 1)
		}

		rng := script(values...)
		got := RepetitionLength(rng)

		last := rng.draws[len(rng.draws)-1]
		assert.Equal(t, draw{0, maxRepeatBound}, last)
		assert.Equal(t, 2, got)
	})

	t.Run("seeded draws stay in range", func(t *testing.T) {
		rng := pkg.NewRandomSource(3)
		for range 200 {
			l := RepetitionLength(rng)
			require.GreaterOrEqual(t, l, 1)
			require.LessOrEqual(t, l, maxRepeatBound+1)
		}
	})
}
