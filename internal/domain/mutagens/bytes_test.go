package mutagens

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "gooze.dev/pkg/fuzzmut/internal/model"
	"gooze.dev/pkg/fuzzmut/pkg"
)

var byteMutators = map[string]ByteMutator{
	"drop":      DropByte,
	"flip":      FlipBit,
	"insert":    InsertByte,
	"repeat":    RepeatByte,
	"permute":   PermuteBytes,
	"increment": IncrementByte,
	"decrement": DecrementByte,
	"randomize": RandomizeByte,
}

func TestDropByte_Example(t *testing.T) {
	input := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	rng := script(2)

	got, err := DropByte(input, rng, 0)
	require.NoError(t, err)

	if diff := cmp.Diff([]byte{0x01, 0x02, 0x04, 0x05, 0x00}, got); diff != "" {
		t.Fatalf("DropByte mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05}, input, "input must not change")
}

func TestByteMutators_SizeLaws(t *testing.T) {
	fixed := map[string]int{
		"drop":      0,
		"flip":      1,
		"insert":    2,
		"permute":   1,
		"increment": 1,
		"decrement": 1,
		"randomize": 1,
	}

	for _, n := range []int{1, 2, 7, 64} {
		input := bytes.Repeat([]byte{'x'}, n)

		for name, delta := range fixed {
			t.Run(name, func(t *testing.T) {
				got, err := byteMutators[name](input, pkg.NewRandomSource(uint64(n)), 0)
				require.NoError(t, err)
				assert.Len(t, got, n+delta)
				assert.Equal(t, byte(0), got[len(got)-1], "result must be null-terminated")
			})
		}
	}
}

func TestByteMutators_Errors(t *testing.T) {
	for name, mutate := range byteMutators {
		t.Run(name+" empty input", func(t *testing.T) {
			_, err := mutate([]byte{}, script(), 0)
			require.ErrorIs(t, err, m.ErrUsage)
		})

		t.Run(name+" nil input", func(t *testing.T) {
			_, err := mutate(nil, script(), 0)
			require.ErrorIs(t, err, m.ErrUnexpected)
		})

		t.Run(name+" floor past end", func(t *testing.T) {
			_, err := mutate([]byte("abc"), script(), 3)
			require.ErrorIs(t, err, m.ErrIndexOutOfRange)
		})

		t.Run(name+" negative floor", func(t *testing.T) {
			_, err := mutate([]byte("abc"), script(), -1)
			require.ErrorIs(t, err, m.ErrIndexOutOfRange)
		})
	}
}

func TestByteMutators_ErrorCarriesCode(t *testing.T) {
	_, err := FlipBit([]byte{}, script(), 0)

	var mutationErr *m.MutationError
	require.ErrorAs(t, err, &mutationErr)
	assert.Equal(t, m.CodeUsage, mutationErr.Code)
	assert.NotEmpty(t, mutationErr.Reason)
}

func TestByteMutators_Deterministic(t *testing.T) {
	input := []byte("the quick brown fox jumps over the lazy dog")

	for name, mutate := range byteMutators {
		t.Run(name, func(t *testing.T) {
			first, err := mutate(input, pkg.NewRandomSource(77), 3)
			require.NoError(t, err)

			second, err := mutate(input, pkg.NewRandomSource(77), 3)
			require.NoError(t, err)

			assert.Equal(t, first, second)
		})
	}
}

func TestByteMutators_NeverModifyInput(t *testing.T) {
	input := []byte{0x00, 0x7f, 0x80, 0xff, '\n'}
	original := bytes.Clone(input)

	for name, mutate := range byteMutators {
		t.Run(name, func(t *testing.T) {
			for seed := range uint64(20) {
				_, err := mutate(input, pkg.NewRandomSource(seed), 0)
				require.NoError(t, err)
			}

			assert.Equal(t, original, input)
		})
	}
}

func TestFlipBit(t *testing.T) {
	t.Run("flips chosen bit", func(t *testing.T) {
		got, err := FlipBit([]byte{0x00, 0x00}, script(1, 3), 0)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x00, 0x08, 0x00}, got)
	})

	t.Run("bit 8 is a no-op", func(t *testing.T) {
		got, err := FlipBit([]byte{0x5a}, script(0, 8), 0)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x5a, 0x00}, got)
	})
}

func TestInsertByte(t *testing.T) {
	got, err := InsertByte([]byte{0x01, 0x02}, script(0, 0xaa), 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0xaa, 0x02, 0x00}, got)
}

func TestInsertByte_AfterLastByte(t *testing.T) {
	got, err := InsertByte([]byte{0x01, 0x02}, script(2, 0x33), 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x33, 0x00}, got)
}

func TestRepeatByte(t *testing.T) {
	// index 1, coin 0 keeps bound 2, draw 2 => L = 3 => 4 copies.
	got, err := RepeatByte([]byte("abc"), script(1, 0, 2), 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("abbbbc\x00"), got)
	assert.Len(t, got, 3+3+1)
}

func TestRepeatByte_SeededLength(t *testing.T) {
	input := []byte("xyz")

	for seed := range uint64(25) {
		got, err := RepeatByte(input, pkg.NewRandomSource(seed), 0)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(got), len(input)+2)
		require.Equal(t, byte(0), got[len(got)-1])
	}
}

func TestPermuteBytes(t *testing.T) {
	t.Run("swap walk", func(t *testing.T) {
		// i=0 swaps with 2, i=1 swaps with 0, i=2 swaps with 2.
		got, err := PermuteBytes([]byte("abc"), script(2, 0, 2), 0)
		require.NoError(t, err)
		assert.Equal(t, []byte("bca\x00"), got)
	})

	t.Run("floor keeps prefix", func(t *testing.T) {
		rng := pkg.NewRandomSource(9)
		got, err := PermuteBytes([]byte("abcdef"), rng, 3)
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), got[:3])
		assert.ElementsMatch(t, []byte("def"), got[3:6])
	})

	t.Run("walk is not uniform", func(t *testing.T) {
		const samples = 30000

		rng := pkg.NewRandomSource(2024)
		counts := map[string]int{}

		for range samples {
			got, err := PermuteBytes([]byte("abc"), rng, 0)
			require.NoError(t, err)
			counts[string(got[:3])]++
		}

		require.Len(t, counts, 6)
		// Identity occurs with probability 1/8, "bac" with 3/16.
		assert.Less(t, counts["abc"], samples*145/1000)
		assert.Greater(t, counts["bac"], samples*175/1000)
	})
}

func TestIncrementDecrement(t *testing.T) {
	tests := []struct {
		name   string
		mutate ByteMutator
		in     byte
		want   byte
	}{
		{"increment small", IncrementByte, 0x10, 0x11},
		{"increment wraps at signed max", IncrementByte, 126, 0},
		{"increment high byte", IncrementByte, 200, 74},
		{"decrement small", DecrementByte, 0x10, 0x0f},
		{"decrement zero", DecrementByte, 0, 0xff},
		{"decrement high byte", DecrementByte, 200, 72},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.mutate([]byte{tt.in}, script(0), 0)
			require.NoError(t, err)
			assert.Equal(t, []byte{tt.want, 0x00}, got)
		})
	}
}

func TestRandomizeByte(t *testing.T) {
	got, err := RandomizeByte([]byte{1, 2, 3}, script(1, 7), 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 7, 3, 0}, got)
}

func TestByteMutators_RespectFloor(t *testing.T) {
	input := []byte("0123456789")

	for seed := range uint64(50) {
		got, err := RandomizeByte(input, pkg.NewRandomSource(seed), 6)
		require.NoError(t, err)
		assert.Equal(t, input[:6], got[:6])
	}
}
