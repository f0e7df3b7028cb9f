// Package mutagens implements the mutation primitives: byte edits, line
// edits, the fusion splicer and the tree grammar model.
//
// Every primitive reads its input without modifying it and returns a newly
// allocated, null-terminated result. Random choices are drawn from the
// injected model.RandomSource in a fixed order so a seeded stream always
// reproduces the same output.
package mutagens

import (
	m "gooze.dev/pkg/fuzzmut/internal/model"
)

const (
	// maxRepeatBound caps the doubling upper bound of the repetition draw.
	maxRepeatBound = 131072
	// signedByteMax is the modulus used by increment and decrement.
	signedByteMax = 127
)

// terminated allocates size payload bytes plus a zero terminator.
func terminated(size int) []byte {
	return make([]byte, size+1)
}

// terminate copies parts into a fresh null-terminated buffer.
func terminate(parts ...[]byte) []byte {
	size := 0
	for _, p := range parts {
		size += len(p)
	}

	out := terminated(size)
	offset := 0

	for _, p := range parts {
		offset += copy(out[offset:], p)
	}

	return out
}

// pickIndex draws in [0, size-minSeed], shifts by minSeed and clamps into
// [0, size-1]. The upper boundary is therefore drawn twice as often as the
// others; results are pinned to this scheme.
func pickIndex(rng m.RandomSource, size, minSeed int) int {
	idx := rng.Uniform(0, size-minSeed) + minSeed

	return clamp(idx, 0, size-1)
}

func clamp(v, lower, upper int) int {
	if v < lower {
		return lower
	}

	if v > upper {
		return upper
	}

	return v
}

// RepetitionLength doubles an upper bound from 2 while a ternary coin comes
// up nonzero, then draws uniformly below it. The result is at least 1.
func RepetitionLength(rng m.RandomSource) int {
	bound := 2
	for bound < maxRepeatBound && rng.Uniform(0, 2) != 0 {
		bound *= 2
	}

	return rng.Uniform(0, bound) + 1
}

// validateBytes checks the preconditions shared by all byte primitives.
func validateBytes(data []byte, minSeed int) error {
	if data == nil {
		return m.NewUnexpectedError("input is nil")
	}

	if len(data) < 1 {
		return m.NewUsageError("input must hold at least 1 byte, got %d", len(data))
	}

	if minSeed < 0 || minSeed > len(data)-1 {
		return m.NewIndexOutOfRangeError("seed index floor %d outside [0, %d]", minSeed, len(data)-1)
	}

	return nil
}
