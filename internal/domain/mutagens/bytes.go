package mutagens

import (
	m "gooze.dev/pkg/fuzzmut/internal/model"
)

// ByteMutator is the signature shared by all byte-level primitives.
type ByteMutator func(data []byte, rng m.RandomSource, minSeed int) ([]byte, error)

// DropByte removes one byte. The result holds n-1 payload bytes.
func DropByte(data []byte, rng m.RandomSource, minSeed int) ([]byte, error) {
	if err := validateBytes(data, minSeed); err != nil {
		return nil, err
	}

	idx := pickIndex(rng, len(data), minSeed)

	return terminate(data[:idx], data[idx+1:]), nil
}

// FlipBit XORs one bit of one byte. A bit index of 8 leaves the byte as is.
func FlipBit(data []byte, rng m.RandomSource, minSeed int) ([]byte, error) {
	if err := validateBytes(data, minSeed); err != nil {
		return nil, err
	}

	idx := pickIndex(rng, len(data), minSeed)
	bit := rng.Uniform(0, 8)

	out := terminate(data)
	out[idx] ^= byte(1 << bit)

	return out, nil
}

// InsertByte inserts one random byte after the chosen index.
func InsertByte(data []byte, rng m.RandomSource, minSeed int) ([]byte, error) {
	if err := validateBytes(data, minSeed); err != nil {
		return nil, err
	}

	idx := pickIndex(rng, len(data), minSeed)
	value := byte(rng.Uniform(0, 255))

	return terminate(data[:idx+1], []byte{value}, data[idx+1:]), nil
}

// RepeatByte replaces the chosen byte with L+1 copies of itself.
func RepeatByte(data []byte, rng m.RandomSource, minSeed int) ([]byte, error) {
	if err := validateBytes(data, minSeed); err != nil {
		return nil, err
	}

	idx := pickIndex(rng, len(data), minSeed)
	repeats := RepetitionLength(rng) + 1

	out := terminated(len(data) - 1 + repeats)
	offset := copy(out, data[:idx])

	for range repeats {
		out[offset] = data[idx]
		offset++
	}

	copy(out[offset:], data[idx+1:])

	return out, nil
}

// PermuteBytes walks from the seed floor to the end, swapping each byte with
// one at a freshly picked index. This is not a uniform permutation.
func PermuteBytes(data []byte, rng m.RandomSource, minSeed int) ([]byte, error) {
	if err := validateBytes(data, minSeed); err != nil {
		return nil, err
	}

	out := terminate(data)
	for i := minSeed; i < len(data); i++ {
		j := pickIndex(rng, len(data), minSeed)
		out[i], out[j] = out[j], out[i]
	}

	return out, nil
}

// IncrementByte adds one to a byte modulo 127.
func IncrementByte(data []byte, rng m.RandomSource, minSeed int) ([]byte, error) {
	return stepByte(data, rng, minSeed, 1)
}

// DecrementByte subtracts one from a byte modulo 127. Zero becomes 0xff.
func DecrementByte(data []byte, rng m.RandomSource, minSeed int) ([]byte, error) {
	return stepByte(data, rng, minSeed, -1)
}

func stepByte(data []byte, rng m.RandomSource, minSeed, delta int) ([]byte, error) {
	if err := validateBytes(data, minSeed); err != nil {
		return nil, err
	}

	idx := pickIndex(rng, len(data), minSeed)

	out := terminate(data)
	out[idx] = byte((int(data[idx]) + delta) % signedByteMax)

	return out, nil
}

// RandomizeByte overwrites one byte with a random value.
func RandomizeByte(data []byte, rng m.RandomSource, minSeed int) ([]byte, error) {
	if err := validateBytes(data, minSeed); err != nil {
		return nil, err
	}

	idx := pickIndex(rng, len(data), minSeed)

	out := terminate(data)
	out[idx] = byte(rng.Uniform(0, 255))

	return out, nil
}
