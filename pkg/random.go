package pkg

import (
	"fmt"
	"math/rand/v2"

	"fortio.org/safecast"
)

// RandomSource is a seeded PCG stream exposing inclusive uniform draws.
// It is not safe for concurrent use.
type RandomSource struct {
	seed uint64
	rng  *rand.Rand
}

// NewRandomSource returns a deterministic stream for seed. Every seed,
// including 0, selects its own stream.
func NewRandomSource(seed uint64) *RandomSource {
	return &RandomSource{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Seed returns the seed the stream was built from.
func (r *RandomSource) Seed() uint64 {
	return r.seed
}

// Uniform returns an integer in [lower, upper]. When upper <= lower it
// returns lower without consuming the stream.
func (r *RandomSource) Uniform(lower, upper int) int {
	if upper <= lower {
		return lower
	}

	return lower + int(r.rng.Uint64N(uint64(upper-lower)+1))
}

// DeriveSeed mixes a parent seed and a stream id into an independent seed
// using the SplitMix64 finalizer.
func DeriveSeed(parent uint64, stream int) (uint64, error) {
	id, err := safecast.Conv[uint64](stream)
	if err != nil {
		return 0, fmt.Errorf("invalid stream id %d: %w", stream, err)
	}

	x := parent ^ (id + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return x, nil
}
