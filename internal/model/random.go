package model

// RandomSource is the seedable uniform integer generator owned by the host.
// Implementations are not safe for concurrent use; each worker owns its own.
type RandomSource interface {
	// Uniform returns an integer in [lower, upper], both bounds inclusive.
	Uniform(lower, upper int) int
}
