package mutagens

import (
	"bytes"
	"math"

	m "gooze.dev/pkg/fuzzmut/internal/model"
)

const (
	// fusionFuel bounds the total number of suffixes visited while narrowing.
	fusionFuel = 100000
	// fusionStopOdds makes each narrowing round stop with probability 1/9.
	fusionStopOdds = 8
)

// suffixSet is a set of suffixes of src, each identified by its start offset.
// Offsets are kept in ascending order.
type suffixSet struct {
	src  []byte
	offs []int
}

func (s suffixSet) length(off int) int {
	return len(s.src) - off
}

func allSuffixes(src []byte) suffixSet {
	offs := make([]int, len(src))
	for i := range offs {
		offs[i] = i
	}

	return suffixSet{src: src, offs: offs}
}

// partitionSuffixes splits the suffixes of src into two disjoint sets with
// one coin flip per start offset.
func partitionSuffixes(src []byte, rng m.RandomSource) (suffixSet, suffixSet) {
	from := suffixSet{src: src}
	to := suffixSet{src: src}

	for off := range src {
		if rng.Uniform(0, 1) == 0 {
			from.offs = append(from.offs, off)
		} else {
			to.offs = append(to.offs, off)
		}
	}

	return from, to
}

// Fuse grafts a prefix of a onto a suffix of b. The result is not
// terminated so it can feed further fusions. When either side is empty, or
// no jump point can be chosen, a is returned unchanged.
func Fuse(a, b []byte, rng m.RandomSource) []byte {
	if len(a) == 0 || len(b) == 0 {
		return a
	}

	var from, to suffixSet
	if bytes.Equal(a, b) {
		from, to = partitionSuffixes(a, rng)
	} else {
		from, to = allSuffixes(a), allSuffixes(b)
	}

	from, to = narrowSuffixes(from, to, rng)
	if len(from.offs) == 0 || len(to.offs) == 0 {
		return a
	}

	fromOff := from.offs[rng.Uniform(0, len(from.offs)-1)]
	toOff := to.offs[rng.Uniform(0, len(to.offs)-1)]

	// from offsets always index into a, so the prefix ends at fromOff.
	out := make([]byte, 0, fromOff+to.length(toOff))
	out = append(out, a[:fromOff]...)

	return append(out, to.src[toOff:]...)
}

// narrowSuffixes repeatedly keeps the suffixes whose byte at the current
// depth occurs on both sides, so surviving pairs share longer prefixes. It
// stops when fuel runs out, on a 1-in-9 coin, or when a round would leave a
// side empty; the last non-empty sets are returned.
func narrowSuffixes(from, to suffixSet, rng m.RandomSource) (suffixSet, suffixSet) {
	fuel := fusionFuel

	for depth := 0; ; depth++ {
		if len(from.offs) == 0 || len(to.offs) == 0 || fuel <= 0 {
			return from, to
		}

		if rng.Uniform(0, fusionStopOdds) == 0 {
			return from, to
		}

		nextFrom, nextTo := narrowRound(from, to, depth)
		fuel -= len(nextFrom.offs) + len(nextTo.offs)

		if len(nextFrom.offs) == 0 || len(nextTo.offs) == 0 {
			return from, to
		}

		from, to = nextFrom, nextTo
	}
}

// narrowRound buckets both sides by the byte at depth, in ascending byte
// order, keeps the buckets present on both sides and then drops suffixes
// shorter than the shortest representative kept on the other side.
func narrowRound(from, to suffixSet, depth int) (suffixSet, suffixSet) {
	fromBuckets := bucketByByte(from, depth)
	toBuckets := bucketByByte(to, depth)

	keptFrom := suffixSet{src: from.src}
	keptTo := suffixSet{src: to.src}

	for c := range fromBuckets {
		if len(fromBuckets[c]) == 0 || len(toBuckets[c]) == 0 {
			continue
		}

		keptFrom.offs = append(keptFrom.offs, fromBuckets[c]...)
		keptTo.offs = append(keptTo.offs, toBuckets[c]...)
	}

	shortestFrom := shortestSuffix(keptFrom)
	shortestTo := shortestSuffix(keptTo)

	return dropShorter(keptFrom, shortestTo), dropShorter(keptTo, shortestFrom)
}

// bucketByByte groups the suffixes long enough to have a byte at depth.
func bucketByByte(set suffixSet, depth int) [256][]int {
	var buckets [256][]int

	for _, off := range set.offs {
		if set.length(off) <= depth {
			continue
		}

		c := set.src[off+depth]
		buckets[c] = append(buckets[c], off)
	}

	return buckets
}

func shortestSuffix(set suffixSet) int {
	shortest := math.MaxInt
	for _, off := range set.offs {
		shortest = min(shortest, set.length(off))
	}

	return shortest
}

func dropShorter(set suffixSet, minLength int) suffixSet {
	kept := suffixSet{src: set.src}
	for _, off := range set.offs {
		if set.length(off) >= minLength {
			kept.offs = append(kept.offs, off)
		}
	}

	return kept
}

func validateFusionInput(data []byte) error {
	if data == nil {
		return m.NewUnexpectedError("input is nil")
	}

	if len(data) < 1 {
		return m.NewUsageError("input must hold at least 1 byte")
	}

	return nil
}

// FuseSelf splices data with itself.
func FuseSelf(data []byte, rng m.RandomSource) ([]byte, error) {
	if err := validateFusionInput(data); err != nil {
		return nil, err
	}

	return terminate(Fuse(data, data, rng)), nil
}

// FuseHalves fuses the first half onto the second half twice and
// concatenates both results.
func FuseHalves(data []byte, rng m.RandomSource) ([]byte, error) {
	if err := validateFusionInput(data); err != nil {
		return nil, err
	}

	first, second := halves(data)
	left := Fuse(first, second, rng)
	right := Fuse(first, second, rng)

	return terminate(left, right), nil
}

// FuseDouble computes Fuse(Fuse(firstHalf, whole), secondHalf).
func FuseDouble(data []byte, rng m.RandomSource) ([]byte, error) {
	if err := validateFusionInput(data); err != nil {
		return nil, err
	}

	first, second := halves(data)

	return terminate(Fuse(Fuse(first, data, rng), second, rng)), nil
}

// FuseTriple extends FuseDouble with one more fusion against the whole input.
func FuseTriple(data []byte, rng m.RandomSource) ([]byte, error) {
	if err := validateFusionInput(data); err != nil {
		return nil, err
	}

	first, second := halves(data)
	double := Fuse(Fuse(first, data, rng), second, rng)

	return terminate(Fuse(double, data, rng)), nil
}

func halves(data []byte) ([]byte, []byte) {
	half := len(data) / 2

	return data[:half], data[half:]
}
