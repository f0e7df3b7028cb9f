package mutagens

import (
	"math"
	"strconv"

	m "gooze.dev/pkg/fuzzmut/internal/model"
)

var interestingNumbers = []int64{
	0, 1, -1,
	math.MaxInt8, math.MaxInt8 + 1, math.MaxUint8, math.MaxUint8 + 1,
	math.MaxInt16, math.MaxInt16 + 1, math.MaxUint16, math.MaxUint16 + 1,
	math.MaxInt32, math.MaxInt32 + 1, math.MaxUint32, math.MaxUint32 + 1,
	math.MaxInt64, math.MinInt64,
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ScanNumbers finds maximal runs of decimal digits, with an optional leading
// minus sign, that fit in an int64.
func ScanNumbers(data []byte) []m.NumInfo {
	var nums []m.NumInfo

	for i := 0; i < len(data); {
		start := i
		if data[i] == '-' && i+1 < len(data) && isDigit(data[i+1]) {
			i++
		}

		if !isDigit(data[i]) {
			i++
			continue
		}

		for i < len(data) && isDigit(data[i]) {
			i++
		}

		value, err := strconv.ParseInt(string(data[start:i]), 10, 64)
		if err != nil {
			continue
		}

		nums = append(nums, m.NumInfo{Value: value, Offset: start, Length: i - start})
	}

	return nums
}

// MutateNumber rewrites one embedded integer token.
func MutateNumber(data []byte, rng m.RandomSource) ([]byte, error) {
	if data == nil {
		return nil, m.NewUnexpectedError("input is nil")
	}

	nums := ScanNumbers(data)
	if len(nums) == 0 {
		return nil, m.NewUsageError("input holds no decimal number")
	}

	num := nums[rng.Uniform(0, len(nums)-1)]
	value := mutateValue(num.Value, rng)

	return terminate(
		data[:num.Offset],
		strconv.AppendInt(nil, value, 10),
		data[num.Offset+num.Length:],
	), nil
}

func mutateValue(v int64, rng m.RandomSource) int64 {
	switch rng.Uniform(0, 5) {
	case 0:
		return v + 1
	case 1:
		return v - 1
	case 2:
		return 0
	case 3:
		return -v
	case 4:
		return interestingNumbers[rng.Uniform(0, len(interestingNumbers)-1)]
	default:
		return v ^ int64(rng.Uniform(0, math.MaxInt32))
	}
}
