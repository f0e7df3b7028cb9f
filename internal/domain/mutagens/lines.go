package mutagens

import (
	m "gooze.dev/pkg/fuzzmut/internal/model"
)

// LineMutator is the signature shared by the line suite.
type LineMutator func(data []byte, rng m.RandomSource) ([]byte, error)

// DeleteLine removes one randomly chosen line.
func DeleteLine(data []byte, rng m.RandomSource) ([]byte, error) {
	total, err := requireLines(data, 1)
	if err != nil {
		return nil, err
	}

	line, err := LineAt(data, rng.Uniform(0, total-1), total)
	if err != nil {
		return nil, err
	}

	return terminate(data[:line.StartIndex], data[line.End():]), nil
}

// DeleteSequentialLines removes the contiguous span from a start line to an
// end line drawn independently inside the lines that follow it.
func DeleteSequentialLines(data []byte, rng m.RandomSource) ([]byte, error) {
	total, err := requireLines(data, 1)
	if err != nil {
		return nil, err
	}

	startIndex := rng.Uniform(0, total-1)
	remaining := total - startIndex
	endIndex := rng.Uniform(0, remaining-1)

	first, err := LineAt(data, 0, remaining)
	if err != nil {
		return nil, err
	}

	last, err := LineAt(data, endIndex, remaining)
	if err != nil {
		return nil, err
	}

	return terminate(data[:first.StartIndex], data[last.End():]), nil
}

// DuplicateLine inserts one copy of a chosen line right after it.
func DuplicateLine(data []byte, rng m.RandomSource) ([]byte, error) {
	total, err := requireLines(data, 1)
	if err != nil {
		return nil, err
	}

	line, err := LineAt(data, rng.Uniform(0, total-1), total)
	if err != nil {
		return nil, err
	}

	return insertCopies(data, line, 1), nil
}

// RepeatLine inserts L+1 consecutive copies of a chosen line after it.
func RepeatLine(data []byte, rng m.RandomSource) ([]byte, error) {
	total, err := requireLines(data, 1)
	if err != nil {
		return nil, err
	}

	line, err := LineAt(data, rng.Uniform(0, total-1), total)
	if err != nil {
		return nil, err
	}

	return insertCopies(data, line, RepetitionLength(rng)+1), nil
}

func insertCopies(data []byte, line m.Line, copies int) []byte {
	content := data[line.StartIndex:line.End()]

	out := terminated(len(data) + copies*len(content))
	offset := copy(out, data[:line.End()])

	for range copies {
		offset += copy(out[offset:], content)
	}

	copy(out[offset:], data[line.End():])

	return out
}

// CopyLineCloseBy inserts a copy of a chosen line at an independently chosen
// line boundary. Slot total is the boundary after the last complete line.
func CopyLineCloseBy(data []byte, rng m.RandomSource) ([]byte, error) {
	total, err := requireLines(data, 1)
	if err != nil {
		return nil, err
	}

	source, err := LineAt(data, rng.Uniform(0, total-1), total)
	if err != nil {
		return nil, err
	}

	slot := rng.Uniform(0, total)

	var at int
	if slot < total {
		boundary, err := LineAt(data, slot, total)
		if err != nil {
			return nil, err
		}

		at = boundary.StartIndex
	} else {
		last, err := LineAt(data, total-1, total)
		if err != nil {
			return nil, err
		}

		at = last.End()
	}

	return terminate(data[:at], data[source.StartIndex:source.End()], data[at:]), nil
}

// SwapLine swaps one line with the line that follows it.
func SwapLine(data []byte, rng m.RandomSource) ([]byte, error) {
	total, err := requireLines(data, 2)
	if err != nil {
		return nil, err
	}

	lines, tail := splitLines(data)
	i := rng.Uniform(0, total-2)
	lines[i], lines[i+1] = lines[i+1], lines[i]

	return joinLines(lines, tail), nil
}

// PermuteLines walks every line, swapping it with a randomly drawn one.
func PermuteLines(data []byte, rng m.RandomSource) ([]byte, error) {
	total, err := requireLines(data, 2)
	if err != nil {
		return nil, err
	}

	lines, tail := splitLines(data)
	for i := range lines {
		j := rng.Uniform(0, total-1)
		lines[i], lines[j] = lines[j], lines[i]
	}

	return joinLines(lines, tail), nil
}

func joinLines(lines [][]byte, tail []byte) []byte {
	parts := make([][]byte, 0, len(lines)+1)
	parts = append(parts, lines...)
	parts = append(parts, tail)

	return terminate(parts...)
}
