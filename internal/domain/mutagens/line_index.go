package mutagens

import (
	"bytes"

	m "gooze.dev/pkg/fuzzmut/internal/model"
)

const lineFeed = '\n'

// CountLinesFrom returns the number of line feeds at or after fromIndex.
func CountLinesFrom(buf []byte, fromIndex int) (int, error) {
	if len(buf) < 1 {
		return 0, m.NewUsageError("buffer must hold at least 1 byte")
	}

	if fromIndex < 0 || fromIndex >= len(buf) {
		return 0, m.NewIndexOutOfRangeError("from index %d outside [0, %d)", fromIndex, len(buf))
	}

	return bytes.Count(buf[fromIndex:], []byte{lineFeed}), nil
}

// LineAt locates a line counted from the start of a window made of the last
// linesAfterIndexWindow lines. The absolute ordinal is clamped into
// [0, totalLines-1], so callers can pick a start line and then an end line
// relative to the lines that remain after it.
func LineAt(buf []byte, lineIndex, linesAfterIndexWindow int) (m.Line, error) {
	total, err := CountLinesFrom(buf, 0)
	if err != nil {
		return m.Line{}, err
	}

	if linesAfterIndexWindow > total {
		return m.Line{}, m.NewUnexpectedError("window of %d lines exceeds %d lines", linesAfterIndexWindow, total)
	}

	if total == 0 {
		return m.Line{}, m.NewUsageError("buffer holds no complete line")
	}

	target := clamp(total-linesAfterIndexWindow+lineIndex, 0, total-1)

	start := 0
	for ordinal := 0; ; ordinal++ {
		end := bytes.IndexByte(buf[start:], lineFeed)
		if end < 0 {
			return m.Line{}, m.NewUnexpectedError("line %d not found", target)
		}

		if ordinal == target {
			return m.Line{StartIndex: start, Size: end + 1, Valid: true}, nil
		}

		start += end + 1
	}
}

// splitLines returns the complete lines of buf (each including its line
// feed) and the trailing bytes that are not a line.
func splitLines(buf []byte) ([][]byte, []byte) {
	var lines [][]byte

	start := 0
	for {
		end := bytes.IndexByte(buf[start:], lineFeed)
		if end < 0 {
			return lines, buf[start:]
		}

		lines = append(lines, buf[start:start+end+1])
		start += end + 1
	}
}

// requireLines validates buf and returns its line count, failing with a
// usage error when fewer than minLines complete lines exist.
func requireLines(buf []byte, minLines int) (int, error) {
	if buf == nil {
		return 0, m.NewUnexpectedError("input is nil")
	}

	if len(buf) < 1 {
		return 0, m.NewUsageError("input must hold at least 1 byte")
	}

	total, err := CountLinesFrom(buf, 0)
	if err != nil {
		return 0, err
	}

	if total < minLines {
		return 0, m.NewUsageError("need at least %d complete lines, got %d", minLines, total)
	}

	return total, nil
}
