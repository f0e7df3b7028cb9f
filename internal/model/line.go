package model

// Line is an addressable span terminated by a line feed. Size includes the
// terminating line feed byte.
type Line struct {
	StartIndex int
	Size       int
	Valid      bool
}

// End returns the index one past the line feed.
func (l Line) End() int {
	return l.StartIndex + l.Size
}

// NumInfo describes one decimal ASCII integer token inside a byte sequence.
type NumInfo struct {
	Value  int64
	Offset int
	Length int
}
