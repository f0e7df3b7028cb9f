package mutagens

import (
	"bytes"

	m "gooze.dev/pkg/fuzzmut/internal/model"
)

const quote = '"'

// ChunkKind tags a chunk of the text model.
type ChunkKind int

const (
	// RawBytes is data outside any quoted string.
	RawBytes ChunkKind = iota
	// QuotedChunk is the content of a double-quoted string on one line.
	QuotedChunk
)

// Chunk is one element of the ordered chunk sequence. Data of a quoted
// chunk excludes the quotes.
type Chunk struct {
	Kind ChunkKind
	Data []byte
}

var badStrings = [][]byte{
	[]byte("%n"),
	[]byte("%s%s%s%s%s"),
	[]byte("%x%x%x%x"),
	[]byte("%99999999999s"),
	[]byte("\x00"),
	[]byte("../../../../../../etc/passwd"),
	[]byte("$(reboot)"),
	[]byte("`reboot`"),
	[]byte("';--"),
	[]byte("\r\n"),
	[]byte("\\"),
	[]byte("\xff\xfe"),
	bytes.Repeat([]byte("A"), 1024),
}

// SplitChunks splits data into raw runs and quoted strings. A quote with no
// closing quote before the next line feed stays raw.
func SplitChunks(data []byte) []Chunk {
	var (
		chunks []Chunk
		raw    []byte
	)

	for i := 0; i < len(data); i++ {
		if data[i] != quote {
			raw = append(raw, data[i])
			continue
		}

		end := closingQuote(data, i+1)
		if end < 0 {
			raw = append(raw, data[i])
			continue
		}

		if len(raw) > 0 {
			chunks = append(chunks, Chunk{Kind: RawBytes, Data: raw})
			raw = nil
		}

		chunks = append(chunks, Chunk{Kind: QuotedChunk, Data: data[i+1 : end]})
		i = end
	}

	if len(raw) > 0 {
		chunks = append(chunks, Chunk{Kind: RawBytes, Data: raw})
	}

	return chunks
}

func closingQuote(data []byte, from int) int {
	for j := from; j < len(data); j++ {
		switch data[j] {
		case quote:
			return j
		case lineFeed:
			return -1
		}
	}

	return -1
}

// JoinChunks is the inverse of SplitChunks.
func JoinChunks(chunks []Chunk) []byte {
	var buf bytes.Buffer

	for _, chunk := range chunks {
		if chunk.Kind == QuotedChunk {
			buf.WriteByte(quote)
			buf.Write(chunk.Data)
			buf.WriteByte(quote)

			continue
		}

		buf.Write(chunk.Data)
	}

	return buf.Bytes()
}

// MutateASCIIBad inserts a hostile string inside one quoted chunk.
func MutateASCIIBad(data []byte, rng m.RandomSource) ([]byte, error) {
	if data == nil {
		return nil, m.NewUnexpectedError("input is nil")
	}

	chunks := SplitChunks(data)

	var quoted []int
	for i, chunk := range chunks {
		if chunk.Kind == QuotedChunk {
			quoted = append(quoted, i)
		}
	}

	if len(quoted) == 0 {
		return nil, m.NewUsageError("input holds no quoted string")
	}

	target := quoted[rng.Uniform(0, len(quoted)-1)]
	bad := badStrings[rng.Uniform(0, len(badStrings)-1)]

	content := chunks[target].Data
	pos := rng.Uniform(0, len(content))

	mutated := make([]byte, 0, len(content)+len(bad))
	mutated = append(mutated, content[:pos]...)
	mutated = append(mutated, bad...)
	mutated = append(mutated, content[pos:]...)
	chunks[target].Data = mutated

	return terminate(JoinChunks(chunks)), nil
}
