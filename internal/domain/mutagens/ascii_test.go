package mutagens

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "gooze.dev/pkg/fuzzmut/internal/model"
	"gooze.dev/pkg/fuzzmut/pkg"
)

func TestSplitChunks(t *testing.T) {
	input := []byte("a \"b\" c \"open\n\"d\"")

	chunks := SplitChunks(input)
	assert.Equal(t, []Chunk{
		{Kind: RawBytes, Data: []byte("a ")},
		{Kind: QuotedChunk, Data: []byte("b")},
		{Kind: RawBytes, Data: []byte(" c \"open\n")},
		{Kind: QuotedChunk, Data: []byte("d")},
	}, chunks)

	assert.Equal(t, input, JoinChunks(chunks))
}

func TestMutateASCIIBad(t *testing.T) {
	rng := script(0, 0, 1)

	got, err := MutateASCIIBad([]byte("x=\"ab\""), rng)
	require.NoError(t, err)
	assert.Equal(t, []byte("x=\"a%nb\"\x00"), got)
	assert.Equal(t, []draw{{0, 0}, {0, len(badStrings) - 1}, {0, 2}}, rng.draws)
}

func TestMutateASCIIBad_EmptyQuotedString(t *testing.T) {
	got, err := MutateASCIIBad([]byte("\"\""), script(0, 6, 0))
	require.NoError(t, err)
	assert.Equal(t, []byte("\"$(reboot)\"\x00"), got)
}

func TestMutateASCIIBad_Errors(t *testing.T) {
	_, err := MutateASCIIBad(nil, script())
	require.ErrorIs(t, err, m.ErrUnexpected)

	_, err = MutateASCIIBad([]byte("no quotes \"here\nat all"), script())
	require.ErrorIs(t, err, m.ErrUsage)
}

func TestMutateASCIIBad_LeavesRawBytes(t *testing.T) {
	input := []byte("key: \"value\" # trailing")

	for seed := range uint64(20) {
		got, err := MutateASCIIBad(input, pkg.NewRandomSource(seed))
		require.NoError(t, err)

		payload := m.Payload(got)
		require.True(t, bytes.HasPrefix(payload, []byte("key: \"")))
		require.True(t, bytes.HasSuffix(payload, []byte("\" # trailing")))
	}

	assert.Equal(t, []byte("key: \"value\" # trailing"), input)
}
