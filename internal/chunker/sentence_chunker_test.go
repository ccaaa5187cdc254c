package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkEmptyText(t *testing.T) {
	c := New(1500)
	assert.Nil(t, c.Chunk(""))
	assert.Nil(t, c.Chunk("   \n\t  "))
}

func TestChunkNoTerminator(t *testing.T) {
	c := New(1500)
	chunks := c.Chunk("a text without any terminator")
	require.Len(t, chunks, 1)
	assert.Equal(t, "a text without any terminator.", chunks[0])
}

func TestChunkSingleChunkKeepsSentences(t *testing.T) {
	c := New(1500)
	chunks := c.Chunk("A. B. C.")
	require.Len(t, chunks, 1)
	assert.Equal(t, "A. B. C.", chunks[0])
}

func TestChunkFlushesAtBudget(t *testing.T) {
	c := New(10)
	chunks := c.Chunk("aaaa. bbbb. cccc.")
	require.Equal(t, []string{"aaaa.", "bbbb.", "cccc."}, chunks)
}

func TestChunkLengthBound(t *testing.T) {
	c := New(40)
	text := strings.Repeat("a short sentence here. ", 30)
	chunks := c.Chunk(text)
	require.NotEmpty(t, chunks)
	for i, ch := range chunks {
		assert.Less(t, len(ch), 40, "chunk %d", i)
		assert.NotEmpty(t, strings.TrimSpace(ch))
	}
}

// A single fragment longer than the budget is never subdivided; it becomes
// one oversized chunk.
func TestChunkOversizedFragment(t *testing.T) {
	c := New(5)
	long := strings.Repeat("x", 20)
	chunks := c.Chunk(long + ".y")
	require.Len(t, chunks, 2)
	assert.Equal(t, long+".", chunks[0])
	assert.GreaterOrEqual(t, len(chunks[0]), 5)
	assert.Equal(t, "y.", chunks[1])
}

// Joining the chunks back together must reconstruct the original sentence
// sequence (modulo whitespace trimming and re-inserted terminators).
func TestChunkRoundTrip(t *testing.T) {
	c := New(25)
	text := "One two three. Four five. Six seven eight nine. Ten."
	chunks := c.Chunk(text)
	require.NotEmpty(t, chunks)
	got := sentences(strings.Join(chunks, " "))
	want := sentences(text)
	assert.Equal(t, want, got)
}

func sentences(text string) []string {
	var out []string
	for _, frag := range strings.Split(text, ".") {
		if s := strings.TrimSpace(frag); s != "" {
			out = append(out, s)
		}
	}
	return out
}
