package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/domain"
)

func TestExtractPlain(t *testing.T) {
	e := New()
	got, err := e.Extract("notes.txt", []byte("Hello world\nLine 2"))
	require.NoError(t, err)
	assert.Equal(t, "Hello world\nLine 2", got)
}

func TestExtractPlainUpperExt(t *testing.T) {
	e := New()
	got, err := e.Extract("NOTES.TXT", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestExtractPlainInvalidUTF8(t *testing.T) {
	e := New()
	got, err := e.Extract("bad.txt", []byte("hello\x80world"))
	require.NoError(t, err)
	assert.Equal(t, "hello�world", got)
}

func TestExtractUnsupported(t *testing.T) {
	e := New()
	for _, name := range []string{"data.csv", "image.png", "noext"} {
		_, err := e.Extract(name, []byte("whatever"))
		assert.ErrorIs(t, err, domain.ErrUnsupportedFormat, name)
	}
}

func TestExtractBrokenPDF(t *testing.T) {
	e := New()
	_, err := e.Extract("doc.pdf", []byte("not a pdf at all"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnsupportedFormat)
}
