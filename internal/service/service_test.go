package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/chunker"
	"docqa/internal/domain"
	"docqa/internal/extract"
	"docqa/internal/vectorstore/memory"
)

// stubEmbedder returns the same fixed vector for every input and counts calls.
type stubEmbedder struct {
	vector []float64
	calls  int
}

func (e *stubEmbedder) Model() string { return "stub" }

func (e *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	e.calls++
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = e.vector
	}
	return out, nil
}

// stubChat returns a fixed reply and records the last user content.
type stubChat struct {
	reply    string
	calls    int
	lastUser string
}

func (c *stubChat) Complete(_ context.Context, system, user string) (string, error) {
	c.calls++
	c.lastUser = user
	return c.reply, nil
}

func newTestService(t *testing.T) (*Service, *stubEmbedder, *stubChat, *memory.Storage) {
	t.Helper()
	store := memory.NewStorage()
	require.NoError(t, store.Init(context.Background(), 2))
	emb := &stubEmbedder{vector: []float64{1, 0}}
	ch := &stubChat{reply: "the answer"}
	svc := New(extract.New(), chunker.New(1500), emb, store, ch)
	return svc, emb, ch, store
}

func TestUploadStoresChunks(t *testing.T) {
	svc, _, _, store := newTestService(t)
	result, err := svc.Upload(context.Background(), "doc.txt", []byte("A. B. C."))
	require.NoError(t, err)
	assert.False(t, result.Duplicate)
	assert.Equal(t, 1, result.ChunksStored)

	stored, err := store.Scroll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "A. B. C.", stored[0].Text)
	assert.Equal(t, ContentHash("A. B. C."), stored[0].FileHash)
}

func TestUploadDuplicateSkipsByContentHash(t *testing.T) {
	svc, emb, _, store := newTestService(t)
	ctx := context.Background()
	_, err := svc.Upload(ctx, "first.txt", []byte("Same text. Exactly."))
	require.NoError(t, err)
	callsAfterFirst := emb.calls

	// Different filename, identical content: hash match, nothing stored.
	result, err := svc.Upload(ctx, "second.txt", []byte("Same text. Exactly."))
	require.NoError(t, err)
	assert.True(t, result.Duplicate)
	assert.Equal(t, 0, result.ChunksStored)
	assert.Equal(t, callsAfterFirst, emb.calls, "duplicate upload must not re-embed")

	stored, err := store.Scroll(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestUploadUnsupportedFormatNoSideEffects(t *testing.T) {
	svc, emb, ch, store := newTestService(t)
	_, err := svc.Upload(context.Background(), "data.csv", []byte("a,b,c"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Zero(t, emb.calls)
	assert.Zero(t, ch.calls)
	stored, serr := store.Scroll(context.Background())
	require.NoError(t, serr)
	assert.Empty(t, stored)
}

func TestUploadEmptyDocument(t *testing.T) {
	svc, emb, _, _ := newTestService(t)
	result, err := svc.Upload(context.Background(), "empty.txt", []byte("   "))
	require.NoError(t, err)
	assert.Equal(t, 0, result.ChunksStored)
	assert.False(t, result.Duplicate)
	assert.Zero(t, emb.calls)
}

func TestAskEmptyCollection(t *testing.T) {
	svc, _, ch, _ := newTestService(t)
	answer, err := svc.Ask(context.Background(), "anything?")
	require.NoError(t, err)
	assert.Equal(t, domain.Answer{Text: NoContextAnswer, Context: ""}, answer)
	assert.Zero(t, ch.calls, "empty retrieval must not call the chat model")
}

func TestAskRetrievesTopThreeInOrder(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStorage()
	require.NoError(t, store.Init(ctx, 2))
	require.NoError(t, store.Upsert(ctx, []domain.Record{
		{Vector: []float64{0, 1}, Text: "far"},
		{Vector: []float64{1, 0}, Text: "best"},
		{Vector: []float64{1, 0.5}, Text: "third"},
		{Vector: []float64{1, 0.2}, Text: "second"},
	}))
	emb := &stubEmbedder{vector: []float64{1, 0}}
	ch := &stubChat{reply: "  composed reply  "}
	svc := New(extract.New(), chunker.New(1500), emb, store, ch)

	answer, err := svc.Ask(ctx, "which chunk?")
	require.NoError(t, err)
	assert.Equal(t, "best\nsecond\nthird", answer.Context)
	assert.Equal(t, "composed reply", answer.Text, "reply is trimmed")
	assert.Equal(t, 1, ch.calls)
	assert.Contains(t, ch.lastUser, "Context:\nbest\nsecond\nthird")
	assert.Contains(t, ch.lastUser, "Question: which chunk?")
}

func TestUploadThenAskEndToEnd(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Upload(ctx, "doc.txt", []byte("A. B. C."))
	require.NoError(t, err)

	answer, err := svc.Ask(ctx, "what does the document say?")
	require.NoError(t, err)
	assert.Equal(t, "A. B. C.", answer.Context)
	assert.Equal(t, "the answer", answer.Text)
}

func TestContentHashDeterministic(t *testing.T) {
	a := ContentHash("hello world")
	b := ContentHash("hello world")
	c := ContentHash("hello worlds")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 32)
	assert.Equal(t, strings.ToLower(a), a)
}
