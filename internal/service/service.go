// Package service implements the upload and ask pipelines.
package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"docqa/internal/domain"
)

// NoContextAnswer is returned by Ask when retrieval produces no chunks.
const NoContextAnswer = "No relevant context found."

const systemPrompt = "You are a helpful assistant answering questions using the provided context.\n" +
	"If the answer is not contained in the context, say: 'I don't know.'\n" +
	"Do not make up information. Be concise and clear."

// topK is the number of chunks retrieved per question.
const topK = 3

// UploadResult reports what an upload did.
type UploadResult struct {
	ChunksStored int
	Duplicate    bool
}

// Service orchestrates extraction, chunking, embedding, storage and
// generation. All dependencies are process-scoped singletons injected at
// startup and safe for concurrent use.
type Service struct {
	extractor domain.Extractor
	chunker   domain.Chunker
	embedder  domain.Embedder
	store     domain.VectorStore
	chat      domain.ChatModel
}

func New(extractor domain.Extractor, chunker domain.Chunker, embedder domain.Embedder, store domain.VectorStore, chat domain.ChatModel) *Service {
	return &Service{
		extractor: extractor,
		chunker:   chunker,
		embedder:  embedder,
		store:     store,
		chat:      chat,
	}
}

// Upload extracts the file's text, skips it if a document with the same
// content hash is already stored, and otherwise chunks, embeds and stores it.
// Records are written only after every chunk embedded, so a failure leaves
// no partial state behind.
func (s *Service) Upload(ctx context.Context, filename string, content []byte) (UploadResult, error) {
	text, err := s.extractor.Extract(filename, content)
	if err != nil {
		return UploadResult{}, err
	}
	hash := ContentHash(text)

	existing, err := s.store.Scroll(ctx)
	if err != nil {
		return UploadResult{}, fmt.Errorf("dedup scan: %w", err)
	}
	for _, r := range existing {
		if r.FileHash == hash {
			return UploadResult{Duplicate: true}, nil
		}
	}

	chunks := s.chunker.Chunk(text)
	if len(chunks) == 0 {
		return UploadResult{}, nil
	}
	vectors, err := s.embedder.Embed(ctx, chunks)
	if err != nil {
		return UploadResult{}, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return UploadResult{}, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}
	records := make([]domain.Record, len(chunks))
	for i := range chunks {
		records[i] = domain.Record{
			Vector:   vectors[i],
			Text:     chunks[i],
			FileHash: hash,
		}
	}
	if err := s.store.Upsert(ctx, records); err != nil {
		return UploadResult{}, fmt.Errorf("store chunks: %w", err)
	}
	return UploadResult{ChunksStored: len(chunks)}, nil
}

// Ask embeds the question, retrieves the most similar chunks, and forwards
// them with the question to the chat model. An empty retrieval short-circuits
// with a fixed answer and no model call.
func (s *Service) Ask(ctx context.Context, question string) (domain.Answer, error) {
	vectors, err := s.embedder.Embed(ctx, []string{question})
	if err != nil {
		return domain.Answer{}, fmt.Errorf("embed question: %w", err)
	}
	if len(vectors) == 0 {
		return domain.Answer{}, fmt.Errorf("embedder returned no vector for question")
	}
	results, err := s.store.Search(ctx, vectors[0], topK)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("search: %w", err)
	}
	if len(results) == 0 {
		return domain.Answer{Text: NoContextAnswer, Context: ""}, nil
	}
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Record.Text
	}
	contextStr := strings.Join(texts, "\n")
	user := fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextStr, question)
	reply, err := s.chat.Complete(ctx, systemPrompt, user)
	if err != nil {
		return domain.Answer{}, err
	}
	return domain.Answer{Text: strings.TrimSpace(reply), Context: contextStr}, nil
}

// ContentHash is the md5 hex digest of the extracted text, used as the
// upload deduplication key.
func ContentHash(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
