package domain

import "context"

// Document is a single uploaded file after text extraction.
// It exists only for the duration of an upload request.
type Document struct {
	Filename string
	Content  string
}

// Record is a stored vector point: the embedding, the chunk text it was
// computed from, and the content hash of the document the chunk came from.
type Record struct {
	ID       string
	Vector   []float64
	Text     string
	FileHash string
}

// SearchResult is a retrieved record with its similarity score.
type SearchResult struct {
	Record Record
	Score  float64
}

// Answer pairs a generated reply with the context string it was produced from.
type Answer struct {
	Text    string
	Context string
}

// Extractor turns an uploaded file into plain text.
type Extractor interface {
	Extract(filename string, content []byte) (string, error)
}

// Chunker splits extracted text into bounded-length chunks.
type Chunker interface {
	Chunk(text string) []string
}

// Embedder converts texts into numeric vector representations,
// one vector per input, in input order.
type Embedder interface {
	Model() string
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// VectorStore persists records and supports similarity search.
type VectorStore interface {
	Init(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, records []Record) error
	Search(ctx context.Context, vector []float64, topK int) ([]SearchResult, error)
	Scroll(ctx context.Context) ([]Record, error)
	Clear(ctx context.Context) error
}

// ChatModel generates a reply from a system instruction and a user message.
type ChatModel interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
