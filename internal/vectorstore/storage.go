package vectorstore

import (
	"context"

	"docqa/internal/domain"
)

// Storage persists vector records and supports similarity search.
type Storage interface {
	Init(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, records []domain.Record) error
	Search(ctx context.Context, vector []float64, topK int) ([]domain.SearchResult, error)
	Scroll(ctx context.Context) ([]domain.Record, error)
	Clear(ctx context.Context) error
}
