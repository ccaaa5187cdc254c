// Package memory provides an in-process vector store, used as the default
// backend and in tests.
package memory

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"docqa/internal/domain"
)

// Storage is a brute-force cosine similarity store. Safe for concurrent use.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	records   []domain.Record
}

func NewStorage() *Storage { return &Storage{} }

func (s *Storage) Init(_ context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Reuse the existing collection as-is when already initialized.
	if s.dimension != 0 {
		return nil
	}
	s.dimension = dimension
	return nil
}

// Upsert stores the records, assigning each a fresh unique id.
// No de-duplication happens at this layer.
func (s *Storage) Upsert(_ context.Context, records []domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dimension == 0 {
		return errors.New("store not initialized")
	}
	for _, r := range records {
		if len(r.Vector) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	for _, r := range records {
		r.ID = uuid.NewString()
		s.records = append(s.records, r)
	}
	return nil
}

// Search returns the topK most similar records, most similar first.
// Fewer than topK are returned when the collection is smaller.
func (s *Storage) Search(_ context.Context, vector []float64, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 3
	}
	results := make([]domain.SearchResult, 0, len(s.records))
	for _, r := range s.records {
		results = append(results, domain.SearchResult{Record: r, Score: cosine(r.Vector, vector)})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK], nil
}

// Scroll returns every stored record.
func (s *Storage) Scroll(_ context.Context) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *Storage) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
