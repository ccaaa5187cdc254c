// Package qdrant provides a minimal REST client to a Qdrant vector store.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"docqa/internal/domain"
)

const scrollPageSize = 256

// Storage speaks to a single Qdrant collection over its REST API.
// The collection uses cosine distance and is created on Init if missing.
type Storage struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

func NewStorage(cfg Config) *Storage {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Storage{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// Init creates the collection with the given dimension if it does not exist.
// An existing collection is reused as-is; its dimension is not verified.
func (s *Storage) Init(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	url := fmt.Sprintf("%s/collections/%s", s.url, s.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	s.auth(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return s.do(ctx, http.MethodPut, url, body, nil)
}

// Upsert stores the records as points, each under a fresh UUID.
func (s *Storage) Upsert(ctx context.Context, records []domain.Record) error {
	if len(records) == 0 {
		return nil
	}
	points := make([]map[string]any, len(records))
	for i, r := range records {
		points[i] = map[string]any{
			"id":     uuid.NewString(),
			"vector": r.Vector,
			"payload": map[string]any{
				"text":      r.Text,
				"file_hash": r.FileHash,
			},
		}
	}
	url := fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection)
	return s.do(ctx, http.MethodPut, url, map[string]any{"points": points}, nil)
}

// Search returns the topK nearest points by cosine similarity, most similar
// first, with payloads.
func (s *Storage) Search(ctx context.Context, vector []float64, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = 3
	}
	body := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	url := fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection)
	if err := s.do(ctx, http.MethodPost, url, body, &resp); err != nil {
		return nil, err
	}
	results := make([]domain.SearchResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		results = append(results, domain.SearchResult{
			Record: recordFromPayload(r.ID, r.Payload),
			Score:  r.Score,
		})
	}
	return results, nil
}

// Scroll pages through the whole collection and returns every stored record's
// payload. Vectors are not fetched.
func (s *Storage) Scroll(ctx context.Context) ([]domain.Record, error) {
	url := fmt.Sprintf("%s/collections/%s/points/scroll", s.url, s.collection)
	var records []domain.Record
	var offset any
	for {
		body := map[string]any{
			"limit":        scrollPageSize,
			"with_payload": true,
		}
		if offset != nil {
			body["offset"] = offset
		}
		var resp struct {
			Result struct {
				Points []struct {
					ID      any            `json:"id"`
					Payload map[string]any `json:"payload"`
				} `json:"points"`
				NextPageOffset any `json:"next_page_offset"`
			} `json:"result"`
		}
		if err := s.do(ctx, http.MethodPost, url, body, &resp); err != nil {
			return nil, err
		}
		for _, p := range resp.Result.Points {
			records = append(records, recordFromPayload(p.ID, p.Payload))
		}
		if resp.Result.NextPageOffset == nil {
			return records, nil
		}
		offset = resp.Result.NextPageOffset
	}
}

// Clear drops the collection, best-effort.
func (s *Storage) Clear(ctx context.Context) error {
	url := fmt.Sprintf("%s/collections/%s", s.url, s.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	s.auth(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

func recordFromPayload(id any, payload map[string]any) domain.Record {
	rec := domain.Record{ID: fmt.Sprint(id)}
	if v, ok := payload["text"].(string); ok {
		rec.Text = v
	}
	if v, ok := payload["file_hash"].(string); ok {
		rec.FileHash = v
	}
	return rec
}

func (s *Storage) auth(req *http.Request) {
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
}

func (s *Storage) do(ctx context.Context, method, url string, body any, out any) error {
	data, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	s.auth(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		text, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("qdrant %s %s failed: %s: %s", method, url, resp.Status, bytes.TrimSpace(text))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
