// Package chunker splits extracted text into bounded-length chunks.
package chunker

import "strings"

// DefaultMaxLen is the default chunk length budget in characters.
const DefaultMaxLen = 1500

// SentenceChunker accumulates "."-terminated sentence fragments into chunks
// of at most maxLen characters. The splitter is intentionally naive: it does
// not special-case abbreviations or decimal numbers.
type SentenceChunker struct {
	maxLen int
}

func New(maxLen int) *SentenceChunker {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &SentenceChunker{maxLen: maxLen}
}

// Chunk splits text on "." and packs the fragments back into chunks,
// re-appending the terminator after each fragment. Whenever the running
// buffer plus the next fragment would reach the length budget, the buffer is
// flushed (trimmed) as a completed chunk. A single fragment longer than the
// budget still becomes one chunk; it is never subdivided.
func (c *SentenceChunker) Chunk(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	fragments := strings.Split(text, ".")
	var chunks []string
	current := ""
	for _, frag := range fragments {
		if strings.TrimSpace(frag) == "" {
			continue
		}
		if len(current)+len(frag) < c.maxLen {
			current += frag + "."
			continue
		}
		if t := strings.TrimSpace(current); t != "" {
			chunks = append(chunks, t)
		}
		current = frag + "."
	}
	if t := strings.TrimSpace(current); t != "" {
		chunks = append(chunks, t)
	}
	return chunks
}
