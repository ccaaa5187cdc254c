// Package extract converts uploaded files into plain text.
package extract

import (
	"path/filepath"
	"strings"

	"docqa/internal/domain"
)

// Extractor produces the full text content of an uploaded file.
// The format is chosen by filename extension; only .txt and .pdf are accepted.
type Extractor struct{}

func New() *Extractor { return &Extractor{} }

func (e *Extractor) Extract(filename string, content []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return extractPlain(content)
	case ".pdf":
		return extractPDF(content)
	default:
		return "", domain.ErrUnsupportedFormat
	}
}
