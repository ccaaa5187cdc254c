package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 1500, cfg.Chunker.MaxLen)
	assert.Equal(t, "memory", cfg.VectorStore.Type)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.Model)
	assert.Equal(t, "HF_API_KEY", cfg.Chat.APIKeyEnv)
	assert.InDelta(t, 0.7, cfg.Chat.Temperature, 1e-9)
	assert.Equal(t, 512, cfg.Chat.MaxTokens)
}

func TestLoadAppliesDefaultsToPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: 9090
vector_store:
  type: qdrant
  vector_size: 768
  qdrant:
    url: http://localhost:6333
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "qdrant", cfg.VectorStore.Type)
	assert.Equal(t, 768, cfg.VectorStore.VectorSize)
	require.NotNil(t, cfg.VectorStore.Qdrant)
	assert.Equal(t, "http://localhost:6333", cfg.VectorStore.Qdrant.URL)
	assert.Equal(t, "rag_documents", cfg.VectorStore.Qdrant.Collection)
	assert.Equal(t, 15, cfg.VectorStore.Qdrant.TimeoutSecs)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.Server.Port = 8123
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8123, loaded.Server.Port)
	assert.Equal(t, cfg.Chunker.MaxLen, loaded.Chunker.MaxLen)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
