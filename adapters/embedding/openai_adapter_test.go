package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/educursus/internal/config"
	"github.com/khoahotran/educursus/pkg/logger"
)

func TestOllamaAdapter_GenerateEmbeddings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "nomic-embed-text", body["model"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.5,0.25]}],"model":"nomic-embed-text"}`))
	}))
	defer srv.Close()

	var cfg config.Config
	cfg.Ollama.Host = srv.URL
	cfg.Ollama.EmbeddingModel = "nomic-embed-text"

	em, err := NewOllamaAdapter(cfg, logger.NewNopLogger())
	require.NoError(t, err)

	vec, err := em.GenerateEmbeddings(context.Background(), "data science")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.25}, vec.Slice())
}

func TestNewOllamaAdapter_RequiresHost(t *testing.T) {
	_, err := NewOllamaAdapter(config.Config{}, logger.NewNopLogger())
	assert.Error(t, err)
}

func TestDisabledEmbedder(t *testing.T) {
	_, err := NewDisabledEmbedder().GenerateEmbeddings(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrEmbeddingsDisabled)
}
