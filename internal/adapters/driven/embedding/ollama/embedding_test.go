package ollama

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

func newTestServer(t *testing.T, embedding []float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/embeddings":
			var req embedRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.NotEmpty(t, req.Model)
			json.NewEncoder(w).Encode(embedResponse{Embedding: embedding})
		case "/api/tags":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestEmbed(t *testing.T) {
	srv := newTestServer(t, []float64{3, 4})
	defer srv.Close()

	s := NewEmbeddingService(Config{BaseURL: srv.URL, Dimensions: 2})

	vec, err := s.Embed(context.Background(), "hello")
	require.NoError(t, err)
	require.Len(t, vec, 2)

	// Output is L2-normalised.
	norm := math.Sqrt(float64(vec[0]*vec[0] + vec[1]*vec[1]))
	assert.InDelta(t, 1.0, norm, 1e-6)
}

func TestEmbedEmptyInput(t *testing.T) {
	s := NewEmbeddingService(Config{Dimensions: 2})

	_, err := s.Embed(context.Background(), "   \n\t ")
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestEmbedDimensionMismatch(t *testing.T) {
	srv := newTestServer(t, []float64{1, 2, 3})
	defer srv.Close()

	s := NewEmbeddingService(Config{BaseURL: srv.URL, Dimensions: 2})

	_, err := s.Embed(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestEmbedServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewEmbeddingService(Config{BaseURL: srv.URL, Dimensions: 2})

	_, err := s.Embed(context.Background(), "hello")
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	srv := newTestServer(t, nil)
	defer srv.Close()

	s := NewEmbeddingService(Config{BaseURL: srv.URL})
	assert.NoError(t, s.Ping(context.Background()))

	srv.Close()
	assert.Error(t, s.Ping(context.Background()))
}

func TestConfigDefaults(t *testing.T) {
	s := NewEmbeddingService(Config{})
	assert.Equal(t, DefaultModel, s.ModelName())
	assert.Equal(t, DefaultDimensions, s.Dimensions())
}
