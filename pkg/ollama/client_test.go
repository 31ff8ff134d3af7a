package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eduagent/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL string, timeout time.Duration) *Client {
	return NewClient(&config.OllamaConfig{
		BaseURL:        baseURL,
		Model:          "phi3:mini",
		EmbeddingModel: "nomic-embed-text",
		Temperature:    0.2,
		NumPredict:     512,
		RepeatPenalty:  1.1,
		Timeout:        timeout,
	}, zap.NewNop())
}

func TestGenerate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "phi3:mini", req.Model)
		assert.False(t, req.Stream)
		assert.InDelta(t, 0.2, req.Options.Temperature, 0.001)

		json.NewEncoder(w).Encode(generateResponse{Response: "  The answer.  ", Done: true})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 5*time.Second)
	answer, err := client.Generate(context.Background(), "question")
	require.NoError(t, err)
	assert.Equal(t, "The answer.", answer)
}

func TestGenerate_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Response: "   ", Done: true})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), "question")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerate_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), "question")

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
}

func TestGenerate_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	client := newTestClient(srv.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), "question")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGenerate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 50*time.Millisecond)
	_, err := client.Generate(context.Background(), "question")
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestEmbeddings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/embeddings", r.URL.Path)

		var req embeddingsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)

		json.NewEncoder(w).Encode(embeddingsResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 5*time.Second)
	vec, err := client.Embeddings(context.Background(), "attendance policy")
	require.NoError(t, err)
	assert.Len(t, vec, 3)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 5*time.Second)
	assert.NoError(t, client.Ping(context.Background()))

	srv.Close()
	assert.ErrorIs(t, client.Ping(context.Background()), ErrUnavailable)
}
