package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGeminiServer(t *testing.T, values []float32, calls *atomic.Int32, dims *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-embedding-001:batchEmbedContents"), r.URL.Path)

		var req struct {
			Requests []struct {
				OutputDimensionality int32 `json:"outputDimensionality"`
			} `json:"requests"`
		}
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) && assert.Len(t, req.Requests, 1) {
			dims.Store(req.Requests[0].OutputDimensionality)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"embeddings": []map[string]any{{"values": values}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeminiRequestsConfiguredDimensions(t *testing.T) {
	var calls, dims atomic.Int32
	srv := newGeminiServer(t, []float32{0.1, 0.2, 0.3, 0.4}, &calls, &dims)

	p, err := NewGemini(context.Background(), "key", srv.URL, "gemini-embedding-001", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Dimensions())

	vec, err := p.Embed(context.Background(), "Go engineer")
	require.NoError(t, err)
	assert.Equal(t, Vector{0.1, 0.2, 0.3, 0.4}, vec)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(4), dims.Load())
}

func TestGeminiRejectsUnexpectedLength(t *testing.T) {
	var calls, dims atomic.Int32
	srv := newGeminiServer(t, []float32{0.1, 0.2}, &calls, &dims)

	p, err := NewGemini(context.Background(), "key", srv.URL, "gemini-embedding-001", 4)
	require.NoError(t, err)

	_, err = p.Embed(context.Background(), "Go engineer")
	assert.ErrorIs(t, err, ErrEmbedding)
	assert.ErrorIs(t, err, ErrUnexpectedLength)
}

func TestGeminiBlankTextSkipsCall(t *testing.T) {
	var calls, dims atomic.Int32
	srv := newGeminiServer(t, nil, &calls, &dims)

	p, err := NewGemini(context.Background(), "key", srv.URL, "gemini-embedding-001", 0)
	require.NoError(t, err)
	assert.Equal(t, defaultGeminiDimensions, p.Dimensions())

	vec, err := p.Embed(context.Background(), "  \n")
	require.NoError(t, err)
	assert.Len(t, vec, defaultGeminiDimensions)
	assert.Zero(t, calls.Load())
}
