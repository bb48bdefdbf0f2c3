package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/config"
	"alfredoptarigan/resume-radar/internal/embedding"
)

func TestNewAnalyzerDefaultsToTFIDF(t *testing.T) {
	cfg := &config.Config{Embedding: config.EmbeddingConfig{Provider: "tfidf"}}

	analyzer, embedder, err := NewAnalyzer(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, embedding.ProviderTFIDF, embedder.Name())

	res, err := analyzer.Analyze(context.Background(), "Developed and managed things.", "")
	require.NoError(t, err)
	assert.Equal(t, 100, res.OutOf)
}

func TestNewAnalyzerUnknownProvider(t *testing.T) {
	cfg := &config.Config{Embedding: config.EmbeddingConfig{Provider: "word2vec"}}

	_, _, err := NewAnalyzer(context.Background(), cfg, zap.NewNop())
	assert.ErrorIs(t, err, embedding.ErrUnknownProvider)
}

func TestNewAnalyzerMissingKey(t *testing.T) {
	cfg := &config.Config{Embedding: config.EmbeddingConfig{Provider: "openai"}}

	_, _, err := NewAnalyzer(context.Background(), cfg, zap.NewNop())
	assert.ErrorIs(t, err, embedding.ErrMissingAPIKey)
}
