// Package embedding turns text into fixed-size vectors for similarity scoring.
//
// Every backend honours the same contract: the same input yields the same
// vector for a given model, empty input yields a zero vector without a remote
// call, overlong input is truncated to a per-provider rune limit, and only
// provider faults are reported, always wrapped in ErrEmbedding.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"alfredoptarigan/resume-radar/internal/config"
)

// Vector is a dense embedding. Its length is fixed per provider.
type Vector []float32

var (
	ErrEmbedding        = errors.New("embedding failed")
	ErrInvalidEncoding  = errors.New("text is not valid UTF-8")
	ErrUnknownProvider  = errors.New("unknown embedding provider")
	ErrMissingAPIKey    = errors.New("embedding provider api key is required")
	ErrEmptyEmbedding   = errors.New("empty embedding result")
	ErrUnexpectedLength = errors.New("embedding has unexpected length")
)

type Provider interface {
	Embed(ctx context.Context, text string) (Vector, error)
	Dimensions() int
	Name() string
}

// New builds the provider named by cfg.Provider.
func New(ctx context.Context, cfg config.EmbeddingConfig) (Provider, error) {
	switch cfg.Provider {
	case "", ProviderTFIDF:
		if cfg.TFIDFCorpusPath == "" {
			return NewTFIDF(DefaultTFIDFDimensions, nil), nil
		}
		t, err := NewTFIDFFromFile(DefaultTFIDFDimensions, cfg.TFIDFCorpusPath)
		if err != nil {
			return nil, err
		}
		return t, nil
	case ProviderGemini:
		return NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiDimensions)
	case ProviderOpenAI:
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.OpenAIDimensions)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// prepare applies the shared input policy. It reports whether the caller
// should return a zero vector instead of embedding.
func prepare(text string, maxRunes int) (string, bool, error) {
	if !utf8.ValidString(text) {
		return "", false, fmt.Errorf("%w: %w", ErrEmbedding, ErrInvalidEncoding)
	}
	if strings.TrimSpace(text) == "" {
		return "", true, nil
	}
	return truncateRunes(text, maxRunes), false, nil
}

func truncateRunes(text string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	return string([]rune(text)[:maxRunes])
}

func checkLength(values []float32, dims int) (Vector, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, ErrEmptyEmbedding)
	}
	if dims > 0 && len(values) != dims {
		return nil, fmt.Errorf("%w: %w: got %d, want %d", ErrEmbedding, ErrUnexpectedLength, len(values), dims)
	}
	return Vector(values), nil
}
