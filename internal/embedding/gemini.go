package embedding

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	ProviderGemini = "gemini"

	defaultGeminiModel      = "text-embedding-004"
	defaultGeminiDimensions = 768
	geminiMaxRunes          = 40000
)

type geminiProvider struct {
	client     *genai.Client
	model      string
	dimensions int
}

// NewGemini requests embeddings truncated to dimensions, so models with a
// larger native size (e.g. gemini-embedding-001) fit the same collection.
// baseURL is optional and overrides the public endpoint.
func NewGemini(ctx context.Context, apiKey, baseURL, model string, dimensions int) (Provider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrMissingAPIKey)
	}
	if dimensions < 0 {
		return nil, fmt.Errorf("gemini: dimensions must be positive, got %d", dimensions)
	}
	if dimensions == 0 {
		dimensions = defaultGeminiDimensions
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiModel
	}

	return &geminiProvider{client: client, model: model, dimensions: dimensions}, nil
}

func (g *geminiProvider) Embed(ctx context.Context, text string) (Vector, error) {
	text, empty, err := prepare(text, geminiMaxRunes)
	if err != nil {
		return nil, err
	}
	if empty {
		return make(Vector, g.dimensions), nil
	}

	result, err := g.client.Models.EmbedContent(ctx, g.model, genai.Text(text), &genai.EmbedContentConfig{
		OutputDimensionality: genai.Ptr(int32(g.dimensions)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: gemini: %w", ErrEmbedding, err)
	}
	if result == nil || len(result.Embeddings) == 0 || result.Embeddings[0] == nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, ErrEmptyEmbedding)
	}

	return checkLength(result.Embeddings[0].Values, g.dimensions)
}

func (g *geminiProvider) Dimensions() int { return g.dimensions }

func (g *geminiProvider) Name() string { return ProviderGemini }
