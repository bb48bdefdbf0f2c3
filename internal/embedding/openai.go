package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const (
	ProviderOpenAI = "openai"

	openAIMaxRunes = 24000
)

// openAIProvider talks to any OpenAI-compatible embeddings endpoint, which
// includes self-hosted sentence-embedding servers behind OPENAI_BASE_URL.
type openAIProvider struct {
	client     *openai.Client
	model      string
	dimensions int
}

func NewOpenAI(apiKey, baseURL, model string, dimensions int) (Provider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" && baseURL == "" {
		return nil, fmt.Errorf("openai: %w", ErrMissingAPIKey)
	}
	if dimensions <= 0 {
		return nil, fmt.Errorf("openai: dimensions must be positive, got %d", dimensions)
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	return &openAIProvider{
		client:     openai.NewClientWithConfig(clientConfig),
		model:      model,
		dimensions: dimensions,
	}, nil
}

func (o *openAIProvider) Embed(ctx context.Context, text string) (Vector, error) {
	text, empty, err := prepare(text, openAIMaxRunes)
	if err != nil {
		return nil, err
	}
	if empty {
		return make(Vector, o.dimensions), nil
	}

	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(o.model),
		Dimensions: o.dimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: openai: %w", ErrEmbedding, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, ErrEmptyEmbedding)
	}

	return checkLength(resp.Data[0].Embedding, o.dimensions)
}

func (o *openAIProvider) Dimensions() int { return o.dimensions }

func (o *openAIProvider) Name() string { return ProviderOpenAI }
