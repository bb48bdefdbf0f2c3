// Package app wires configuration into the services shared by the HTTP server
// and the command line tool.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/config"
	"alfredoptarigan/resume-radar/internal/embedding"
	"alfredoptarigan/resume-radar/internal/grammar"
	"alfredoptarigan/resume-radar/internal/repositories"
	"alfredoptarigan/resume-radar/internal/scoring"
	"alfredoptarigan/resume-radar/internal/services"
)

// NewAnalyzer builds the embedding provider and the analyzer around it. The
// grammar sub-scorer is enabled only when configured.
func NewAnalyzer(ctx context.Context, cfg *config.Config, log *zap.Logger) (scoring.Analyzer, embedding.Provider, error) {
	embedder, err := embedding.New(ctx, cfg.Embedding)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize embedding provider: %w", err)
	}
	log.Info("embedding provider initialized",
		zap.String("provider", embedder.Name()),
		zap.Int("dimensions", embedder.Dimensions()),
	)

	opts := []scoring.Option{scoring.WithLogger(log)}
	if cfg.Grammar.Enabled {
		checker := grammar.NewLanguageTool(grammar.Options{
			URL:           cfg.Grammar.URL,
			Language:      cfg.Grammar.Language,
			Timeout:       cfg.Grammar.Timeout,
			RatePerMinute: cfg.Grammar.RatePerMinute,
			MaxRetries:    1,
		}, log.Named("grammar"))
		opts = append(opts, scoring.WithGrammarChecker(checker))
		log.Info("grammar checker enabled", zap.String("url", cfg.Grammar.URL))
	}

	return scoring.NewAnalyzer(embedder, opts...), embedder, nil
}

// Catalog bundles the job description store with its background indexer.
type Catalog struct {
	Service services.CatalogService
	Indexer services.Indexer
}

// NewCatalog connects Postgres and Qdrant and prepares the collection. The
// indexer is returned unstarted.
func NewCatalog(ctx context.Context, cfg *config.Config, embedder embedding.Provider, log *zap.Logger) (*Catalog, error) {
	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		return nil, err
	}
	repo := repositories.NewJobDescriptionRepository(db)

	index, err := services.NewQdrantIndex(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		embedder.Dimensions(),
		log.Named("qdrant"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize qdrant: %w", err)
	}
	if err := index.InitCollection(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize qdrant collection: %w", err)
	}

	catalog := services.NewCatalogService(repo, index, embedder, log.Named("catalog"))
	indexer := services.NewIndexer(
		repo,
		catalog,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
		log.Named("indexer"),
	)

	return &Catalog{Service: catalog, Indexer: indexer}, nil
}
