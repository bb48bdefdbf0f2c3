package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/embedding"
	"alfredoptarigan/resume-radar/internal/logger"
	"alfredoptarigan/resume-radar/internal/models"
	"alfredoptarigan/resume-radar/internal/repositories"
)

const DefaultSearchLimit = 5

var ErrEmptySearchQuery = errors.New("search query is empty")

// CatalogService manages stored job descriptions and ranks them for a résumé.
type CatalogService interface {
	Create(ctx context.Context, title, content string) (*models.JobDescription, error)
	Get(ctx context.Context, id uuid.UUID) (*models.JobDescription, error)
	List(ctx context.Context, limit, offset int) ([]models.JobDescription, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Index(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, resume string, limit int) ([]models.JobMatch, error)
}

type catalogService struct {
	repo     repositories.JobDescriptionRepository
	index    VectorIndex
	embedder embedding.Provider
	log      *zap.Logger
}

func NewCatalogService(
	repo repositories.JobDescriptionRepository,
	index VectorIndex,
	embedder embedding.Provider,
	log *zap.Logger,
) CatalogService {
	return &catalogService{
		repo:     repo,
		index:    index,
		embedder: embedder,
		log:      log,
	}
}

// Create implements CatalogService. The new row starts pending; callers hand
// its id to the Indexer.
func (c *catalogService) Create(_ context.Context, title, content string) (*models.JobDescription, error) {
	now := time.Now()
	jd := &models.JobDescription{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Content:     strings.TrimSpace(content),
		IndexStatus: models.IndexPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.repo.Create(jd); err != nil {
		return nil, err
	}

	c.log.Info("job description created",
		zap.Stringer("id", jd.ID),
		zap.String("title", logger.Truncate(jd.Title, 80)),
		zap.Int("content_runes", utf8.RuneCountInString(jd.Content)),
	)
	return jd, nil
}

// Get implements CatalogService.
func (c *catalogService) Get(_ context.Context, id uuid.UUID) (*models.JobDescription, error) {
	return c.repo.FindByID(id)
}

// List implements CatalogService.
func (c *catalogService) List(_ context.Context, limit, offset int) ([]models.JobDescription, int64, error) {
	return c.repo.List(limit, offset)
}

// Delete implements CatalogService. A failure to remove the vector is logged
// only; searches skip ids that no longer exist.
func (c *catalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.repo.Delete(id); err != nil {
		return err
	}

	if err := c.index.Delete(ctx, id.String()); err != nil {
		c.log.Warn("failed to delete job description vector", zap.Stringer("id", id), zap.Error(err))
	}
	return nil
}

// Index implements CatalogService.
func (c *catalogService) Index(ctx context.Context, id uuid.UUID) error {
	jd, err := c.repo.FindByID(id)
	if err != nil {
		return fmt.Errorf("failed to load job description: %w", err)
	}

	// Take the row out of the pending scan before the embedding call.
	if err := c.repo.UpdateIndexStatus(id, models.IndexProcessing, ""); err != nil {
		return fmt.Errorf("failed to mark job description processing: %w", err)
	}

	vector, err := c.embedder.Embed(ctx, jd.Content)
	if err == nil {
		err = c.index.Upsert(ctx, jd.ID.String(), jd.Title, vector)
	}
	if err != nil {
		if updateErr := c.repo.UpdateIndexStatus(id, models.IndexFailed, err.Error()); updateErr != nil {
			c.log.Error("failed to record index failure", zap.Stringer("id", id), zap.Error(updateErr))
		}
		return fmt.Errorf("failed to index job description: %w", err)
	}

	return c.repo.UpdateIndexStatus(id, models.IndexIndexed, "")
}

// Search implements CatalogService.
func (c *catalogService) Search(ctx context.Context, resume string, limit int) ([]models.JobMatch, error) {
	resume = strings.TrimSpace(resume)
	if resume == "" {
		return nil, ErrEmptySearchQuery
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	vector, err := c.embedder.Embed(ctx, resume)
	if err != nil {
		return nil, err
	}

	hits, err := c.index.Search(ctx, vector, limit)
	if err != nil {
		return nil, err
	}

	matches := make([]models.JobMatch, 0, len(hits))
	for _, hit := range hits {
		if hit.JobID == "" {
			continue
		}
		matches = append(matches, models.JobMatch{
			ID:         hit.JobID,
			Title:      hit.Title,
			Similarity: hit.Score,
		})
	}

	return matches, nil
}
