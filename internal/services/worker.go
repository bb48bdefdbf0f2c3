package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/models"
	"alfredoptarigan/resume-radar/internal/repositories"
)

// Indexer embeds catalog job descriptions into the vector index in the
// background. Rows left pending (e.g. after a restart) are picked up by a poller.
type Indexer interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(jobID uuid.UUID)
}

type indexer struct {
	repo         repositories.JobDescriptionRepository
	catalog      CatalogService
	jobQueue     chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
	stopOnce     sync.Once
	mu           sync.Mutex
	inFlight     map[uuid.UUID]struct{}
	log          *zap.Logger
}

func NewIndexer(
	repo repositories.JobDescriptionRepository,
	catalog CatalogService,
	concurrency int,
	pollInterval time.Duration,
	log *zap.Logger,
) Indexer {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &indexer{
		repo:         repo,
		catalog:      catalog,
		jobQueue:     make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
		inFlight:     make(map[uuid.UUID]struct{}),
		log:          log,
	}
}

// Start implements Indexer.
func (w *indexer) Start(ctx context.Context) {
	w.log.Info("starting indexer", zap.Int("workers", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	if w.pollInterval > 0 {
		w.wg.Add(1)
		go w.pollPending(ctx)
	}
}

// Stop implements Indexer.
func (w *indexer) Stop() {
	w.stopOnce.Do(func() {
		w.log.Info("stopping indexer")
		close(w.stopChan)
		w.wg.Wait()
	})
}

// Enqueue implements Indexer. An id that is already queued or being indexed
// is ignored.
func (w *indexer) Enqueue(jobID uuid.UUID) {
	if !w.claim(jobID) {
		w.log.Debug("job description already queued", zap.Stringer("id", jobID))
		return
	}

	select {
	case w.jobQueue <- jobID:
		w.log.Debug("job description enqueued for indexing", zap.Stringer("id", jobID))
	case <-w.stopChan:
		w.release(jobID)
		w.log.Warn("indexer stopped, cannot enqueue", zap.Stringer("id", jobID))
	}
}

func (w *indexer) claim(jobID uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.inFlight[jobID]; ok {
		return false
	}
	w.inFlight[jobID] = struct{}{}
	return true
}

func (w *indexer) release(jobID uuid.UUID) {
	w.mu.Lock()
	delete(w.inFlight, jobID)
	w.mu.Unlock()
}

func (w *indexer) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case jobID := <-w.jobQueue:
			log := w.log.With(zap.Int("worker", workerID), zap.Stringer("id", jobID))
			if err := w.catalog.Index(ctx, jobID); err != nil {
				log.Error("failed to index job description", zap.Error(err))
			} else {
				log.Info("job description indexed")
			}
			w.release(jobID)
		}
	}
}

func (w *indexer) pollPending(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pending, err := w.repo.FindPendingIndex(10)
			if err != nil {
				w.log.Warn("failed to fetch pending job descriptions", zap.Error(err))
				continue
			}

			for _, jd := range pending {
				if jd.IndexStatus == models.IndexPending {
					w.Enqueue(jd.ID)
				}
			}
		}
	}
}
