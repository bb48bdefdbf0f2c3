package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/resume-radar/internal/embedding"
	"alfredoptarigan/resume-radar/internal/models"
	"alfredoptarigan/resume-radar/internal/repositories"
)

type memoryRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]models.JobDescription
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[uuid.UUID]models.JobDescription)}
}

func (m *memoryRepo) Create(jd *models.JobDescription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[jd.ID] = *jd
	return nil
}

func (m *memoryRepo) FindByID(id uuid.UUID) (*models.JobDescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	jd, ok := m.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &jd, nil
}

func (m *memoryRepo) List(limit, offset int) ([]models.JobDescription, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]models.JobDescription, 0, len(m.rows))
	for _, jd := range m.rows {
		all = append(all, jd)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })
	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	end := min(offset+limit, len(all))
	return all[offset:end], total, nil
}

func (m *memoryRepo) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryRepo) UpdateIndexStatus(id uuid.UUID, status models.IndexStatus, indexErr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	jd, ok := m.rows[id]
	if !ok {
		return repositories.ErrNotFound
	}
	jd.IndexStatus = status
	jd.IndexError = nil
	if indexErr != "" {
		jd.IndexError = &indexErr
	}
	m.rows[id] = jd
	return nil
}

func (m *memoryRepo) FindPendingIndex(limit int) ([]models.JobDescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var pending []models.JobDescription
	for _, jd := range m.rows {
		if jd.IndexStatus == models.IndexPending && len(pending) < limit {
			pending = append(pending, jd)
		}
	}
	return pending, nil
}

func (m *memoryRepo) status(id uuid.UUID) models.IndexStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id].IndexStatus
}

type memoryIndex struct {
	mu        sync.Mutex
	vectors   map[string]embedding.Vector
	titles    map[string]string
	upsertErr error
}

func newMemoryIndex() *memoryIndex {
	return &memoryIndex{vectors: make(map[string]embedding.Vector), titles: make(map[string]string)}
}

func (m *memoryIndex) InitCollection(context.Context) error { return nil }

func (m *memoryIndex) Upsert(_ context.Context, jobID, title string, vector embedding.Vector) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.vectors[jobID] = vector
	m.titles[jobID] = title
	return nil
}

func (m *memoryIndex) Search(_ context.Context, query embedding.Vector, limit int) ([]VectorMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matches []VectorMatch
	for id, v := range m.vectors {
		var dot float32
		for i := range v {
			dot += v[i] * query[i]
		}
		matches = append(matches, VectorMatch{JobID: id, Title: m.titles[id], Score: dot})
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (m *memoryIndex) Delete(_ context.Context, jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vectors[jobID]; !ok {
		return errors.New("point not found")
	}
	delete(m.vectors, jobID)
	delete(m.titles, jobID)
	return nil
}

func (m *memoryIndex) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.vectors)
}
