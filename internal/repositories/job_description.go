package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-radar/internal/models"
)

var ErrNotFound = errors.New("job description not found")

type JobDescriptionRepository interface {
	Create(jd *models.JobDescription) error
	FindByID(id uuid.UUID) (*models.JobDescription, error)
	List(limit, offset int) ([]models.JobDescription, int64, error)
	Delete(id uuid.UUID) error
	UpdateIndexStatus(id uuid.UUID, status models.IndexStatus, indexErr string) error
	FindPendingIndex(limit int) ([]models.JobDescription, error)
}

type jobDescriptionRepository struct {
	db *gorm.DB
}

func NewJobDescriptionRepository(db *gorm.DB) JobDescriptionRepository {
	return &jobDescriptionRepository{db: db}
}

// Create implements JobDescriptionRepository.
func (r *jobDescriptionRepository) Create(jd *models.JobDescription) error {
	if err := r.db.Create(jd).Error; err != nil {
		return fmt.Errorf("failed to create job description: %w", err)
	}
	return nil
}

// FindByID implements JobDescriptionRepository.
func (r *jobDescriptionRepository) FindByID(id uuid.UUID) (*models.JobDescription, error) {
	var jd models.JobDescription
	if err := r.db.Where("id = ?", id).First(&jd).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find job description: %w", err)
	}
	return &jd, nil
}

// List implements JobDescriptionRepository.
func (r *jobDescriptionRepository) List(limit, offset int) ([]models.JobDescription, int64, error) {
	var (
		jds   []models.JobDescription
		total int64
	)

	if err := r.db.Model(&models.JobDescription{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count job descriptions: %w", err)
	}

	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&jds).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list job descriptions: %w", err)
	}

	return jds, total, nil
}

// Delete implements JobDescriptionRepository.
func (r *jobDescriptionRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.JobDescription{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete job description: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateIndexStatus implements JobDescriptionRepository.
func (r *jobDescriptionRepository) UpdateIndexStatus(id uuid.UUID, status models.IndexStatus, indexErr string) error {
	updates := map[string]interface{}{
		"index_status": status,
		"index_error":  nil,
		"updated_at":   time.Now(),
	}
	if indexErr != "" {
		updates["index_error"] = indexErr
	}

	result := r.db.Model(&models.JobDescription{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update index status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindPendingIndex implements JobDescriptionRepository.
func (r *jobDescriptionRepository) FindPendingIndex(limit int) ([]models.JobDescription, error) {
	var jds []models.JobDescription
	err := r.db.
		Where("index_status = ?", models.IndexPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&jds).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending job descriptions: %w", err)
	}

	return jds, nil
}
