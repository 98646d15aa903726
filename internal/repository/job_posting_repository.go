package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fadilmartias/cover-gen/internal/model"
)

type JobPostingRepository struct {
	db *gorm.DB
}

func NewJobPostingRepository(db *gorm.DB) *JobPostingRepository {
	return &JobPostingRepository{db}
}

func (r *JobPostingRepository) Save(posting *model.JobPosting) error {
	return r.db.Save(posting).Error
}

func (r *JobPostingRepository) FindByID(id uuid.UUID) (*model.JobPosting, error) {
	var j model.JobPosting
	err := r.db.First(&j, "id = ?", id).Error
	return &j, err
}

// FindByOriginKey serves the extraction cache: a posting scraped from the
// same page is reused instead of re-extracted.
func (r *JobPostingRepository) FindByOriginKey(key string) (*model.JobPosting, error) {
	var j model.JobPosting
	err := r.db.First(&j, "origin_key = ?", key).Error
	return &j, err
}

func (r *JobPostingRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.JobPosting{}, "id = ?", id).Error
}
