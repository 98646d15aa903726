package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fadilmartias/cover-gen/internal/model"
)

type GenerationJobRepository struct {
	db *gorm.DB
}

func NewGenerationJobRepository(db *gorm.DB) *GenerationJobRepository {
	return &GenerationJobRepository{db}
}

func (r *GenerationJobRepository) SaveJob(job *model.GenerationJob) error {
	return r.db.Save(job).Error
}

func (r *GenerationJobRepository) FindJobByID(id uuid.UUID) (*model.GenerationJob, error) {
	var job model.GenerationJob
	err := r.db.First(&job, "id = ?", id).Error
	return &job, err
}

func (r *GenerationJobRepository) ListJobsByProfile(profileID uuid.UUID) ([]model.GenerationJob, error) {
	var jobs []model.GenerationJob
	err := r.db.Where("profile_id = ?", profileID).Order("created_at desc").Find(&jobs).Error
	return jobs, err
}

func (r *GenerationJobRepository) ListJobsByStatus(status model.JobStatus) ([]model.GenerationJob, error) {
	var jobs []model.GenerationJob
	err := r.db.Where("status = ?", status).Order("created_at desc").Find(&jobs).Error
	return jobs, err
}

// FindJobByLetterID resolves the job that produced a letter, used for
// the letter's company/position context on export.
func (r *GenerationJobRepository) FindJobByLetterID(letterID uuid.UUID) (*model.GenerationJob, error) {
	var job model.GenerationJob
	err := r.db.First(&job, "cover_letter_id = ?", letterID).Error
	return &job, err
}

func (r *GenerationJobRepository) DeleteJob(id uuid.UUID) error {
	return r.db.Delete(&model.GenerationJob{}, "id = ?", id).Error
}
