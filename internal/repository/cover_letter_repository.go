package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fadilmartias/cover-gen/internal/model"
)

type CoverLetterRepository struct {
	db *gorm.DB
}

func NewCoverLetterRepository(db *gorm.DB) *CoverLetterRepository {
	return &CoverLetterRepository{db}
}

func (r *CoverLetterRepository) SaveLetter(letter *model.CoverLetter) error {
	return r.db.Save(letter).Error
}

func (r *CoverLetterRepository) FindLetterByID(id uuid.UUID) (*model.CoverLetter, error) {
	var letter model.CoverLetter
	err := r.db.First(&letter, "id = ?", id).Error
	return &letter, err
}

func (r *CoverLetterRepository) ListLettersByProfile(profileID uuid.UUID) ([]model.CoverLetter, error) {
	var letters []model.CoverLetter
	err := r.db.Where("profile_id = ?", profileID).Order("created_at desc").Find(&letters).Error
	return letters, err
}

func (r *CoverLetterRepository) DeleteLetter(id uuid.UUID) error {
	return r.db.Delete(&model.CoverLetter{}, "id = ?", id).Error
}
