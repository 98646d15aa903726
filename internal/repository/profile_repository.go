package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fadilmartias/cover-gen/internal/model"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db}
}

func (r *ProfileRepository) Save(profile *model.Profile) error {
	return r.db.Save(profile).Error
}

func (r *ProfileRepository) FindByID(id uuid.UUID) (*model.Profile, error) {
	var p model.Profile
	err := r.db.First(&p, "id = ?", id).Error
	return &p, err
}

func (r *ProfileRepository) List() ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.db.Order("created_at desc").Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Profile{}, "id = ?", id).Error
}
