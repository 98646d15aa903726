package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/fadilmartias/cover-gen/internal/model"
	"github.com/fadilmartias/cover-gen/internal/provider"
)

// settingsRowID: the table holds exactly one row.
const settingsRowID = 1

type ProviderSettingsRepository struct {
	db *gorm.DB
}

func NewProviderSettingsRepository(db *gorm.DB) *ProviderSettingsRepository {
	return &ProviderSettingsRepository{db}
}

// GetProviderConfig returns (nil, nil) when nothing is configured yet so
// the worker can distinguish "not set up" from a storage failure.
func (r *ProviderSettingsRepository) GetProviderConfig() (*provider.Config, error) {
	var s model.ProviderSettings
	err := r.db.First(&s, "id = ?", settingsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s.Config, nil
}

func (r *ProviderSettingsRepository) PutProviderConfig(cfg provider.Config) error {
	return r.db.Save(&model.ProviderSettings{ID: settingsRowID, Config: cfg}).Error
}
