package model

import (
	"time"

	"github.com/fadilmartias/cover-gen/internal/provider"
)

// ProviderSettings is the process-wide provider configuration. A single
// row (ID 1) holds the active config; job-level overrides layer on top.
type ProviderSettings struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Config    provider.Config `gorm:"type:jsonb;serializer:json" json:"config"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (s *ProviderSettings) TableName() string {
	return "provider_settings"
}
