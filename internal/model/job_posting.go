package model

import (
	"time"

	"github.com/google/uuid"
)

type JobPosting struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Company     string    `gorm:"type:varchar(200)" json:"company"`
	Title       string    `gorm:"type:varchar(200)" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Skills      []string  `gorm:"type:jsonb;serializer:json" json:"skills,omitempty"`
	// Platform the posting was extracted from, e.g. "linkedin", or "manual".
	SourcePlatform string    `gorm:"type:varchar(50)" json:"source_platform"`
	ManualEntry    bool      `json:"manual_entry"`
	OriginKey      string    `gorm:"type:varchar(500);index" json:"origin_key,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (j *JobPosting) TableName() string {
	return "job_postings"
}
