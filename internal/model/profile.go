package model

import (
	"time"

	"github.com/google/uuid"
)

// Experience is one work-history entry on a profile. The same shape is
// reused for projects, where Company holds the project context (if any).
type Experience struct {
	Role        string     `json:"role"`
	Company     string     `json:"company"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"` // nil means "Present"
}

type Education struct {
	Institution string     `json:"institution"`
	Degree      string     `json:"degree"`
	Field       string     `json:"field"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type Profile struct {
	ID          uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string       `gorm:"type:varchar(200)" json:"name"`
	Email       string       `gorm:"type:varchar(200)" json:"email"`
	Phone       string       `gorm:"type:varchar(50)" json:"phone"`
	Location    string       `gorm:"type:varchar(200)" json:"location"`
	Experiences []Experience `gorm:"type:jsonb;serializer:json" json:"experiences"`
	Projects    []Experience `gorm:"type:jsonb;serializer:json" json:"projects"`
	Education   []Education  `gorm:"type:jsonb;serializer:json" json:"education"`
	Skills      []string     `gorm:"type:jsonb;serializer:json" json:"skills"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (p *Profile) TableName() string {
	return "profiles"
}
