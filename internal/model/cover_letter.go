package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LetterState advances forward only: created → generated → edited → exported.
type LetterState string

const (
	LetterCreated   LetterState = "created"
	LetterGenerated LetterState = "generated"
	LetterEdited    LetterState = "edited"
	LetterExported  LetterState = "exported"
)

var letterOrder = map[LetterState]int{
	LetterCreated:   0,
	LetterGenerated: 1,
	LetterEdited:    2,
	LetterExported:  3,
}

type CoverLetter struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID   uuid.UUID   `gorm:"type:uuid;index" json:"profile_id"`
	Addressee   string      `gorm:"type:varchar(300)" json:"addressee"`
	Opening     string      `gorm:"type:text" json:"opening"`
	AboutMe     string      `gorm:"type:text" json:"about_me"`
	WhyMe       string      `gorm:"type:text" json:"why_me"`
	WhyCompany  string      `gorm:"type:text" json:"why_company"`
	State       LetterState `gorm:"type:varchar(20)" json:"state"`
	Provider    string      `gorm:"type:varchar(50)" json:"provider"`
	Model       string      `gorm:"type:varchar(100)" json:"model"`
	GeneratedAt time.Time   `json:"generated_at"`
	EditedAt    *time.Time  `json:"edited_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (c *CoverLetter) TableName() string {
	return "cover_letters"
}

// AdvanceState moves the lifecycle tag forward. Moving backwards is
// rejected; re-entering edited after an edit just restamps EditedAt.
func (c *CoverLetter) AdvanceState(to LetterState) error {
	toOrder, ok := letterOrder[to]
	if !ok {
		return fmt.Errorf("unknown letter state %q", to)
	}
	if toOrder < letterOrder[c.State] {
		return fmt.Errorf("letter %s: cannot move state backwards %s -> %s", c.ID, c.State, to)
	}
	if to == LetterEdited {
		now := time.Now().UTC()
		c.EditedAt = &now
	}
	c.State = to
	return nil
}
