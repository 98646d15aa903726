package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/fadilmartias/cover-gen/internal/model"
)

// GenerationJobDTO is the polling read model: the embedded profile and
// posting snapshots stay server-side.
type GenerationJobDTO struct {
	ID            uuid.UUID       `json:"id"`
	ProfileID     uuid.UUID       `json:"profile_id"`
	Company       string          `json:"company"`
	Position      string          `json:"position"`
	Status        model.JobStatus `json:"status"`
	Progress      int             `json:"progress"`
	CurrentStep   string          `json:"current_step"`
	CoverLetterID *uuid.UUID      `json:"cover_letter_id,omitempty"`
	Error         string          `json:"error,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	StartedAt     *time.Time      `json:"started_at,omitempty"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}

func FromGenerationJob(job *model.GenerationJob) GenerationJobDTO {
	return GenerationJobDTO{
		ID:            job.ID,
		ProfileID:     job.ProfileID,
		Company:       job.Company,
		Position:      job.Position,
		Status:        job.Status,
		Progress:      job.Progress,
		CurrentStep:   job.CurrentStep,
		CoverLetterID: job.CoverLetterID,
		Error:         job.Error,
		CreatedAt:     job.CreatedAt,
		StartedAt:     job.StartedAt,
		CompletedAt:   job.CompletedAt,
	}
}
