package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// JobStatus follows a fixed graph:
//
//	pending ──► in_progress ──► completed
//	    │             │
//	    │             └───────► failed
//	    └──► cancelled
//
// completed, failed and cancelled are terminal.
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusInProgress JobStatus = "in_progress"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusCancelled  JobStatus = "cancelled"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[JobStatus][]JobStatus{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusFailed},
	// terminal states have no outgoing transitions
}

func ParseJobStatus(s string) (JobStatus, error) {
	st := JobStatus(s)
	switch st {
	case StatusPending, StatusInProgress, StatusCompleted, StatusFailed, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// GenerationConfig carries per-job overrides. Instruction slots are
// free-form guidance for each output section; empty means "no guidance".
// Model/temperature/max tokens override the provider defaults when set.
type GenerationConfig struct {
	OpeningInstructions    string   `json:"opening_instructions,omitempty"`
	AboutMeInstructions    string   `json:"about_me_instructions,omitempty"`
	WhyMeInstructions      string   `json:"why_me_instructions,omitempty"`
	WhyCompanyInstructions string   `json:"why_company_instructions,omitempty"`
	Provider               string   `json:"provider,omitempty"`
	Model                  string   `json:"model,omitempty"`
	Temperature            *float32 `json:"temperature,omitempty"`
	MaxTokens              int      `json:"max_tokens,omitempty"`
}

// GenerationJob is the queued unit of work. It embeds full copies of the
// profile and posting so the worker never re-fetches them: the job stays
// replay-safe even if the live records are edited while it waits.
type GenerationJob struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID     uuid.UUID        `gorm:"type:uuid;index" json:"profile_id"`
	JobPostingID  uuid.UUID        `gorm:"type:uuid" json:"job_posting_id"`
	Profile       Profile          `gorm:"type:jsonb;serializer:json" json:"profile"`
	JobPosting    JobPosting       `gorm:"type:jsonb;serializer:json" json:"job_posting"`
	Company       string           `gorm:"type:varchar(200)" json:"company"`
	Position      string           `gorm:"type:varchar(200)" json:"position"`
	Status        JobStatus        `gorm:"type:varchar(20)" json:"status"`
	Config        GenerationConfig `gorm:"type:jsonb;serializer:json" json:"config"`
	Progress      int              `json:"progress"`
	CurrentStep   string           `gorm:"type:varchar(100)" json:"current_step"`
	CoverLetterID *uuid.UUID       `gorm:"type:uuid" json:"cover_letter_id,omitempty"`
	Error         string           `gorm:"type:text" json:"error,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	StartedAt     *time.Time       `json:"started_at,omitempty"`
	CompletedAt   *time.Time       `json:"completed_at,omitempty"`
}

func (j *GenerationJob) TableName() string {
	return "generation_jobs"
}

// NewGenerationJob snapshots the profile and posting into a pending job.
func NewGenerationJob(profile Profile, posting JobPosting, cfg GenerationConfig) *GenerationJob {
	return &GenerationJob{
		ID:           uuid.New(),
		ProfileID:    profile.ID,
		JobPostingID: posting.ID,
		Profile:      profile,
		JobPosting:   posting,
		Company:      posting.Company,
		Position:     posting.Title,
		Status:       StatusPending,
		Config:       cfg,
		CreatedAt:    time.Now().UTC(),
	}
}

// Transition moves the job to a new status, stamping StartedAt on the
// first entry into in_progress and CompletedAt on entering any terminal
// state. Each timestamp is set at most once.
func (j *GenerationJob) Transition(to JobStatus) error {
	allowed, ok := validTransitions[j.Status]
	if !ok {
		return fmt.Errorf("job %s: no transitions out of terminal status %s", j.ID, j.Status)
	}
	found := false
	for _, s := range allowed {
		if s == to {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("job %s: invalid transition %s -> %s", j.ID, j.Status, to)
	}

	now := time.Now().UTC()
	j.Status = to
	if to == StatusInProgress && j.StartedAt == nil {
		j.StartedAt = &now
	}
	if to.Terminal() && j.CompletedAt == nil {
		j.CompletedAt = &now
	}
	return nil
}

// SetProgress updates the informational progress fields. Only meaningful
// while in_progress.
func (j *GenerationJob) SetProgress(progress int, step string) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	j.Progress = progress
	j.CurrentStep = step
}
