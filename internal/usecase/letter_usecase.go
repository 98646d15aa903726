package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fadilmartias/cover-gen/internal/model"
	"github.com/fadilmartias/cover-gen/internal/pdf"
	"github.com/fadilmartias/cover-gen/internal/repository"
)

type LetterUsecase struct {
	letters  *repository.CoverLetterRepository
	jobs     *repository.GenerationJobRepository
	profiles *repository.ProfileRepository
	exporter pdf.Exporter
}

func NewLetterUsecase(letters *repository.CoverLetterRepository, jobs *repository.GenerationJobRepository, profiles *repository.ProfileRepository, exporter pdf.Exporter) *LetterUsecase {
	return &LetterUsecase{letters: letters, jobs: jobs, profiles: profiles, exporter: exporter}
}

func (uc *LetterUsecase) Get(id uuid.UUID) (*model.CoverLetter, error) {
	return uc.letters.FindLetterByID(id)
}

func (uc *LetterUsecase) ListByProfile(profileID uuid.UUID) ([]model.CoverLetter, error) {
	return uc.letters.ListLettersByProfile(profileID)
}

// LetterUpdate carries the editable section texts. Empty fields keep the
// current value.
type LetterUpdate struct {
	Addressee  string `json:"addressee"`
	Opening    string `json:"opening"`
	AboutMe    string `json:"about_me"`
	WhyMe      string `json:"why_me"`
	WhyCompany string `json:"why_company"`
}

// Update applies edits and flips the lifecycle tag to edited.
func (uc *LetterUsecase) Update(id uuid.UUID, update LetterUpdate) (*model.CoverLetter, error) {
	letter, err := uc.letters.FindLetterByID(id)
	if err != nil {
		return nil, err
	}

	if update.Addressee != "" {
		letter.Addressee = update.Addressee
	}
	if update.Opening != "" {
		letter.Opening = update.Opening
	}
	if update.AboutMe != "" {
		letter.AboutMe = update.AboutMe
	}
	if update.WhyMe != "" {
		letter.WhyMe = update.WhyMe
	}
	if update.WhyCompany != "" {
		letter.WhyCompany = update.WhyCompany
	}

	if err := letter.AdvanceState(model.LetterEdited); err != nil {
		return nil, err
	}
	letter.UpdatedAt = time.Now().UTC()
	if err := uc.letters.SaveLetter(letter); err != nil {
		return nil, err
	}
	return letter, nil
}

// Export renders the letter to PDF and advances its lifecycle tag.
func (uc *LetterUsecase) Export(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	letter, err := uc.letters.FindLetterByID(id)
	if err != nil {
		return nil, "", err
	}
	profile, err := uc.profiles.FindByID(letter.ProfileID)
	if err != nil {
		return nil, "", fmt.Errorf("load profile for letter %s: %w", id, err)
	}

	// Company/position come from the job that produced the letter; an
	// orphaned letter still exports, just with a generic filename.
	company, position := "", ""
	if job, err := uc.jobs.FindJobByLetterID(id); err == nil {
		company, position = job.Company, job.Position
	}

	content, filename, err := uc.exporter.Export(ctx, letter, profile, company, position)
	if err != nil {
		return nil, "", err
	}

	if err := letter.AdvanceState(model.LetterExported); err != nil {
		return nil, "", err
	}
	if err := uc.letters.SaveLetter(letter); err != nil {
		return nil, "", err
	}
	return content, filename, nil
}
