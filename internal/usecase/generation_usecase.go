package usecase

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/fadilmartias/cover-gen/internal/model"
	"github.com/fadilmartias/cover-gen/internal/repository"
	"github.com/fadilmartias/cover-gen/internal/validation"
	"github.com/fadilmartias/cover-gen/internal/worker"
)

type GenerationUsecase struct {
	profiles *repository.ProfileRepository
	postings *repository.JobPostingRepository
	jobs     *repository.GenerationJobRepository
	worker   *worker.Worker
}

func NewGenerationUsecase(profiles *repository.ProfileRepository, postings *repository.JobPostingRepository, jobs *repository.GenerationJobRepository, w *worker.Worker) *GenerationUsecase {
	return &GenerationUsecase{profiles: profiles, postings: postings, jobs: jobs, worker: w}
}

// Submit gates, snapshots and enqueues a new generation job. Validation
// failures are returned to the caller and no job record is created.
func (uc *GenerationUsecase) Submit(profileID, postingID uuid.UUID, cfg model.GenerationConfig) (*model.GenerationJob, error) {
	profile, err := uc.profiles.FindByID(profileID)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found: %w", profileID, err)
	}
	posting, err := uc.postings.FindByID(postingID)
	if err != nil {
		return nil, fmt.Errorf("job posting %s not found: %w", postingID, err)
	}

	if err := validation.CheckProfile(*profile); err != nil {
		return nil, fmt.Errorf("profile is incomplete: %w", err)
	}
	if err := validation.CheckJobPosting(*posting); err != nil {
		return nil, fmt.Errorf("job posting is incomplete: %w", err)
	}

	job := model.NewGenerationJob(*profile, *posting, cfg)
	if err := uc.jobs.SaveJob(job); err != nil {
		return nil, fmt.Errorf("persist job: %w", err)
	}
	if err := uc.worker.Enqueue(job.ID); err != nil {
		_ = uc.jobs.DeleteJob(job.ID)
		return nil, err
	}
	return job, nil
}

// Cancel withdraws a job that the worker has not claimed yet.
func (uc *GenerationUsecase) Cancel(jobID uuid.UUID) (*model.GenerationJob, error) {
	job, err := uc.jobs.FindJobByID(jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != model.StatusPending {
		return nil, fmt.Errorf("job %s is %s, only pending jobs can be cancelled", jobID, job.Status)
	}
	if err := job.Transition(model.StatusCancelled); err != nil {
		return nil, err
	}
	if err := uc.jobs.SaveJob(job); err != nil {
		return nil, err
	}
	return job, nil
}

func (uc *GenerationUsecase) GetJob(jobID uuid.UUID) (*model.GenerationJob, error) {
	return uc.jobs.FindJobByID(jobID)
}

func (uc *GenerationUsecase) ListJobs(profileID uuid.UUID) ([]model.GenerationJob, error) {
	return uc.jobs.ListJobsByProfile(profileID)
}

// DeleteJob removes a settled job record. A "retry" is a brand-new
// Submit with the same inputs, never a resurrection of an old job.
func (uc *GenerationUsecase) DeleteJob(jobID uuid.UUID) error {
	job, err := uc.jobs.FindJobByID(jobID)
	if err != nil {
		return err
	}
	if !job.Status.Terminal() {
		return fmt.Errorf("job %s is %s, cancel it before deleting", jobID, job.Status)
	}
	return uc.jobs.DeleteJob(jobID)
}
