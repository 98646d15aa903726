// Package worker drains the generation job queue. There is exactly one
// consumer, so at most one job is ever in_progress: producers only append
// and read, which keeps job records single-writer while in flight.
package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/fadilmartias/cover-gen/internal/model"
	"github.com/fadilmartias/cover-gen/internal/parser"
	"github.com/fadilmartias/cover-gen/internal/prompt"
	"github.com/fadilmartias/cover-gen/internal/provider"
	"github.com/fadilmartias/cover-gen/internal/ratelimit"
)

const queueCapacity = 100

// JobStore is the slice of storage the worker needs for jobs.
type JobStore interface {
	SaveJob(job *model.GenerationJob) error
	FindJobByID(id uuid.UUID) (*model.GenerationJob, error)
	ListJobsByStatus(status model.JobStatus) ([]model.GenerationJob, error)
}

// LetterStore persists generated cover letters.
type LetterStore interface {
	SaveLetter(letter *model.CoverLetter) error
}

// SettingsStore returns the process-wide provider configuration, or
// (nil, nil) when none has been configured yet.
type SettingsStore interface {
	GetProviderConfig() (*provider.Config, error)
}

type Worker struct {
	queue    chan uuid.UUID
	jobs     JobStore
	letters  LetterStore
	settings SettingsStore
	registry *provider.Registry
	limiter  *ratelimit.Limiter
	timeout  time.Duration
}

func New(jobs JobStore, letters LetterStore, settings SettingsStore, registry *provider.Registry, limiter *ratelimit.Limiter) *Worker {
	return &Worker{
		queue:    make(chan uuid.UUID, queueCapacity),
		jobs:     jobs,
		letters:  letters,
		settings: settings,
		registry: registry,
		limiter:  limiter,
		timeout:  provider.DefaultTimeout,
	}
}

// Enqueue appends a persisted pending job to the queue and wakes the
// worker. Safe to call concurrently with the worker's dequeue.
func (w *Worker) Enqueue(jobID uuid.UUID) error {
	select {
	case w.queue <- jobID:
		return nil
	default:
		return fmt.Errorf("generation queue is full (%d jobs waiting)", queueCapacity)
	}
}

// Run processes jobs in strict enqueue order until ctx is cancelled. A
// single job's failure never stops the loop.
func (w *Worker) Run(ctx context.Context) {
	log.Println("generation worker started")
	for {
		select {
		case <-ctx.Done():
			log.Println("generation worker stopped")
			return
		case id := <-w.queue:
			w.process(ctx, id)
		}
	}
}

// Recover reloads unfinished jobs left over from a previous run:
// in_progress jobs are failed (the call they were awaiting is gone) and
// pending jobs are re-queued. Best effort only.
func (w *Worker) Recover() {
	stale, err := w.jobs.ListJobsByStatus(model.StatusInProgress)
	if err != nil {
		log.Printf("recover: list in_progress jobs: %v", err)
	}
	for i := range stale {
		job := &stale[i]
		w.failJob(job, "generation was interrupted by a restart")
	}

	pending, err := w.jobs.ListJobsByStatus(model.StatusPending)
	if err != nil {
		log.Printf("recover: list pending jobs: %v", err)
		return
	}
	// ListJobsByStatus returns newest-first; enqueue oldest first to keep
	// the original order.
	for i := len(pending) - 1; i >= 0; i-- {
		if err := w.Enqueue(pending[i].ID); err != nil {
			log.Printf("recover: re-enqueue job %s: %v", pending[i].ID, err)
		}
	}
}

// process drives one job through the pipeline. Every error, including a
// panic, is caught here and recorded as the job's terminal failed state.
func (w *Worker) process(ctx context.Context, id uuid.UUID) {
	job, err := w.jobs.FindJobByID(id)
	if err != nil {
		log.Printf("job %s: load failed: %v", id, err)
		return
	}
	if job.Status != model.StatusPending {
		// Cancelled (or otherwise already settled) before we claimed it.
		log.Printf("job %s: skipping, status is %s", id, job.Status)
		return
	}

	if err := job.Transition(model.StatusInProgress); err != nil {
		log.Printf("job %s: %v", id, err)
		return
	}
	job.SetProgress(5, "Preparing...")
	if err := w.jobs.SaveJob(job); err != nil {
		log.Printf("job %s: persist in_progress: %v", id, err)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			w.failJob(job, fmt.Sprintf("internal error: %v", r))
		}
	}()

	if err := w.generate(ctx, job); err != nil {
		w.failJob(job, err.Error())
	}
}

func (w *Worker) generate(ctx context.Context, job *model.GenerationJob) error {
	cfg, err := w.resolveConfig(job)
	if err != nil {
		return err
	}

	prov, err := w.registry.Get(cfg.Provider)
	if err != nil {
		return err
	}

	if err := w.limiter.Record(); err != nil {
		// Fail fast rather than holding the queue until a slot opens.
		return err
	}

	job.SetProgress(30, "Generating...")
	w.saveProgress(job)

	promptText := prompt.Build(job.Profile, job.JobPosting, prompt.Instructions{
		Opening:    job.Config.OpeningInstructions,
		AboutMe:    job.Config.AboutMeInstructions,
		WhyMe:      job.Config.WhyMeInstructions,
		WhyCompany: job.Config.WhyCompanyInstructions,
	})

	temperature := float32(0.7)
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}
	result, err := prov.Generate(ctx, provider.GenerateRequest{
		Prompt:       promptText,
		Model:        cfg.Model,
		Temperature:  temperature,
		MaxTokens:    cfg.MaxTokens,
		Timeout:      w.timeout,
		BaseURL:      cfg.BaseURL,
		APIKey:       cfg.APIKey,
		OutputSchema: prompt.OutputSchema,
	})
	if err != nil {
		return err
	}

	job.SetProgress(70, "Parsing...")
	w.saveProgress(job)

	sections, err := parser.Parse(result.Content)
	if err != nil {
		return fmt.Errorf("could not parse model response: %w", err)
	}

	job.SetProgress(90, "Saving...")
	w.saveProgress(job)

	now := time.Now().UTC()
	letter := &model.CoverLetter{
		ID:          uuid.New(),
		ProfileID:   job.ProfileID,
		Addressee:   sections.Addressee,
		Opening:     sections.Opening,
		AboutMe:     sections.AboutMe,
		WhyMe:       sections.WhyMe,
		WhyCompany:  sections.WhyCompany,
		State:       model.LetterGenerated,
		Provider:    prov.ID(),
		Model:       result.ModelUsed,
		GeneratedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := w.letters.SaveLetter(letter); err != nil {
		return fmt.Errorf("persist cover letter: %w", err)
	}

	job.CoverLetterID = &letter.ID
	if err := job.Transition(model.StatusCompleted); err != nil {
		return err
	}
	job.SetProgress(100, "Completed")
	if err := w.jobs.SaveJob(job); err != nil {
		return fmt.Errorf("persist completed job: %w", err)
	}
	log.Printf("job %s: completed, letter %s", job.ID, letter.ID)
	return nil
}

// resolveConfig merges job-level overrides over the stored global provider
// configuration. Job overrides win field by field.
func (w *Worker) resolveConfig(job *model.GenerationJob) (*provider.Config, error) {
	stored, err := w.settings.GetProviderConfig()
	if err != nil {
		return nil, fmt.Errorf("load provider configuration: %w", err)
	}

	cfg := provider.Config{}
	if stored != nil {
		cfg = *stored
	}
	if job.Config.Provider != "" {
		cfg.Provider = job.Config.Provider
	}
	if job.Config.Model != "" {
		cfg.Model = job.Config.Model
	}
	if job.Config.Temperature != nil {
		cfg.Temperature = job.Config.Temperature
	}
	if job.Config.MaxTokens > 0 {
		cfg.MaxTokens = job.Config.MaxTokens
	}

	if cfg.Provider == "" {
		return nil, fmt.Errorf("provider not configured: set one in settings before generating")
	}
	return &cfg, nil
}

func (w *Worker) failJob(job *model.GenerationJob, msg string) {
	job.Error = msg
	if err := job.Transition(model.StatusFailed); err != nil {
		log.Printf("job %s: %v", job.ID, err)
		return
	}
	if err := w.jobs.SaveJob(job); err != nil {
		log.Printf("job %s: persist failed state: %v", job.ID, err)
	}
	log.Printf("job %s: failed: %s", job.ID, msg)
}

// saveProgress persists informational progress only; an error here must
// not abort the job.
func (w *Worker) saveProgress(job *model.GenerationJob) {
	if err := w.jobs.SaveJob(job); err != nil {
		log.Printf("job %s: persist progress: %v", job.ID, err)
	}
}
