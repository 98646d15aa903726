package usecase

import (
	"context"
	"math"

	"github.com/fadilmartias/cover-gen/internal/provider"
	"github.com/fadilmartias/cover-gen/internal/ratelimit"
	"github.com/fadilmartias/cover-gen/internal/repository"
)

type SettingsUsecase struct {
	settings *repository.ProviderSettingsRepository
	registry *provider.Registry
	limiter  *ratelimit.Limiter
}

func NewSettingsUsecase(settings *repository.ProviderSettingsRepository, registry *provider.Registry, limiter *ratelimit.Limiter) *SettingsUsecase {
	return &SettingsUsecase{settings: settings, registry: registry, limiter: limiter}
}

func (uc *SettingsUsecase) GetProviderConfig() (*provider.Config, error) {
	return uc.settings.GetProviderConfig()
}

func (uc *SettingsUsecase) PutProviderConfig(cfg provider.Config) error {
	if _, err := uc.registry.Get(cfg.Provider); err != nil {
		return err
	}
	return uc.settings.PutProviderConfig(cfg)
}

// Validate runs the provider's own reachability/credential check.
func (uc *SettingsUsecase) Validate(ctx context.Context, cfg provider.Config) (*provider.ValidationResult, error) {
	p, err := uc.registry.Get(cfg.Provider)
	if err != nil {
		return &provider.ValidationResult{Valid: false, Error: err.Error()}, nil
	}
	return p.ValidateConfig(ctx, cfg)
}

type RateLimitStatus struct {
	Remaining       int `json:"remaining"`
	NextSlotSeconds int `json:"next_slot_seconds"`
}

func (uc *SettingsUsecase) RateLimit() RateLimitStatus {
	return RateLimitStatus{
		Remaining:       uc.limiter.Remaining(),
		NextSlotSeconds: int(math.Ceil(uc.limiter.TimeUntilNextSlot().Seconds())),
	}
}
