package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fadilmartias/cover-gen/internal/provider"
	"github.com/fadilmartias/cover-gen/internal/usecase"
	"github.com/fadilmartias/cover-gen/internal/util"
)

type SettingsHandler struct {
	uc *usecase.SettingsUsecase
}

func NewSettingsHandler(uc *usecase.SettingsUsecase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

func (h *SettingsHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/settings/provider", h.GetProvider)
	app.Put("/settings/provider", h.PutProvider)
	app.Post("/settings/provider/validate", h.ValidateProvider)
	app.Get("/settings/rate-limit", h.RateLimit)
}

func (h *SettingsHandler) GetProvider(c *fiber.Ctx) error {
	cfg, err := h.uc.GetProviderConfig()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to load provider settings",
		}, err)
	}
	if cfg == nil {
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Message: "No provider configured",
		})
	}
	// Never echo the stored key back to the client.
	cfg.APIKey = ""
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get provider settings",
		Data:    cfg,
	})
}

func (h *SettingsHandler) PutProvider(c *fiber.Ctx) error {
	var cfg provider.Config
	if err := c.BodyParser(&cfg); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if err := h.uc.PutProviderConfig(cfg); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: err.Error(),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success save provider settings",
	})
}

func (h *SettingsHandler) ValidateProvider(c *fiber.Ctx) error {
	var cfg provider.Config
	if err := c.BodyParser(&cfg); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	result, err := h.uc.Validate(c.UserContext(), cfg)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "validation failed",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Validation finished",
		Data:    result,
	})
}

func (h *SettingsHandler) RateLimit(c *fiber.Ctx) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get rate limit status",
		Data:    h.uc.RateLimit(),
	})
}
