package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fadilmartias/cover-gen/internal/model"
	"github.com/fadilmartias/cover-gen/internal/repository"
	"github.com/fadilmartias/cover-gen/internal/util"
)

type ProfileHandler struct {
	profiles *repository.ProfileRepository
	postings *repository.JobPostingRepository
}

func NewProfileHandler(profiles *repository.ProfileRepository, postings *repository.JobPostingRepository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, postings: postings}
}

func (h *ProfileHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/profiles", h.SaveProfile)
	app.Get("/profiles/:id", h.GetProfile)
	app.Get("/profiles", h.ListProfiles)
	app.Post("/job-postings", h.SavePosting)
	app.Get("/job-postings/:id", h.GetPosting)
}

func (h *ProfileHandler) SaveProfile(c *fiber.Ctx) error {
	var profile model.Profile
	if err := c.BodyParser(&profile); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if err := h.profiles.Save(&profile); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to save profile",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success save profile",
		Data:    profile,
	})
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid profile id",
		}, err)
	}
	profile, err := h.profiles.FindByID(id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "profile not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get profile",
		Data:    profile,
	})
}

func (h *ProfileHandler) ListProfiles(c *fiber.Ctx) error {
	profiles, err := h.profiles.List()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list profiles",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success list profiles",
		Data:    profiles,
	})
}

func (h *ProfileHandler) SavePosting(c *fiber.Ctx) error {
	var posting model.JobPosting
	if err := c.BodyParser(&posting); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if posting.ID == uuid.Nil {
		posting.ID = uuid.New()
	}
	// Reuse a previously extracted posting for the same origin.
	if posting.OriginKey != "" {
		if cached, err := h.postings.FindByOriginKey(posting.OriginKey); err == nil {
			return util.SuccessResponse(c, util.SuccessResponseFormat{
				Message: "Posting already extracted",
				Data:    cached,
			})
		}
	}
	if err := h.postings.Save(&posting); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to save job posting",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success save job posting",
		Data:    posting,
	})
}

func (h *ProfileHandler) GetPosting(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job posting id",
		}, err)
	}
	posting, err := h.postings.FindByID(id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "job posting not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get job posting",
		Data:    posting,
	})
}
