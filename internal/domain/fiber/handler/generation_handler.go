package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fadilmartias/cover-gen/internal/dto"
	"github.com/fadilmartias/cover-gen/internal/middleware"
	"github.com/fadilmartias/cover-gen/internal/model"
	"github.com/fadilmartias/cover-gen/internal/response"
	"github.com/fadilmartias/cover-gen/internal/usecase"
	"github.com/fadilmartias/cover-gen/internal/util"
)

type GenerationHandler struct {
	uc *usecase.GenerationUsecase
}

func NewGenerationHandler(uc *usecase.GenerationUsecase) *GenerationHandler {
	return &GenerationHandler{uc: uc}
}

func (h *GenerationHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/generate", middleware.RateLimiter(10, 1*time.Minute), h.Generate)
	app.Get("/jobs/:id", h.GetJob)
	app.Get("/jobs", h.ListJobs)
	app.Delete("/jobs/:id", h.DeleteJob)
}

type generateRequest struct {
	ProfileID    uuid.UUID              `json:"profile_id"`
	JobPostingID uuid.UUID              `json:"job_posting_id"`
	Config       model.GenerationConfig `json:"config"`
}

func (h *GenerationHandler) Generate(c *fiber.Ctx) error {
	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.ProfileID == uuid.Nil || req.JobPostingID == uuid.Nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "profile_id and job_posting_id are required",
		})
	}

	job, err := h.uc.Submit(req.ProfileID, req.JobPostingID, req.Config)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: err.Error(),
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusAccepted,
		Message: "Generation job queued",
		Data:    dto.FromGenerationJob(job),
	})
}

func (h *GenerationHandler) GetJob(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job id",
		}, err)
	}

	job, err := h.uc.GetJob(id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "job not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get job",
		Data:    dto.FromGenerationJob(job),
	})
}

func (h *GenerationHandler) ListJobs(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Query("profile_id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "profile_id query parameter is required",
		}, err)
	}

	jobs, err := h.uc.ListJobs(profileID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list jobs",
		}, err)
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)
	pagination := response.NewPagination(page, pageSize, int64(len(jobs)))

	pageJobs := response.Page(jobs, page, pageSize)
	out := make([]dto.GenerationJobDTO, 0, len(pageJobs))
	for i := range pageJobs {
		out = append(out, dto.FromGenerationJob(&pageJobs[i]))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success list jobs",
		Data:       out,
		Pagination: pagination,
	})
}

// DeleteJob cancels a pending job; settled jobs are removed outright.
func (h *GenerationHandler) DeleteJob(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job id",
		}, err)
	}

	job, err := h.uc.GetJob(id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "job not found",
		}, err)
	}

	if job.Status == model.StatusPending {
		cancelled, err := h.uc.Cancel(id)
		if err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusConflict,
				Message: err.Error(),
			}, err)
		}
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Message: "Job cancelled",
			Data:    dto.FromGenerationJob(cancelled),
		})
	}

	if err := h.uc.DeleteJob(id); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusConflict,
			Message: err.Error(),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Job deleted",
	})
}
