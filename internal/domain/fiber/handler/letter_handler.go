package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fadilmartias/cover-gen/internal/response"
	"github.com/fadilmartias/cover-gen/internal/usecase"
	"github.com/fadilmartias/cover-gen/internal/util"
)

type LetterHandler struct {
	uc *usecase.LetterUsecase
}

func NewLetterHandler(uc *usecase.LetterUsecase) *LetterHandler {
	return &LetterHandler{uc: uc}
}

func (h *LetterHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/letters/:id", h.GetLetter)
	app.Get("/letters", h.ListLetters)
	app.Put("/letters/:id", h.UpdateLetter)
	app.Post("/letters/:id/export", h.ExportLetter)
}

func (h *LetterHandler) GetLetter(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid letter id",
		}, err)
	}
	letter, err := h.uc.Get(id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "cover letter not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get cover letter",
		Data:    letter,
	})
}

func (h *LetterHandler) ListLetters(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Query("profile_id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "profile_id query parameter is required",
		}, err)
	}
	letters, err := h.uc.ListByProfile(profileID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list cover letters",
		}, err)
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success list cover letters",
		Data:       response.Page(letters, page, pageSize),
		Pagination: response.NewPagination(page, pageSize, int64(len(letters))),
	})
}

func (h *LetterHandler) UpdateLetter(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid letter id",
		}, err)
	}
	var update usecase.LetterUpdate
	if err := c.BodyParser(&update); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	letter, err := h.uc.Update(id, update)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: err.Error(),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update cover letter",
		Data:    letter,
	})
}

// ExportLetter streams the rendered PDF as a download.
func (h *LetterHandler) ExportLetter(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid letter id",
		}, err)
	}
	content, filename, err := h.uc.Export(c.UserContext(), id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: err.Error(),
		}, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(content)
}
