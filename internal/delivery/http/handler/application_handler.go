package handler

import (
	"strings"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Patch("/applications/:application_id/status", h.ChangeStatus)
	r.Patch("/interviews/:interview_id/result", h.RecordInterviewResult)
}

func (h *ApplicationHandler) ChangeStatus(c fiber.Ctx) error {
	id, err := uuidParam(c, "application_id")
	if err != nil {
		return err
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}
	if strings.TrimSpace(req.Status) == "" {
		return middleware.InvalidField("status", "is required")
	}

	app, err := h.uc.ChangeStatus(c.Context(), id, strings.TrimSpace(req.Status))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplication(app))
}

func (h *ApplicationHandler) RecordInterviewResult(c fiber.Ctx) error {
	id, err := uuidParam(c, "interview_id")
	if err != nil {
		return err
	}

	var req dto.RecordInterviewResultRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}
	if strings.TrimSpace(req.Result) == "" {
		return middleware.InvalidField("result", "is required")
	}

	iv, err := h.uc.RecordInterviewResult(c.Context(), id, strings.TrimSpace(req.Result))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromInterview(iv))
}
