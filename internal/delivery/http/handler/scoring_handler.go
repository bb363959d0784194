package handler

import (
	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ScoringHandler struct {
	uc usecase.ScoringUsecase
}

func NewScoringHandler(uc usecase.ScoringUsecase) *ScoringHandler {
	return &ScoringHandler{uc: uc}
}

func (h *ScoringHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/matching/score", h.Score)
}

// Score evaluates the posted snapshots without storing a record.
func (h *ScoringHandler) Score(c fiber.Ctx) error {
	rec, err := h.uc.Score(c.Context(), c.Body())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromMatchRecord(rec))
}
