package handler

import (
	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	matching usecase.MatchingUsecase
	ranking  usecase.RankingUsecase
}

func NewMatchHandler(matching usecase.MatchingUsecase, ranking usecase.RankingUsecase) *MatchHandler {
	return &MatchHandler{matching: matching, ranking: ranking}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	jobs := r.Group("/jobs")
	jobs.Post("/:job_id/candidates/:candidate_id/match", h.Evaluate)
	jobs.Get("/:job_id/candidates/:candidate_id/matches", h.History)
	jobs.Get("/:job_id/matching-candidates", h.MatchingCandidates)

	r.Get("/candidates/:candidate_id/matching-jobs", h.MatchingJobs)
}

func (h *MatchHandler) Evaluate(c fiber.Ctx) error {
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}
	candID, err := uuidParam(c, "candidate_id")
	if err != nil {
		return err
	}

	stored, err := h.matching.Evaluate(c.Context(), jobID, candID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.FromStoredMatch(stored))
}

func (h *MatchHandler) History(c fiber.Ctx) error {
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}
	candID, err := uuidParam(c, "candidate_id")
	if err != nil {
		return err
	}
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.InvalidField("limit", err.Error())
	}

	items, err := h.matching.History(c.Context(), jobID, candID, limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.List(c, dto.FromStoredMatches(items), response.Meta{Count: len(items), Limit: limit})
}

func (h *MatchHandler) MatchingCandidates(c fiber.Ctx) error {
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}
	params, err := parseRankParams(c)
	if err != nil {
		return err
	}

	recs, err := h.ranking.RankCandidates(c.Context(), jobID, params)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.List(c, dto.FromMatchRecords(recs), response.Meta{Count: len(recs), Limit: params.Limit, MinScore: params.MinScore})
}

func (h *MatchHandler) MatchingJobs(c fiber.Ctx) error {
	candID, err := uuidParam(c, "candidate_id")
	if err != nil {
		return err
	}
	params, err := parseRankParams(c)
	if err != nil {
		return err
	}

	recs, err := h.ranking.RankJobs(c.Context(), candID, params)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.List(c, dto.FromMatchRecords(recs), response.Meta{Count: len(recs), Limit: params.Limit, MinScore: params.MinScore})
}
