package handler

import (
	"fmt"
	"strconv"
	"strings"

	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func uuidParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}

func parseRankParams(c fiber.Ctx) (usecase.RankParams, error) {
	var p usecase.RankParams

	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return p, middleware.InvalidField("limit", err.Error())
	}
	p.Limit = limit

	if s := strings.TrimSpace(c.Query("min_score")); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return p, middleware.InvalidField("min_score", "must be a number")
		}
		p.MinScore = &v
	}
	return p, nil
}
