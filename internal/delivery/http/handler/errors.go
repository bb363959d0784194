package handler

import (
	"errors"

	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/domain/application"
	"talent-match/internal/domain/matching"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var schemaErr *usecase.SchemaError
	if errors.As(err, &schemaErr) {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Validation failed", schemaErr.Fields, err)
	}

	var verr *matching.ValidationError
	var terr *application.TransitionError
	switch {
	case errors.As(err, &verr):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Validation failed",
			middleware.FieldError{Field: verr.Field, Reason: verr.Reason}, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Validation failed", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrCandidateNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Candidate not found", nil, err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrInterviewNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Interview not found", nil, err)
	case errors.As(err, &terr):
		return middleware.NewAppError(fiber.StatusConflict, "Illegal status transition",
			middleware.TransitionData{From: terr.From, To: terr.To, Allowed: terr.Allowed}, err)
	case errors.Is(err, usecase.ErrStatusConflict):
		return middleware.NewAppError(fiber.StatusConflict, "Status changed concurrently", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
