package usecase

import (
	"errors"
	"fmt"

	"talent-match/internal/domain/application"
	"talent-match/internal/domain/matching"
	"talent-match/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrJobNotFound         = errors.New("job not found")
	ErrCandidateNotFound   = errors.New("candidate not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrInterviewNotFound   = errors.New("interview not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrIllegalTransition   = errors.New("illegal status transition")
	ErrStatusConflict      = errors.New("status changed concurrently")
	ErrInternal            = errors.New("internal error")
	ErrUnauthorized        = errors.New("unauthorized")
)

// mapRepoErr turns repository failures into usecase errors. Unknown
// failures are logged and collapsed into ErrInternal.
func mapRepoErr(log *zap.Logger, op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrJobNotFound):
		return ErrJobNotFound
	case errors.Is(err, repository.ErrCandidateNotFound):
		return ErrCandidateNotFound
	case errors.Is(err, repository.ErrApplicationNotFound):
		return ErrApplicationNotFound
	case errors.Is(err, repository.ErrInterviewNotFound):
		return ErrInterviewNotFound
	case errors.Is(err, repository.ErrStatusConflict):
		return ErrStatusConflict
	}
	log.Error("repository failure", zap.String("op", op), zap.Error(err))
	return ErrInternal
}

// mapDomainErr keeps the domain error in the chain so callers can still
// reach the offending field with errors.As.
func mapDomainErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, matching.ErrInvalidInput), errors.Is(err, application.ErrUnknownStatus):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, application.ErrIllegalTransition):
		return fmt.Errorf("%w: %w", ErrIllegalTransition, err)
	}
	return err
}
