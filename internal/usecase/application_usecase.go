package usecase

import (
	"context"

	"talent-match/internal/domain/application"
	"talent-match/internal/logger"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApplicationUsecase interface {
	ChangeStatus(ctx context.Context, id uuid.UUID, status string) (repository.Application, error)
	// RecordInterviewResult stores the result and, for results that decide
	// the application, moves the application in the same transaction.
	RecordInterviewResult(ctx context.Context, interviewID uuid.UUID, result string) (repository.Interview, error)
}

type jobInvalidator interface {
	InvalidateJob(ctx context.Context, jobID uuid.UUID) error
}

type Applications struct {
	repo    repository.ApplicationRepository
	ranking jobInvalidator
	events  EventPublisher
	log     *zap.Logger
}

func NewApplicationUsecase(repo repository.ApplicationRepository, ranking jobInvalidator, events EventPublisher, log *zap.Logger) *Applications {
	return &Applications{
		repo:    repo,
		ranking: ranking,
		events:  publisherOrNop(events),
		log:     logger.OrNop(log),
	}
}

func (u *Applications) ChangeStatus(ctx context.Context, id uuid.UUID, status string) (repository.Application, error) {
	to, err := application.ParseStatus(status)
	if err != nil {
		return repository.Application{}, mapDomainErr(err)
	}

	app, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return repository.Application{}, mapRepoErr(u.log, "application.find", err)
	}
	from := app.Status
	if _, err := from.Transition(to); err != nil {
		return repository.Application{}, mapDomainErr(err)
	}

	updated, err := u.repo.UpdateStatus(ctx, id, from, to)
	if err != nil {
		return repository.Application{}, mapRepoErr(u.log, "application.update_status", err)
	}

	u.afterStatusChange(ctx, updated.ID, updated.JobID, from, to)
	return updated, nil
}

func (u *Applications) RecordInterviewResult(ctx context.Context, interviewID uuid.UUID, result string) (repository.Interview, error) {
	to, err := application.ParseInterviewResult(result)
	if err != nil {
		return repository.Interview{}, mapDomainErr(err)
	}

	iv, err := u.repo.FindInterview(ctx, interviewID)
	if err != nil {
		return repository.Interview{}, mapRepoErr(u.log, "interview.find", err)
	}
	if _, err := iv.Result.Transition(to); err != nil {
		return repository.Interview{}, mapDomainErr(err)
	}

	var change *repository.StatusChange
	var app repository.Application
	if next, ok := application.ApplicationStatusAfter(to, iv.Type); ok {
		app, err = u.repo.FindByID(ctx, iv.ApplicationID)
		if err != nil {
			return repository.Interview{}, mapRepoErr(u.log, "application.find", err)
		}
		if app.Status.CanTransition(next) {
			change = &repository.StatusChange{ApplicationID: app.ID, From: app.Status, To: next}
		} else {
			u.log.Info("interview result leaves application unchanged",
				zap.String("application_id", app.ID.String()),
				zap.String("status", string(app.Status)),
				zap.String("result", string(to)),
			)
		}
	}

	updated, err := u.repo.UpdateInterviewResult(ctx, interviewID, iv.Result, to, change)
	if err != nil {
		return repository.Interview{}, mapRepoErr(u.log, "interview.update_result", err)
	}

	if change != nil {
		u.afterStatusChange(ctx, app.ID, app.JobID, change.From, change.To)
	}
	return updated, nil
}

func (u *Applications) afterStatusChange(ctx context.Context, appID, jobID uuid.UUID, from, to application.Status) {
	u.events.ApplicationStatusChanged(appID, jobID, string(from), string(to))

	// Ranking excludes candidates with an application, so the job's cached
	// rankings are stale once one moves.
	if u.ranking != nil {
		if err := u.ranking.InvalidateJob(ctx, jobID); err != nil {
			u.log.Warn("ranking cache invalidation failed", zap.String("job_id", jobID.String()), zap.Error(err))
		}
	}

	u.log.Info("application status changed",
		zap.String("application_id", appID.String()),
		zap.String("job_id", jobID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.Bool("closed", to.Terminal()),
	)
}
