package usecase

import (
	"context"

	"talent-match/internal/domain/matching"
	"talent-match/internal/logger"
	"talent-match/internal/metrics"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MatchingUsecase interface {
	// Evaluate scores one pair and persists a new record.
	Evaluate(ctx context.Context, jobID, candidateID uuid.UUID) (repository.StoredMatch, error)
	History(ctx context.Context, jobID, candidateID uuid.UUID, limit int) ([]repository.StoredMatch, error)
}

type Matching struct {
	engine     *matching.Engine
	jobs       repository.JobRepository
	candidates repository.CandidateRepository
	records    repository.MatchRecordRepository
	events     EventPublisher
	metrics    *metrics.Metrics
	log        *zap.Logger
}

func NewMatchingUsecase(
	engine *matching.Engine,
	jobs repository.JobRepository,
	candidates repository.CandidateRepository,
	records repository.MatchRecordRepository,
	events EventPublisher,
	m *metrics.Metrics,
	log *zap.Logger,
) *Matching {
	return &Matching{
		engine:     engine,
		jobs:       jobs,
		candidates: candidates,
		records:    records,
		events:     publisherOrNop(events),
		metrics:    m,
		log:        logger.OrNop(log),
	}
}

func (u *Matching) Evaluate(ctx context.Context, jobID, candidateID uuid.UUID) (repository.StoredMatch, error) {
	if jobID == uuid.Nil {
		return repository.StoredMatch{}, ErrJobNotFound
	}
	if candidateID == uuid.Nil {
		return repository.StoredMatch{}, ErrCandidateNotFound
	}

	job, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		return repository.StoredMatch{}, mapRepoErr(u.log, "jobs.FindByID", err)
	}
	cand, err := u.candidates.FindByID(ctx, candidateID)
	if err != nil {
		return repository.StoredMatch{}, mapRepoErr(u.log, "candidates.FindByID", err)
	}

	rec, err := u.engine.Evaluate(cand.Snapshot, job.Snapshot)
	if err != nil {
		return repository.StoredMatch{}, mapDomainErr(err)
	}

	stored, err := u.records.Insert(ctx, rec)
	if err != nil {
		return repository.StoredMatch{}, mapRepoErr(u.log, "records.Insert", err)
	}

	u.metrics.ObserveScore(string(rec.Recommendation), rec.OverallScore)
	u.events.MatchRecorded(stored.ID, jobID, candidateID, rec.OverallScore, string(rec.Recommendation))
	u.log.Info("match recorded",
		zap.String("record_id", stored.ID.String()),
		zap.String("job_id", jobID.String()),
		zap.String("candidate_id", candidateID.String()),
		zap.Float64("overall_score", rec.OverallScore),
		zap.String("recommendation", string(rec.Recommendation)),
	)
	return stored, nil
}

func (u *Matching) History(ctx context.Context, jobID, candidateID uuid.UUID, limit int) ([]repository.StoredMatch, error) {
	if jobID == uuid.Nil {
		return nil, ErrJobNotFound
	}
	if candidateID == uuid.Nil {
		return nil, ErrCandidateNotFound
	}
	if limit < 0 {
		return nil, ErrInvalidInput
	}

	out, err := u.records.ListHistory(ctx, jobID, candidateID, limit)
	if err != nil {
		return nil, mapRepoErr(u.log, "records.ListHistory", err)
	}
	return out, nil
}
