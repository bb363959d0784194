package usecase

import (
	"context"
	"errors"
	"time"

	"talent-match/internal/domain/matching"
	"talent-match/internal/logger"
	"talent-match/internal/metrics"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RankParams overrides the configured ranking defaults. Nil or zero values
// keep the default.
type RankParams struct {
	MinScore *float64
	Limit    int
}

type RankingUsecase interface {
	// RankCandidates ranks active candidates that have not applied to the job.
	RankCandidates(ctx context.Context, jobID uuid.UUID, params RankParams) ([]matching.MatchRecord, error)
	// RankJobs ranks open jobs for one candidate.
	RankJobs(ctx context.Context, candidateID uuid.UUID, params RankParams) ([]matching.MatchRecord, error)
	InvalidateJob(ctx context.Context, jobID uuid.UUID) error
}

type Ranking struct {
	ranker     *matching.Ranker
	defaults   matching.RankOptions
	jobs       repository.JobRepository
	candidates repository.CandidateRepository
	cache      RankingCache
	cacheTTL   time.Duration
	metrics    *metrics.Metrics
	log        *zap.Logger
}

func NewRankingUsecase(
	ranker *matching.Ranker,
	defaults matching.RankOptions,
	jobs repository.JobRepository,
	candidates repository.CandidateRepository,
	cache RankingCache,
	cacheTTL time.Duration,
	m *metrics.Metrics,
	log *zap.Logger,
) *Ranking {
	return &Ranking{
		ranker:     ranker,
		defaults:   defaults,
		jobs:       jobs,
		candidates: candidates,
		cache:      cache,
		cacheTTL:   cacheTTL,
		metrics:    m,
		log:        logger.OrNop(log),
	}
}

func (u *Ranking) options(params RankParams) (matching.RankOptions, error) {
	opts := u.defaults
	if params.MinScore != nil {
		opts.MinScore = *params.MinScore
	}
	if params.Limit < 0 {
		return opts, mapDomainErr(&matching.ValidationError{Field: "limit", Reason: "must not be negative"})
	}
	if params.Limit > 0 {
		opts.MaxResults = params.Limit
	}
	opts, err := opts.Normalize()
	if err != nil {
		return opts, mapDomainErr(err)
	}
	return opts, nil
}

func (u *Ranking) RankCandidates(ctx context.Context, jobID uuid.UUID, params RankParams) ([]matching.MatchRecord, error) {
	if jobID == uuid.Nil {
		return nil, ErrJobNotFound
	}
	opts, err := u.options(params)
	if err != nil {
		return nil, err
	}

	job, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, mapRepoErr(u.log, "jobs.FindByID", err)
	}
	cands, err := u.candidates.ListActiveWithoutApplication(ctx, jobID)
	if err != nil {
		return nil, mapRepoErr(u.log, "candidates.ListActiveWithoutApplication", err)
	}

	snaps := make([]matching.CandidateSnapshot, 0, len(cands))
	for _, c := range cands {
		snaps = append(snaps, c.Snapshot)
	}

	key := RankingCacheKey(metrics.DirectionCandidates, jobID, job.Snapshot,
		populationFingerprint(snaps), u.ranker.Engine().Method(), opts)

	return u.cached(ctx, key, metrics.DirectionCandidates, func() ([]matching.MatchRecord, error) {
		return u.ranker.RankCandidates(ctx, job.Snapshot, snaps, opts)
	})
}

func (u *Ranking) RankJobs(ctx context.Context, candidateID uuid.UUID, params RankParams) ([]matching.MatchRecord, error) {
	if candidateID == uuid.Nil {
		return nil, ErrCandidateNotFound
	}
	opts, err := u.options(params)
	if err != nil {
		return nil, err
	}

	cand, err := u.candidates.FindByID(ctx, candidateID)
	if err != nil {
		return nil, mapRepoErr(u.log, "candidates.FindByID", err)
	}
	jobs, err := u.jobs.ListOpen(ctx)
	if err != nil {
		return nil, mapRepoErr(u.log, "jobs.ListOpen", err)
	}

	snaps := make([]matching.JobSnapshot, 0, len(jobs))
	for _, j := range jobs {
		snaps = append(snaps, j.Snapshot)
	}

	key := RankingCacheKey(metrics.DirectionJobs, candidateID, cand.Snapshot,
		populationFingerprint(snaps), u.ranker.Engine().Method(), opts)

	return u.cached(ctx, key, metrics.DirectionJobs, func() ([]matching.MatchRecord, error) {
		return u.ranker.RankJobs(ctx, cand.Snapshot, snaps, opts)
	})
}

func (u *Ranking) cached(ctx context.Context, key, direction string, rank func() ([]matching.MatchRecord, error)) ([]matching.MatchRecord, error) {
	if u.cache != nil {
		var hit []matching.MatchRecord
		ok, err := u.cache.GetJSON(ctx, key, &hit)
		switch {
		case err != nil:
			u.metrics.CacheResult(metrics.CacheError)
			u.log.Warn("ranking cache read failed", zap.String("key", key), zap.Error(err))
		case ok:
			u.metrics.CacheResult(metrics.CacheHit)
			return hit, nil
		default:
			u.metrics.CacheResult(metrics.CacheMiss)
		}
	} else {
		u.metrics.CacheResult(metrics.CacheBypass)
	}

	started := time.Now()
	out, err := rank()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, mapDomainErr(err)
	}
	u.metrics.ObserveRank(direction, started)

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, out, u.cacheTTL); err != nil {
			u.log.Warn("ranking cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	u.log.Debug("ranking computed",
		zap.String("direction", direction),
		zap.Int("results", len(out)),
		zap.Duration("took", time.Since(started)),
	)
	return out, nil
}

func (u *Ranking) InvalidateJob(ctx context.Context, jobID uuid.UUID) error {
	if u.cache == nil || jobID == uuid.Nil {
		return nil
	}
	return u.cache.DeleteByPattern(ctx, RankingInvalidatePattern(metrics.DirectionCandidates, jobID))
}
