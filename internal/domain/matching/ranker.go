package matching

import (
	"context"
	"fmt"
	"sort"

	"talent-match/internal/pkg/workerpool"
)

const (
	DefaultMinScore   = 50
	DefaultMaxResults = 20
)

type RankOptions struct {
	MinScore   float64
	MaxResults int
	// Workers bounds scoring parallelism; 1 scores sequentially and 0 uses GOMAXPROCS.
	Workers int
}

func DefaultRankOptions() RankOptions {
	return RankOptions{MinScore: DefaultMinScore, MaxResults: DefaultMaxResults, Workers: 1}
}

// Normalize validates MinScore and fills in the default MaxResults.
func (o RankOptions) Normalize() (RankOptions, error) {
	if o.MinScore < 0 || o.MinScore > 100 {
		return o, invalidField("min_score", "must be within [0,100], got %v", o.MinScore)
	}
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	return o, nil
}

// Ranker orders evaluations for one job (or one candidate). Exclusion of
// already-linked pairs is the caller's job: pass only the snapshots to rank.
type Ranker struct {
	engine *Engine
}

func NewRanker(engine *Engine) *Ranker {
	return &Ranker{engine: engine}
}

func (r *Ranker) Engine() *Engine {
	return r.engine
}

func (r *Ranker) RankCandidates(ctx context.Context, job JobSnapshot, candidates []CandidateSnapshot, opts RankOptions) ([]MatchRecord, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	for i, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("candidate %d (%s): %w", i, c.ID, err)
		}
	}

	records := make([]MatchRecord, len(candidates))
	err = r.score(ctx, len(candidates), opts.Workers, func(i int) {
		records[i] = r.engine.evaluate(candidates[i], job)
	})
	if err != nil {
		return nil, err
	}
	return Select(records, opts), nil
}

func (r *Ranker) RankJobs(ctx context.Context, candidate CandidateSnapshot, jobs []JobSnapshot, opts RankOptions) ([]MatchRecord, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	for i, j := range jobs {
		if err := j.Validate(); err != nil {
			return nil, fmt.Errorf("job %d (%s): %w", i, j.ID, err)
		}
	}

	records := make([]MatchRecord, len(jobs))
	err = r.score(ctx, len(jobs), opts.Workers, func(i int) {
		records[i] = r.engine.evaluate(candidate, jobs[i])
	})
	if err != nil {
		return nil, err
	}
	return Select(records, opts), nil
}

func (r *Ranker) score(ctx context.Context, n, workers int, fn func(i int)) error {
	if workers == 1 || n < 2 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(i)
		}
		return nil
	}
	return workerpool.Each(ctx, workers, n, func(_ context.Context, i int) error {
		fn(i)
		return nil
	})
}

// Select drops records below opts.MinScore, sorts the rest by overall score
// descending and caps the result. Equal scores keep their input order.
func Select(records []MatchRecord, opts RankOptions) []MatchRecord {
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	out := make([]MatchRecord, 0, len(records))
	for _, rec := range records {
		if rec.OverallScore >= opts.MinScore {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OverallScore > out[j].OverallScore
	})
	if len(out) > opts.MaxResults {
		out = out[:opts.MaxResults]
	}
	return out
}
