package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	DirectionCandidates = "candidates"
	DirectionJobs       = "jobs"

	CacheHit    = "hit"
	CacheMiss   = "miss"
	CacheError  = "error"
	CacheBypass = "bypass"
)

// Metrics holds the service collectors. A nil *Metrics records nothing, so
// tools that run without a registry can pass nil.
type Metrics struct {
	Scored       *prometheus.CounterVec
	OverallScore prometheus.Histogram
	RankDuration *prometheus.HistogramVec
	Cache        *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Scored: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talent_match_scored_total",
				Help: "Total number of candidate/job pairs scored, by recommendation tier",
			},
			[]string{"tier"},
		),
		OverallScore: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "talent_match_overall_score",
			Help:    "Distribution of overall match scores",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}),
		RankDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "talent_match_rank_duration_seconds",
				Help:    "Duration of ranking batches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"direction"},
		),
		Cache: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talent_match_cache_total",
				Help: "Ranking cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) ObserveScore(tier string, overall float64) {
	if m == nil {
		return
	}
	m.Scored.WithLabelValues(tier).Inc()
	m.OverallScore.Observe(overall)
}

func (m *Metrics) ObserveRank(direction string, started time.Time) {
	if m == nil {
		return
	}
	m.RankDuration.WithLabelValues(direction).Observe(time.Since(started).Seconds())
}

func (m *Metrics) CacheResult(result string) {
	if m == nil {
		return
	}
	m.Cache.WithLabelValues(result).Inc()
}
