package app

import (
	"context"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/database"
	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/domain/matching"
	"talent-match/internal/infrastructure/cache"
	"talent-match/internal/logger"
	"talent-match/internal/metrics"
	"talent-match/internal/pkg/jwt"
	"talent-match/internal/repository"
	"talent-match/internal/usecase"
	"talent-match/internal/ws"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

type Container struct {
	Config   config.Config
	Log      *zap.Logger
	DB       database.DB
	Cache    *cache.Redis
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Hub      *ws.Hub
	JWT      jwt.Service

	Matching     *usecase.Matching
	Ranking      *usecase.Ranking
	Scoring      *usecase.Scoring
	Applications *usecase.Applications
}

func NewContainer(cfg config.Config, log *zap.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log = logger.OrNop(log)

	db, err := dbpostgres.Connect(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	return NewContainerWithDB(ctx, cfg, log, db, cache.NewRedis(ctx, cfg.Redis, log))
}

// NewContainerWithDB wires the services around an already opened database
// and cache.
func NewContainerWithDB(ctx context.Context, cfg config.Config, log *zap.Logger, db database.DB, rc *cache.Redis) (*Container, error) {
	log = logger.OrNop(log)

	policy, err := cfg.Matching.Policy()
	if err != nil {
		return nil, err
	}
	engine, err := matching.NewEngine(policy)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	hub := ws.NewHub(log.Named("ws"))
	events := ws.NewNotifier(hub)

	jobs := repository.NewPostgresJobRepository(db)
	candidates := repository.NewPostgresCandidateRepository(db)
	records := repository.NewPostgresMatchRecordRepository(db)
	apps := repository.NewPostgresApplicationRepository(db)

	var rankCache usecase.RankingCache
	if rc.Available() {
		rankCache = rc
	}
	ranking := usecase.NewRankingUsecase(
		matching.NewRanker(engine),
		cfg.Matching.RankOptions(),
		jobs,
		candidates,
		rankCache,
		cfg.Redis.TTL,
		m,
		log.Named("ranking"),
	)
	scoring, err := usecase.NewScoringUsecase(engine, m, log.Named("scoring"))
	if err != nil {
		return nil, err
	}

	log.Info("matching engine ready", zap.String("method", engine.Method()))

	return &Container{
		Config:       cfg,
		Log:          log,
		DB:           db,
		Cache:        rc,
		Registry:     reg,
		Metrics:      m,
		Hub:          hub,
		JWT:          jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiresIn),
		Matching:     usecase.NewMatchingUsecase(engine, jobs, candidates, records, events, m, log.Named("matching")),
		Ranking:      ranking,
		Scoring:      scoring,
		Applications: usecase.NewApplicationUsecase(apps, ranking, events, log.Named("applications")),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Log.Warn("redis close failed", zap.Error(err))
		}
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
