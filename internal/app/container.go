package app

import (
	"context"
	"errors"
	"time"

	"career-guidance/internal/config"
	"career-guidance/internal/database"
	dbpostgres "career-guidance/internal/database/postgres"
	"career-guidance/internal/infrastructure/cache"
	"career-guidance/internal/logger"
	"career-guidance/internal/pkg/jwt"
	"career-guidance/internal/repository"
	"career-guidance/internal/usecase"
	"career-guidance/internal/ws"

	"go.uber.org/zap"
)

// Container wires repositories and use cases around one database pool and
// one cache client.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	JWT    *jwt.HMACService

	Questions repository.QuestionRepository
	Careers   repository.CareerRepository
	Results   repository.ResultRepository
	History   repository.HistoryRepository

	Catalog      *usecase.CatalogLoader
	Recorder     *usecase.ResultRecorder
	Assessment   *usecase.AssessmentService
	CareerSearch *usecase.CareerSearch
}

type options struct {
	progress usecase.KeyValueCache
	catalog  usecase.KeyValueCache
	noRedis  bool
}

type Option func(*options)

// WithLocalCache serves catalog and progress from kv instead of Redis, for
// single-user front ends.
func WithLocalCache(kv usecase.KeyValueCache) Option {
	return func(o *options) {
		o.progress = kv
		o.catalog = kv
		o.noRedis = true
	}
}

func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger, opts ...Option) (*Container, error) {
	log = logger.OrNop(log)
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:    cfg,
		Logger:    log,
		DB:        db,
		Hub:       ws.NewHub(log),
		JWT:       jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AdminRole),
		Questions: repository.NewPostgresQuestionRepository(db),
		Careers:   repository.NewPostgresCareerRepository(db),
		Results:   repository.NewPostgresResultRepository(db),
		History:   repository.NewPostgresHistoryRepository(db),
	}

	var (
		progress  usecase.KeyValueCache = o.progress
		catalogKV usecase.KeyValueCache = o.catalog
		searchKV  usecase.SearchCache
	)
	if !o.noRedis {
		c.Cache = cache.NewRedis(cfg.Redis, log)
		progress, catalogKV, searchKV = c.Cache, c.Cache, c.Cache
	}

	c.Catalog = usecase.NewCatalogLoader(c.Questions, catalogKV, cfg.Assessment.CatalogFreshness, log)
	c.Recorder = usecase.NewResultRecorder(c.Results, c.History, log)
	c.Assessment = usecase.NewAssessmentService(usecase.AssessmentDeps{
		Catalog:             c.Catalog,
		Progress:            progress,
		Careers:             c.Careers,
		Results:             c.Results,
		Recorder:            c.Recorder,
		Notifier:            c.Hub,
		Logger:              log,
		DefaultType:         cfg.Assessment.DefaultType,
		ProgressTTL:         cfg.Assessment.ProgressTTL,
		RecommendationLimit: cfg.Assessment.RecommendationLimit,
	})
	c.CareerSearch = usecase.NewCareerSearch(c.Careers, searchKV, cfg.Redis.TTL, log)
	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
