package usecase

import (
	"context"
	"sort"
	"time"

	"career-guidance/internal/domain/assessment"
	"career-guidance/internal/logger"
	"career-guidance/internal/metrics"
	"career-guidance/internal/repository"

	"go.uber.org/zap"
)

const DefaultCatalogFreshness = 24 * time.Hour

// CatalogLoader serves question catalogs from cache while they are fresh,
// from the repository otherwise, and from FallbackQuestions when the
// repository fails or has nothing.
type CatalogLoader struct {
	questions repository.QuestionRepository
	cache     KeyValueCache
	freshness time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

func NewCatalogLoader(questions repository.QuestionRepository, cache KeyValueCache, freshness time.Duration, log *zap.Logger) *CatalogLoader {
	if freshness <= 0 {
		freshness = DefaultCatalogFreshness
	}
	return &CatalogLoader{
		questions: questions,
		cache:     cache,
		freshness: freshness,
		logger:    logger.OrNop(log).Named("catalog"),
		now:       time.Now,
	}
}

// Load never fails. Questions come back ordered by their Order field.
func (l *CatalogLoader) Load(ctx context.Context, assessmentType string) []assessment.Question {
	if qs, ok := l.fromCache(ctx, assessmentType); ok {
		metrics.CatalogLoads.WithLabelValues(assessmentType, metrics.SourceCache).Inc()
		return qs
	}

	if l.questions != nil {
		qs, err := l.questions.ListByAssessmentType(ctx, assessmentType)
		switch {
		case err != nil:
			l.logger.Warn("catalog fetch failed, serving fallback",
				zap.String("assessment_type", assessmentType), zap.Error(err))
		case len(qs) == 0:
			l.logger.Warn("catalog empty, serving fallback", zap.String("assessment_type", assessmentType))
		default:
			sortQuestions(qs)
			l.store(ctx, assessmentType, qs)
			metrics.CatalogLoads.WithLabelValues(assessmentType, metrics.SourceRemote).Inc()
			return qs
		}
	}

	metrics.CatalogLoads.WithLabelValues(assessmentType, metrics.SourceFallback).Inc()
	return FallbackQuestions(assessmentType)
}

// Invalidate drops the cached catalog so the next Load hits the repository.
func (l *CatalogLoader) Invalidate(ctx context.Context, assessmentType string) error {
	if l.cache == nil {
		return nil
	}
	if err := l.cache.Delete(ctx, CatalogQuestionsKey(assessmentType)); err != nil {
		return err
	}
	return l.cache.Delete(ctx, CatalogFetchedAtKey(assessmentType))
}

func (l *CatalogLoader) fromCache(ctx context.Context, assessmentType string) ([]assessment.Question, bool) {
	if l.cache == nil {
		return nil, false
	}

	var fetchedAt time.Time
	hit, err := l.cache.GetJSON(ctx, CatalogFetchedAtKey(assessmentType), &fetchedAt)
	if err != nil {
		l.logger.Debug("catalog timestamp read failed", zap.Error(err))
		return nil, false
	}
	if !hit || l.now().Sub(fetchedAt) >= l.freshness {
		return nil, false
	}

	var qs []assessment.Question
	hit, err = l.cache.GetJSON(ctx, CatalogQuestionsKey(assessmentType), &qs)
	if err != nil {
		l.logger.Debug("catalog read failed", zap.Error(err))
		return nil, false
	}
	if !hit || len(qs) == 0 {
		return nil, false
	}
	sortQuestions(qs)
	return qs, true
}

func (l *CatalogLoader) store(ctx context.Context, assessmentType string, qs []assessment.Question) {
	if l.cache == nil {
		return
	}
	if err := l.cache.SetJSON(ctx, CatalogQuestionsKey(assessmentType), qs, l.freshness); err != nil {
		l.logger.Warn("catalog cache write failed", zap.Error(err))
		return
	}
	if err := l.cache.SetJSON(ctx, CatalogFetchedAtKey(assessmentType), l.now().UTC(), l.freshness); err != nil {
		l.logger.Warn("catalog timestamp write failed", zap.Error(err))
	}
}

func sortQuestions(qs []assessment.Question) {
	sort.SliceStable(qs, func(i, j int) bool { return qs[i].Order < qs[j].Order })
}
