package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"career-guidance/internal/domain/assessment"
)

// CacheProgressStore keeps one owner's session progress as two cache
// entries, the answer map and the index. A bypassed cache fails loads and
// saves with ErrCacheUnavailable.
type CacheProgressStore struct {
	cache KeyValueCache
	owner string
	ttl   time.Duration
}

var _ assessment.ProgressStore = (*CacheProgressStore)(nil)

func NewCacheProgressStore(cache KeyValueCache, owner string, ttl time.Duration) *CacheProgressStore {
	return &CacheProgressStore{cache: cache, owner: strings.TrimSpace(owner), ttl: ttl}
}

func (s *CacheProgressStore) LoadProgress(ctx context.Context, assessmentType string) (assessment.Progress, bool, error) {
	if s.cache == nil {
		return assessment.Progress{}, false, nil
	}
	if !cacheAvailable(s.cache) {
		return assessment.Progress{}, false, ErrCacheUnavailable
	}

	var answers assessment.AnswerMap
	hitAnswers, err := s.cache.GetJSON(ctx, ProgressAnswersKey(s.owner, assessmentType), &answers)
	if err != nil {
		return assessment.Progress{}, false, err
	}
	var idx int
	hitIndex, err := s.cache.GetJSON(ctx, ProgressIndexKey(s.owner, assessmentType), &idx)
	if err != nil {
		return assessment.Progress{}, false, err
	}
	if !hitAnswers && !hitIndex {
		return assessment.Progress{}, false, nil
	}
	if answers == nil {
		answers = assessment.AnswerMap{}
	}
	return assessment.Progress{Index: idx, Answers: answers}, true, nil
}

func (s *CacheProgressStore) SaveProgress(ctx context.Context, assessmentType string, p assessment.Progress) error {
	if s.cache == nil {
		return nil
	}
	if !cacheAvailable(s.cache) {
		return ErrCacheUnavailable
	}
	answers := p.Answers
	if answers == nil {
		answers = assessment.AnswerMap{}
	}
	if err := s.cache.SetJSON(ctx, ProgressAnswersKey(s.owner, assessmentType), answers, s.ttl); err != nil {
		return err
	}
	return s.cache.SetJSON(ctx, ProgressIndexKey(s.owner, assessmentType), p.Index, s.ttl)
}

func (s *CacheProgressStore) ClearProgress(ctx context.Context, assessmentType string) error {
	if s.cache == nil {
		return nil
	}
	return errors.Join(
		s.cache.Delete(ctx, ProgressAnswersKey(s.owner, assessmentType)),
		s.cache.Delete(ctx, ProgressIndexKey(s.owner, assessmentType)),
	)
}
