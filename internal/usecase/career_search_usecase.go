package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"career-guidance/internal/domain/career"
	"career-guidance/internal/logger"
	"career-guidance/internal/repository"
	"career-guidance/internal/search"

	"go.uber.org/zap"
)

const (
	careerSearchPrefix = "careers:search:"
	careerLockPrefix   = "careers:lock:"
	minSearchResults   = 3
)

// CareersSearchKeyPattern matches every cached search page; the catalog
// import drops them all.
const CareersSearchKeyPattern = careerSearchPrefix + "*"

type CareerSearchParams struct {
	Term   string
	Limit  int
	Offset int
}

type CareerSearch struct {
	careers  repository.CareerRepository
	cache    SearchCache
	ttl      time.Duration
	lockWait time.Duration
	logger   *zap.Logger
}

func NewCareerSearch(careers repository.CareerRepository, cache SearchCache, ttl time.Duration, log *zap.Logger) *CareerSearch {
	return &CareerSearch{
		careers:  careers,
		cache:    cache,
		ttl:      ttl,
		lockWait: 300 * time.Millisecond,
		logger:   logger.OrNop(log).Named("career_search"),
	}
}

// Search matches the term and its synonyms against career titles and
// descriptions. Pages are cached; concurrent misses for the same page wait
// briefly on a lock so one caller fills the cache.
func (u *CareerSearch) Search(ctx context.Context, p CareerSearchParams) ([]career.Career, error) {
	if p.Limit == 0 {
		p.Limit = 20
	}
	if p.Limit < 0 || p.Limit > 100 || p.Offset < 0 {
		return nil, ErrInvalidInput
	}

	qc := search.ProcessQuery(p.Term)
	key := CareersSearchCacheKey(qc.Normalized, p.Limit, p.Offset)

	if out, ok := u.cached(ctx, key); ok {
		return out, nil
	}

	if u.cache != nil && cacheAvailable(u.cache) {
		ok, err := u.cache.SetIfNotExists(ctx, careerLockPrefix+strings.TrimPrefix(key, careerSearchPrefix), "1", 10*time.Second)
		if err == nil && !ok {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(u.lockWait):
			}
			if out, ok := u.cached(ctx, key); ok {
				return out, nil
			}
		}
	}

	rows, err := u.careers.Search(ctx, search.LikePatterns(qc.Variants), p.Limit, p.Offset)
	if err != nil {
		u.logger.Error("career search failed", zap.String("term", qc.Normalized), zap.Error(err))
		return nil, ErrInternal
	}

	if len(rows) < minSearchResults && p.Offset == 0 {
		if fb := search.FallbackFirstWord(qc.Normalized); fb != "" && fb != qc.Normalized {
			fq := search.ProcessQuery(fb)
			if wider, err := u.careers.Search(ctx, search.LikePatterns(fq.Variants), p.Limit, 0); err == nil && len(wider) > len(rows) {
				rows = wider
				qc.Variants = append(qc.Variants, fq.Variants...)
			}
		}
	}

	rows = search.RankCareers(rows, qc.Variants)

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, rows, u.ttl); err != nil {
			u.logger.Warn("career search cache write failed", zap.Error(err))
		}
	}
	return rows, nil
}

func (u *CareerSearch) cached(ctx context.Context, key string) ([]career.Career, bool) {
	if u.cache == nil {
		return nil, false
	}
	var out []career.Career
	hit, err := u.cache.GetJSON(ctx, key, &out)
	if err != nil || !hit {
		return nil, false
	}
	u.logger.Debug("career search cache hit", zap.String("key", key))
	return out, true
}

func CareersSearchCacheKey(normalized string, limit, offset int) string {
	b, _ := json.Marshal(struct {
		Term   string `json:"term"`
		Limit  int    `json:"limit"`
		Offset int    `json:"offset"`
	}{normalized, limit, offset})
	sum := sha256.Sum256(b)
	return careerSearchPrefix + hex.EncodeToString(sum[:])
}
