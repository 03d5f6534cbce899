package usecase

import (
	"context"
	"time"
)

// KeyValueCache is satisfied by the Redis cache and the local file store.
type KeyValueCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Caches that can run without a backend report it through Available.
type availability interface {
	Available() bool
}

func cacheAvailable(c any) bool {
	if a, ok := c.(availability); ok {
		return a.Available()
	}
	return true
}

type SearchCache interface {
	KeyValueCache
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

func CatalogQuestionsKey(assessmentType string) string {
	return "catalog:" + assessmentType + ":questions"
}

func CatalogFetchedAtKey(assessmentType string) string {
	return "catalog:" + assessmentType + ":fetched_at"
}

func ProgressAnswersKey(owner, assessmentType string) string {
	return "progress:" + owner + ":" + assessmentType + ":answers"
}

func ProgressIndexKey(owner, assessmentType string) string {
	return "progress:" + owner + ":" + assessmentType + ":index"
}
