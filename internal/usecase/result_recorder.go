package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"career-guidance/internal/domain/assessment"
	"career-guidance/internal/domain/recommendation"
	"career-guidance/internal/domain/riasec"
	"career-guidance/internal/logger"
	"career-guidance/internal/metrics"
	"career-guidance/internal/repository"
	"career-guidance/internal/worker"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResultRecorder writes a Result and then references it from the user's
// history. The two writes are not joined in a transaction; see Record.
type ResultRecorder struct {
	results repository.ResultRepository
	history repository.HistoryRepository
	logger  *zap.Logger
	now     func() time.Time
	newID   func() uuid.UUID
}

func NewResultRecorder(results repository.ResultRepository, history repository.HistoryRepository, log *zap.Logger) *ResultRecorder {
	return &ResultRecorder{
		results: results,
		history: history,
		logger:  logger.OrNop(log).Named("recorder"),
		now:     time.Now,
		newID:   uuid.New,
	}
}

// Record persists the result. A failed result write returns
// ErrResultNotSaved and nothing else happens. A failed history append
// returns the saved Result together with ErrHistoryNotUpdated; the append
// is not retried here and ReconcileHistory repairs it later.
func (r *ResultRecorder) Record(
	ctx context.Context,
	userID, assessmentType string,
	scores riasec.ScoreVector,
	answers assessment.AnswerMap,
	recs []recommendation.Entry,
) (assessment.Result, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return assessment.Result{}, assessment.ErrUnauthenticated
	}
	if recs == nil {
		recs = []recommendation.Entry{}
	}

	res := assessment.Result{
		ID:              r.newID(),
		UserID:          userID,
		AssessmentType:  assessmentType,
		Scores:          scores.Complete(),
		Answers:         answers.Clone(),
		TotalScore:      answers.Total(),
		Recommendations: recs,
		CompletedAt:     r.now().UTC(),
	}

	if err := r.results.Create(ctx, res); err != nil {
		metrics.PersistenceFailures.WithLabelValues(metrics.StageResultWrite).Inc()
		r.logger.Error("result write failed", zap.String("user_id", userID), zap.Error(err))
		return assessment.Result{}, fmt.Errorf("%w: %v", ErrResultNotSaved, err)
	}
	metrics.ResultsRecorded.WithLabelValues(assessmentType).Inc()

	if err := r.history.Append(ctx, userID, res.ID, res.CompletedAt); err != nil {
		metrics.PersistenceFailures.WithLabelValues(metrics.StageHistoryAppend).Inc()
		r.logger.Warn("history append failed, result orphaned",
			zap.String("user_id", userID), zap.String("result_id", res.ID.String()), zap.Error(err))
		return res, fmt.Errorf("%w: %v", ErrHistoryNotUpdated, err)
	}
	return res, nil
}

// ReconcileHistory appends every result of userID that no history entry
// references and returns the ids it appended.
func (r *ResultRecorder) ReconcileHistory(ctx context.Context, userID string) ([]uuid.UUID, error) {
	orphans, err := r.history.ListOrphans(ctx, userID)
	if err != nil {
		return nil, err
	}
	fixed := make([]uuid.UUID, 0, len(orphans))
	for _, id := range orphans {
		if err := r.history.Append(ctx, userID, id, r.now().UTC()); err != nil {
			return fixed, fmt.Errorf("append %s: %w", id, err)
		}
		fixed = append(fixed, id)
	}
	if len(fixed) > 0 {
		r.logger.Info("history reconciled", zap.String("user_id", userID), zap.Int("appended", len(fixed)))
	}
	return fixed, nil
}

// ReconcileOptions bounds a ReconcileAll run.
type ReconcileOptions struct {
	Limit         int
	Workers       int
	RatePerSecond int
}

// ReconcileAll runs ReconcileHistory for up to Limit users with orphans,
// Workers at a time. Per-user failures are logged and joined into the
// returned error; counts cover every user that was attempted.
func (r *ResultRecorder) ReconcileAll(ctx context.Context, opts ReconcileOptions) (map[string]int, error) {
	users, err := r.history.ListUsersWithOrphans(ctx, opts.Limit)
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		counts = make(map[string]int, len(users))
	)
	pool := worker.NewPool(opts.Workers, len(users))
	pool.SetRateLimit(opts.RatePerSecond)
	out := pool.Run(ctx)
	for _, u := range users {
		pool.Submit(u, func(ctx context.Context) error {
			fixed, err := r.ReconcileHistory(ctx, u)
			mu.Lock()
			counts[u] = len(fixed)
			mu.Unlock()
			return err
		})
	}
	pool.Close()

	var errs []error
	for res := range out {
		if res.Err != nil {
			r.logger.Error("history reconcile failed", zap.String("user_id", res.Key), zap.Error(res.Err))
			errs = append(errs, fmt.Errorf("%s: %w", res.Key, res.Err))
		}
	}
	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}

	mu.Lock()
	defer mu.Unlock()
	return counts, errors.Join(errs...)
}
