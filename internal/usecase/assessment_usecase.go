package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"career-guidance/internal/domain/assessment"
	"career-guidance/internal/domain/identity"
	"career-guidance/internal/domain/notification"
	"career-guidance/internal/domain/recommendation"
	"career-guidance/internal/domain/scoring"
	"career-guidance/internal/logger"
	"career-guidance/internal/metrics"
	"career-guidance/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AssessmentDeps struct {
	Catalog  *CatalogLoader
	Progress KeyValueCache
	Careers  repository.CareerRepository
	Results  repository.ResultRepository
	Recorder *ResultRecorder
	Notifier notification.Notifier
	Logger   *zap.Logger

	DefaultType         string
	ProgressTTL         time.Duration
	RecommendationLimit int
}

// AssessmentService is the command surface front ends call: one method per
// user action, each taking the caller's identity explicitly.
type AssessmentService struct {
	catalog     *CatalogLoader
	progress    KeyValueCache
	careers     repository.CareerRepository
	results     repository.ResultRepository
	recorder    *ResultRecorder
	notifier    notification.Notifier
	logger      *zap.Logger
	defaultType string
	progressTTL time.Duration
	recLimit    int
	now         func() time.Time
}

func NewAssessmentService(d AssessmentDeps) *AssessmentService {
	if d.Notifier == nil {
		d.Notifier = notification.Nop{}
	}
	if strings.TrimSpace(d.DefaultType) == "" {
		d.DefaultType = assessment.TypeRIASEC
	}
	if d.RecommendationLimit <= 0 {
		d.RecommendationLimit = recommendation.DefaultLimit
	}
	return &AssessmentService{
		catalog:     d.Catalog,
		progress:    d.Progress,
		careers:     d.Careers,
		results:     d.Results,
		recorder:    d.Recorder,
		notifier:    d.Notifier,
		logger:      logger.OrNop(d.Logger).Named("assessment"),
		defaultType: d.DefaultType,
		progressTTL: d.ProgressTTL,
		recLimit:    d.RecommendationLimit,
		now:         time.Now,
	}
}

func (u *AssessmentService) normalizeType(assessmentType string) (string, error) {
	t := strings.ToLower(strings.TrimSpace(assessmentType))
	if t == "" {
		return u.defaultType, nil
	}
	for _, r := range t {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return "", fmt.Errorf("%w: assessment type %q", ErrInvalidInput, assessmentType)
		}
	}
	return t, nil
}

func (u *AssessmentService) Questions(ctx context.Context, assessmentType string) ([]assessment.Question, error) {
	t, err := u.normalizeType(assessmentType)
	if err != nil {
		return nil, err
	}
	return u.catalog.Load(ctx, t), nil
}

// OpenSession loads the catalog and restores owner's saved progress. A
// progress read failure is logged and the session starts fresh.
func (u *AssessmentService) OpenSession(ctx context.Context, owner, assessmentType string) (*assessment.Session, error) {
	t, err := u.normalizeType(assessmentType)
	if err != nil {
		return nil, err
	}
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, ErrUnauthorized
	}

	qs := u.catalog.Load(ctx, t)
	s := assessment.NewSession(t, qs, NewCacheProgressStore(u.progress, owner, u.progressTTL))
	if err := s.Restore(ctx); err != nil {
		u.logger.Warn("progress restore failed, starting fresh",
			zap.String("owner", owner), zap.String("assessment_type", t), zap.Error(err))
	}
	return s, nil
}

func (u *AssessmentService) Session(ctx context.Context, ident identity.Context, assessmentType string) (assessment.SessionState, error) {
	if !ident.Authenticated() {
		return assessment.SessionState{}, ErrUnauthorized
	}
	s, err := u.OpenSession(ctx, ident.UserID, assessmentType)
	if err != nil {
		return assessment.SessionState{}, err
	}
	return s.Snapshot(), nil
}

// Answer records one answer. When only the durable write fails the new
// state is returned with an error wrapping assessment.ErrProgressNotSaved.
func (u *AssessmentService) Answer(ctx context.Context, ident identity.Context, assessmentType, questionID string, value int) (assessment.SessionState, error) {
	return u.mutate(ctx, ident, assessmentType, func(s *assessment.Session) error {
		return s.RecordAnswer(ctx, questionID, value)
	})
}

func (u *AssessmentService) Advance(ctx context.Context, ident identity.Context, assessmentType string) (assessment.SessionState, error) {
	return u.mutate(ctx, ident, assessmentType, func(s *assessment.Session) error {
		return s.Advance(ctx)
	})
}

func (u *AssessmentService) Retreat(ctx context.Context, ident identity.Context, assessmentType string) (assessment.SessionState, error) {
	return u.mutate(ctx, ident, assessmentType, func(s *assessment.Session) error {
		return s.Retreat(ctx)
	})
}

func (u *AssessmentService) mutate(ctx context.Context, ident identity.Context, assessmentType string, fn func(*assessment.Session) error) (assessment.SessionState, error) {
	if !ident.Authenticated() {
		return assessment.SessionState{}, ErrUnauthorized
	}
	s, err := u.OpenSession(ctx, ident.UserID, assessmentType)
	if err != nil {
		return assessment.SessionState{}, err
	}
	if err := fn(s); err != nil {
		if errors.Is(err, assessment.ErrProgressNotSaved) {
			u.logger.Warn("progress not saved", zap.String("user_id", ident.UserID), zap.Error(err))
			return s.Snapshot(), err
		}
		return assessment.SessionState{}, mapSessionError(err)
	}
	return s.Snapshot(), nil
}

// Submit merges answers into the caller's saved session and finishes it.
// See Finish for the failure contract.
func (u *AssessmentService) Submit(ctx context.Context, ident identity.Context, assessmentType string, answers assessment.AnswerMap) (assessment.Result, error) {
	if !ident.Authenticated() {
		return assessment.Result{}, fmt.Errorf("%w: %w", ErrUnauthorized, assessment.ErrUnauthenticated)
	}
	s, err := u.OpenSession(ctx, ident.UserID, assessmentType)
	if err != nil {
		return assessment.Result{}, err
	}
	for id, v := range answers {
		if err := s.RecordAnswer(ctx, id, v); err != nil && !errors.Is(err, assessment.ErrProgressNotSaved) {
			return assessment.Result{}, mapSessionError(err)
		}
	}
	return u.Finish(ctx, ident, s)
}

// Finish completes s, scores it, ranks careers and records the result.
//
// Without a user the session stays active and nothing is written. When the
// result write fails the session is reopened, saved progress is kept and
// the error wraps ErrResultNotSaved. When only the history append fails the
// Result is returned with an error wrapping ErrHistoryNotUpdated.
func (u *AssessmentService) Finish(ctx context.Context, ident identity.Context, s *assessment.Session) (assessment.Result, error) {
	start := u.now()
	answers, err := s.Complete(ident.UserID)
	if err != nil {
		if errors.Is(err, assessment.ErrUnauthenticated) {
			return assessment.Result{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		return assessment.Result{}, mapSessionError(err)
	}

	scores := scoring.Score(s.Questions(), answers)
	top := recommendation.TopCategories(scores, recommendation.TopCategoryN)

	candidates, err := u.careers.ListByCategories(ctx, top, u.recLimit)
	if err != nil {
		s.Reopen()
		u.logger.Error("career lookup failed", zap.String("user_id", ident.UserID), zap.Error(err))
		return assessment.Result{}, fmt.Errorf("%w: career lookup: %v", ErrInternal, err)
	}
	recs := recommendation.Recommend(scores, candidates, u.recLimit)

	res, err := u.recorder.Record(ctx, ident.UserID, s.AssessmentType(), scores, answers, recs)
	if err != nil && errors.Is(err, ErrResultNotSaved) {
		s.Reopen()
		u.notify(ident.UserID, notification.TypeResultNotSaved, notification.LevelError,
			"Your answers are saved but the result could not be stored. Please submit again.", uuid.Nil)
		return assessment.Result{}, err
	}
	if err != nil && !errors.Is(err, ErrHistoryNotUpdated) {
		s.Reopen()
		return assessment.Result{}, err
	}

	u.clearProgress(ctx, ident.UserID, s.AssessmentType())
	metrics.SubmitDuration.WithLabelValues(s.AssessmentType()).Observe(u.now().Sub(start).Seconds())

	if err != nil {
		u.notify(ident.UserID, notification.TypeHistoryNotSaved, notification.LevelWarning,
			"Your result was saved but is not listed in your history yet.", res.ID)
		return res, err
	}
	u.notify(ident.UserID, notification.TypeResultSaved, notification.LevelInfo, "Your result is ready.", res.ID)
	return res, nil
}

func (u *AssessmentService) History(ctx context.Context, ident identity.Context, limit, offset int) ([]assessment.Result, error) {
	if !ident.Authenticated() {
		return nil, ErrUnauthorized
	}
	if limit < 0 || offset < 0 {
		return nil, ErrInvalidInput
	}
	out, err := u.results.ListHistory(ctx, ident.UserID, limit, offset)
	if err != nil {
		u.logger.Error("history read failed", zap.String("user_id", ident.UserID), zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

// Result reads one result by id. Results stay readable by id even when no
// history entry references them.
func (u *AssessmentService) Result(ctx context.Context, ident identity.Context, id uuid.UUID) (assessment.Result, error) {
	if !ident.Authenticated() {
		return assessment.Result{}, ErrUnauthorized
	}
	res, err := u.results.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return assessment.Result{}, ErrNotFound
		}
		return assessment.Result{}, ErrInternal
	}
	if !ident.CanRead(res.UserID) {
		return assessment.Result{}, ErrForbidden
	}
	return res, nil
}

func (u *AssessmentService) InvalidateCatalog(ctx context.Context, ident identity.Context, assessmentType string) error {
	if !ident.Authenticated() {
		return ErrUnauthorized
	}
	if !ident.IsAdmin {
		return ErrForbidden
	}
	t, err := u.normalizeType(assessmentType)
	if err != nil {
		return err
	}
	return u.catalog.Invalidate(ctx, t)
}

func (u *AssessmentService) clearProgress(ctx context.Context, owner, assessmentType string) {
	store := NewCacheProgressStore(u.progress, owner, u.progressTTL)
	if err := store.ClearProgress(ctx, assessmentType); err != nil {
		u.logger.Warn("progress clear failed", zap.String("owner", owner), zap.Error(err))
	}
}

func (u *AssessmentService) notify(userID, typ string, level notification.Level, msg string, resultID uuid.UUID) {
	n := notification.Notification{
		Type:        typ,
		Level:       level,
		Message:     msg,
		Dismissable: true,
		Timestamp:   u.now().UTC(),
	}
	if resultID != uuid.Nil {
		n.ResultID = resultID.String()
	}
	u.notifier.Notify(userID, n)
}

func mapSessionError(err error) error {
	switch {
	case errors.Is(err, assessment.ErrInvalidAnswerValue),
		errors.Is(err, assessment.ErrUnknownQuestion),
		errors.Is(err, assessment.ErrSessionCompleted):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
