package usecase

import (
	"context"
	"testing"
	"time"

	"career-guidance/internal/domain/assessment"
	"career-guidance/internal/domain/career"
	"career-guidance/internal/domain/identity"
	"career-guidance/internal/domain/notification"
	"career-guidance/internal/domain/riasec"
	"career-guidance/internal/infrastructure/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type serviceFixture struct {
	svc      *AssessmentService
	cache    *memCache
	careers  *fakeCareerRepo
	results  *fakeResultRepo
	history  *fakeHistoryRepo
	notifier *recordingNotifier
}

var alice = identity.Context{UserID: "alice", Email: "alice@example.com"}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	log := zaptest.NewLogger(t)
	cache := newMemCache()
	results := newFakeResultRepo()
	history := newFakeHistoryRepo(results)
	careers := &fakeCareerRepo{careers: []career.Career{
		{ID: "mech", Title: "Mechanic", Categories: []riasec.Category{riasec.Realistic}},
		{ID: "sci", Title: "Scientist", Categories: []riasec.Category{riasec.Investigative, riasec.Realistic}},
		{ID: "art", Title: "Illustrator", Categories: []riasec.Category{riasec.Artistic}},
		{ID: "clerk", Title: "Clerk", Categories: []riasec.Category{riasec.Conventional}},
	}}
	notifier := newRecordingNotifier()

	svc := NewAssessmentService(AssessmentDeps{
		Catalog:     NewCatalogLoader(&fakeQuestionRepo{questions: sixQuestions()}, cache, time.Hour, log),
		Progress:    cache,
		Careers:     careers,
		Results:     results,
		Recorder:    NewResultRecorder(results, history, log),
		Notifier:    notifier,
		Logger:      log,
		ProgressTTL: time.Hour,
	})
	return &serviceFixture{svc: svc, cache: cache, careers: careers, results: results, history: history, notifier: notifier}
}

func TestAssessmentService_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)

	st, err := f.svc.Session(ctx, alice, "")
	require.NoError(t, err)
	assert.Equal(t, assessment.TypeRIASEC, st.AssessmentType)
	assert.Equal(t, 0, st.Index)
	assert.Equal(t, 6, st.Total)

	st, err = f.svc.Answer(ctx, alice, "riasec", "q-r", 5)
	require.NoError(t, err)
	assert.Equal(t, assessment.AnswerMap{"q-r": 5}, st.Answers)

	st, err = f.svc.Advance(ctx, alice, "riasec")
	require.NoError(t, err)
	assert.Equal(t, 1, st.Index)

	st, err = f.svc.Session(ctx, alice, "RIASEC")
	require.NoError(t, err)
	assert.Equal(t, 1, st.Index)
	assert.Equal(t, assessment.AnswerMap{"q-r": 5}, st.Answers)

	st, err = f.svc.Retreat(ctx, alice, "riasec")
	require.NoError(t, err)
	assert.Equal(t, 0, st.Index)

	st, err = f.svc.Retreat(ctx, alice, "riasec")
	require.NoError(t, err)
	assert.Equal(t, 0, st.Index)
}

func TestAssessmentService_InvalidAnswerLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)

	_, err := f.svc.Answer(ctx, alice, "riasec", "q-r", 3)
	require.NoError(t, err)

	_, err = f.svc.Answer(ctx, alice, "riasec", "q-r", 9)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, assessment.ErrInvalidAnswerValue)

	_, err = f.svc.Answer(ctx, alice, "riasec", "nope", 3)
	assert.ErrorIs(t, err, assessment.ErrUnknownQuestion)

	st, err := f.svc.Session(ctx, alice, "riasec")
	require.NoError(t, err)
	assert.Equal(t, assessment.AnswerMap{"q-r": 3}, st.Answers)
}

func TestAssessmentService_RejectsBadType(t *testing.T) {
	fx := newServiceFixture(t)
	_, err := fx.svc.Questions(context.Background(), "../etc")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = fx.svc.Session(context.Background(), alice, "riasec v2")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAssessmentService_SubmitHappyPath(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t)

	_, err := fx.svc.Answer(ctx, alice, "riasec", "q-r", 5)
	require.NoError(t, err)

	res, err := fx.svc.Submit(ctx, alice, "riasec", assessment.AnswerMap{"q-i": 4})
	require.NoError(t, err)

	assert.Equal(t, 50, res.Scores[riasec.Realistic])
	assert.Equal(t, 40, res.Scores[riasec.Investigative])
	assert.Equal(t, 0, res.Scores[riasec.Social])
	assert.Equal(t, 9, res.TotalScore)
	assert.Equal(t, "alice", res.UserID)

	require.Len(t, res.Recommendations, 3)
	assert.Equal(t, "sci", res.Recommendations[0].CareerID)
	assert.Equal(t, 90, res.Recommendations[0].MatchScore)
	assert.Equal(t, "mech", res.Recommendations[1].CareerID)
	assert.Equal(t, "art", res.Recommendations[2].CareerID)
	assert.Equal(t, []riasec.Category{riasec.Realistic, riasec.Investigative, riasec.Artistic}, fx.careers.lastCats)
	assert.Equal(t, 5, fx.careers.lastLimit)

	assert.False(t, fx.cache.has(ProgressAnswersKey("alice", "riasec")))
	assert.Equal(t, []uuid.UUID{res.ID}, fx.history.entries["alice"])
	assert.Equal(t, []string{notification.TypeResultSaved}, fx.notifier.types("alice"))

	got, err := fx.svc.Result(ctx, alice, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)

	hist, err := fx.svc.History(ctx, alice, 10, 0)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestAssessmentService_SubmitWithoutUser(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t)

	_, err := fx.svc.Submit(ctx, identity.Context{}, "riasec", assessment.AnswerMap{"q-r": 5})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, err, assessment.ErrUnauthenticated)
	assert.Empty(t, fx.results.results)
}

func TestAssessmentService_FinishWithoutUserKeepsSessionActive(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t)

	s, err := fx.svc.OpenSession(ctx, "terminal", "riasec")
	require.NoError(t, err)
	require.NoError(t, s.RecordAnswer(ctx, "q-r", 4))

	_, err = fx.svc.Finish(ctx, identity.Context{}, s)
	assert.ErrorIs(t, err, assessment.ErrUnauthenticated)
	assert.False(t, s.Completed())
	assert.Empty(t, fx.results.results)
}

func TestAssessmentService_SubmitResultWriteFailureKeepsProgress(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t)
	fx.results.err = errBoom

	_, err := fx.svc.Submit(ctx, alice, "riasec", assessment.AnswerMap{"q-r": 5, "q-s": 2})
	assert.ErrorIs(t, err, ErrResultNotSaved)
	assert.Equal(t, []string{notification.TypeResultNotSaved}, fx.notifier.types("alice"))

	st, err := fx.svc.Session(ctx, alice, "riasec")
	require.NoError(t, err)
	assert.Equal(t, assessment.AnswerMap{"q-r": 5, "q-s": 2}, st.Answers)

	fx.results.err = nil
	res, err := fx.svc.Submit(ctx, alice, "riasec", nil)
	require.NoError(t, err)
	assert.Equal(t, 7, res.TotalScore)
}

func TestAssessmentService_SubmitHistoryFailureWarns(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t)
	fx.history.err = errBoom

	res, err := fx.svc.Submit(ctx, alice, "riasec", assessment.AnswerMap{"q-c": 5})
	assert.ErrorIs(t, err, ErrHistoryNotUpdated)
	assert.NotEqual(t, uuid.Nil, res.ID)
	assert.Equal(t, []string{notification.TypeHistoryNotSaved}, fx.notifier.types("alice"))
	assert.False(t, fx.cache.has(ProgressAnswersKey("alice", "riasec")))

	got, err := fx.svc.Result(ctx, alice, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)
}

func TestAssessmentService_SubmitCareerLookupFailure(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t)
	fx.careers.err = errBoom

	_, err := fx.svc.Submit(ctx, alice, "riasec", assessment.AnswerMap{"q-r": 5})
	assert.ErrorIs(t, err, ErrInternal)
	assert.True(t, fx.cache.has(ProgressAnswersKey("alice", "riasec")))
	assert.Empty(t, fx.results.results)
}

func TestAssessmentService_SubmitRejectsInvalidAnswers(t *testing.T) {
	fx := newServiceFixture(t)
	_, err := fx.svc.Submit(context.Background(), alice, "riasec", assessment.AnswerMap{"q-r": 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, fx.results.results)
}

func TestAssessmentService_ResultAccess(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t)

	res, err := fx.svc.Submit(ctx, alice, "riasec", assessment.AnswerMap{"q-r": 5})
	require.NoError(t, err)

	bob := identity.Context{UserID: "bob"}
	_, err = fx.svc.Result(ctx, bob, res.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	admin := identity.Context{UserID: "root", IsAdmin: true}
	_, err = fx.svc.Result(ctx, admin, res.ID)
	assert.NoError(t, err)

	_, err = fx.svc.Result(ctx, alice, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = fx.svc.History(ctx, identity.Context{}, 10, 0)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAssessmentService_InvalidateCatalogAdminOnly(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t)

	_, err := fx.svc.Questions(ctx, "riasec")
	require.NoError(t, err)
	require.True(t, fx.cache.has(CatalogQuestionsKey("riasec")))

	assert.ErrorIs(t, fx.svc.InvalidateCatalog(ctx, alice, "riasec"), ErrForbidden)
	assert.True(t, fx.cache.has(CatalogQuestionsKey("riasec")))

	admin := identity.Context{UserID: "root", IsAdmin: true}
	require.NoError(t, fx.svc.InvalidateCatalog(ctx, admin, "riasec"))
	assert.False(t, fx.cache.has(CatalogQuestionsKey("riasec")))
}

func TestAssessmentService_ProgressWriteFailureStillReturnsState(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t)
	_, err := fx.svc.Questions(ctx, "riasec")
	require.NoError(t, err)
	fx.cache.setErr = errBoom

	st, err := fx.svc.Answer(ctx, alice, "riasec", "q-r", 2)
	assert.ErrorIs(t, err, assessment.ErrProgressNotSaved)
	assert.Equal(t, assessment.AnswerMap{"q-r": 2}, st.Answers)
}

func TestAssessmentService_BypassedRedisReportsProgressNotSaved(t *testing.T) {
	ctx := context.Background()
	log := zaptest.NewLogger(t)
	bypassed := cache.NewRedisFromClient(nil, log, time.Hour)
	require.False(t, bypassed.Available())

	results := newFakeResultRepo()
	svc := NewAssessmentService(AssessmentDeps{
		Catalog:     NewCatalogLoader(&fakeQuestionRepo{questions: sixQuestions()}, bypassed, time.Hour, log),
		Progress:    bypassed,
		Careers:     &fakeCareerRepo{},
		Results:     results,
		Recorder:    NewResultRecorder(results, newFakeHistoryRepo(results), log),
		Logger:      log,
		ProgressTTL: time.Hour,
	})

	st, err := svc.Answer(ctx, alice, "riasec", "q-r", 4)
	assert.ErrorIs(t, err, assessment.ErrProgressNotSaved)
	assert.ErrorIs(t, err, ErrCacheUnavailable)
	assert.Equal(t, assessment.AnswerMap{"q-r": 4}, st.Answers)

	st, err = svc.Advance(ctx, alice, "riasec")
	assert.ErrorIs(t, err, assessment.ErrProgressNotSaved)
	assert.Equal(t, 1, st.Index)

	// the catalog still loads through the bypass
	qs, err := svc.Questions(ctx, "riasec")
	require.NoError(t, err)
	assert.Len(t, qs, 6)
}
