package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"career-guidance/internal/delivery/http/handler"
	"career-guidance/internal/delivery/http/middleware"
	v1 "career-guidance/internal/delivery/http/routes/v1"
	"career-guidance/internal/domain/assessment"
	"career-guidance/internal/domain/career"
	"career-guidance/internal/domain/identity"
	"career-guidance/internal/domain/riasec"
	"career-guidance/internal/pkg/jwt"
	"career-guidance/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssessment struct {
	err         error
	submitCalls int
	lastIdent   identity.Context
	lastAnswers assessment.AnswerMap
}

func (f *fakeAssessment) Questions(context.Context, string) ([]assessment.Question, error) {
	return []assessment.Question{
		{ID: "q1", Prompt: "Build?", Category: riasec.Realistic, Order: 1, Options: []assessment.Option{{Value: 1, Label: "No"}}},
	}, nil
}

func (f *fakeAssessment) Session(_ context.Context, ident identity.Context, t string) (assessment.SessionState, error) {
	f.lastIdent = ident
	return assessment.SessionState{AssessmentType: t, Total: 1, Answers: assessment.AnswerMap{}}, f.err
}

func (f *fakeAssessment) Answer(_ context.Context, ident identity.Context, t, _ string, _ int) (assessment.SessionState, error) {
	f.lastIdent = ident
	return assessment.SessionState{AssessmentType: t, Total: 1}, f.err
}

func (f *fakeAssessment) Advance(context.Context, identity.Context, string) (assessment.SessionState, error) {
	return assessment.SessionState{}, f.err
}

func (f *fakeAssessment) Retreat(context.Context, identity.Context, string) (assessment.SessionState, error) {
	return assessment.SessionState{}, f.err
}

func (f *fakeAssessment) Submit(_ context.Context, ident identity.Context, t string, answers assessment.AnswerMap) (assessment.Result, error) {
	f.submitCalls++
	f.lastIdent = ident
	f.lastAnswers = answers
	if f.err != nil && !errors.Is(f.err, usecase.ErrHistoryNotUpdated) {
		return assessment.Result{}, f.err
	}
	return assessment.Result{ID: uuid.New(), UserID: ident.UserID, AssessmentType: t, Scores: riasec.NewScoreVector()}, f.err
}

func (f *fakeAssessment) InvalidateCatalog(_ context.Context, ident identity.Context, _ string) error {
	if !ident.IsAdmin {
		return usecase.ErrForbidden
	}
	return nil
}

func (f *fakeAssessment) History(context.Context, identity.Context, int, int) ([]assessment.Result, error) {
	return nil, f.err
}

func (f *fakeAssessment) Result(context.Context, identity.Context, uuid.UUID) (assessment.Result, error) {
	return assessment.Result{}, usecase.ErrNotFound
}

type fakeCareers struct{ got usecase.CareerSearchParams }

func (f *fakeCareers) Search(_ context.Context, p usecase.CareerSearchParams) ([]career.Career, error) {
	f.got = p
	return []career.Career{{ID: "nurse", Title: "Nurse", Categories: []riasec.Category{riasec.Social}}}, nil
}

const testSecret = "test-secret"

func newTestApp(t *testing.T, uc *fakeAssessment, careers *fakeCareers) (*fiber.App, *jwt.HMACService) {
	t.Helper()
	v := jwt.NewHMACService(testSecret, "career-guidance", "admin")

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	reg := &Registry{
		Health: handler.NewHealthHandler(nil, nil),
		V1: v1.Handlers{
			Assessment: handler.NewAssessmentHandler(uc),
			Results:    handler.NewResultHandler(uc),
			Careers:    handler.NewCareerHandler(careers),
		},
		Auth:          middleware.NewAuthMiddleware(v),
		Notifications: func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) },
	}
	reg.Register(app)
	return app, v
}

func token(t *testing.T, v *jwt.HMACService, sub string, roles ...string) string {
	t.Helper()
	tok, err := v.GenerateAccessToken(sub, sub+"@example.com", sub, roles, time.Hour)
	require.NoError(t, err)
	return tok
}

type envelope struct {
	Status   int             `json:"status"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
	Warnings []string        `json:"warnings"`
}

func do(t *testing.T, app *fiber.App, method, path, tok, body string) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func TestSubmitWithoutTokenIsUnauthorized(t *testing.T) {
	uc := &fakeAssessment{}
	app, _ := newTestApp(t, uc, &fakeCareers{})

	status, env := do(t, app, http.MethodPost, "/api/v1/assessments/riasec/session/submit", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, http.StatusUnauthorized, env.Status)
	assert.Zero(t, uc.submitCalls)

	status, _ = do(t, app, http.MethodPost, "/api/v1/assessments/riasec/session/submit", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Zero(t, uc.submitCalls)
}

func TestQuestionsArePublic(t *testing.T) {
	app, _ := newTestApp(t, &fakeAssessment{}, &fakeCareers{})

	status, env := do(t, app, http.MethodGet, "/api/v1/assessments/riasec/questions", "", "")
	require.Equal(t, http.StatusOK, status)

	var qs []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &qs))
	require.Len(t, qs, 1)
	assert.Equal(t, "Realistic", qs[0]["category_name"])
}

func TestSubmitPassesIdentityAndAnswers(t *testing.T) {
	uc := &fakeAssessment{}
	app, v := newTestApp(t, uc, &fakeCareers{})

	status, env := do(t, app, http.MethodPost, "/api/v1/assessments/riasec/session/submit", token(t, v, "u-1"), `{"answers":{"q1":4}}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Empty(t, env.Warnings)
	assert.Equal(t, "u-1", uc.lastIdent.UserID)
	assert.Equal(t, assessment.AnswerMap{"q1": 4}, uc.lastAnswers)
}

func TestSubmitFailureMapping(t *testing.T) {
	cases := []struct {
		err      error
		status   int
		warnings bool
	}{
		{err: fmt.Errorf("%w: history", usecase.ErrHistoryNotUpdated), status: http.StatusCreated, warnings: true},
		{err: usecase.ErrResultNotSaved, status: http.StatusServiceUnavailable},
		{err: assessment.ErrSessionCompleted, status: http.StatusConflict},
		{err: usecase.ErrInternal, status: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			app, v := newTestApp(t, &fakeAssessment{err: tc.err}, &fakeCareers{})
			status, env := do(t, app, http.MethodPost, "/api/v1/assessments/riasec/session/submit", token(t, v, "u-1"), "")
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.warnings, len(env.Warnings) > 0)
			if tc.status == http.StatusServiceUnavailable {
				assert.Contains(t, env.Message, "submit again")
			}
		})
	}
}

func TestAnswerErrors(t *testing.T) {
	app, v := newTestApp(t, &fakeAssessment{err: assessment.ErrInvalidAnswerValue}, &fakeCareers{})
	tok := token(t, v, "u-1")

	status, _ := do(t, app, http.MethodPost, "/api/v1/assessments/riasec/session/answers", tok, `{"question_id":"q1","value":9}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = do(t, app, http.MethodPost, "/api/v1/assessments/riasec/session/answers", tok, `{"value":1}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAnswerProgressNotSavedIsAWarning(t *testing.T) {
	app, v := newTestApp(t, &fakeAssessment{err: assessment.ErrProgressNotSaved}, &fakeCareers{})

	status, env := do(t, app, http.MethodPost, "/api/v1/assessments/riasec/session/answers", token(t, v, "u-1"), `{"question_id":"q1","value":1}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, env.Warnings, 1)
}

func TestInvalidateCacheRequiresAdmin(t *testing.T) {
	app, v := newTestApp(t, &fakeAssessment{}, &fakeCareers{})

	status, _ := do(t, app, http.MethodDelete, "/api/v1/assessments/riasec/cache", token(t, v, "u-1"), "")
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = do(t, app, http.MethodDelete, "/api/v1/assessments/riasec/cache", token(t, v, "boss", "admin"), "")
	assert.Equal(t, http.StatusOK, status)
}

func TestCareerSearchQueryParams(t *testing.T) {
	careers := &fakeCareers{}
	app, v := newTestApp(t, &fakeAssessment{}, careers)
	tok := token(t, v, "u-1")

	status, _ := do(t, app, http.MethodGet, "/api/v1/careers?q=nurse&limit=5&offset=10", tok, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, usecase.CareerSearchParams{Term: "nurse", Limit: 5, Offset: 10}, careers.got)

	status, _ = do(t, app, http.MethodGet, "/api/v1/careers?limit=abc", tok, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestResultNotFound(t *testing.T) {
	app, v := newTestApp(t, &fakeAssessment{}, &fakeCareers{})

	status, _ := do(t, app, http.MethodGet, "/api/v1/results/"+uuid.NewString(), token(t, v, "u-1"), "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestNotificationsRequireToken(t *testing.T) {
	app, v := newTestApp(t, &fakeAssessment{}, &fakeCareers{})

	status, _ := do(t, app, http.MethodGet, "/ws/notifications", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	req := httptest.NewRequest(http.MethodGet, "/ws/notifications?token="+token(t, v, "u-1"), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestHealthWithoutDatabaseIsUnavailable(t *testing.T) {
	app, _ := newTestApp(t, &fakeAssessment{}, &fakeCareers{})

	status, _ := do(t, app, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
}
