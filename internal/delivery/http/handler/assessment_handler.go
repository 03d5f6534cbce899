package handler

import (
	"context"
	"errors"

	"career-guidance/internal/delivery/http/dto"
	"career-guidance/internal/delivery/http/middleware"
	"career-guidance/internal/domain/assessment"
	"career-guidance/internal/domain/identity"
	"career-guidance/internal/pkg/response"
	"career-guidance/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AssessmentUsecase interface {
	Questions(ctx context.Context, assessmentType string) ([]assessment.Question, error)
	Session(ctx context.Context, ident identity.Context, assessmentType string) (assessment.SessionState, error)
	Answer(ctx context.Context, ident identity.Context, assessmentType, questionID string, value int) (assessment.SessionState, error)
	Advance(ctx context.Context, ident identity.Context, assessmentType string) (assessment.SessionState, error)
	Retreat(ctx context.Context, ident identity.Context, assessmentType string) (assessment.SessionState, error)
	Submit(ctx context.Context, ident identity.Context, assessmentType string, answers assessment.AnswerMap) (assessment.Result, error)
	InvalidateCatalog(ctx context.Context, ident identity.Context, assessmentType string) error
}

const (
	warnProgressNotSaved = "progress not saved; it will be lost if you leave"
	warnHistoryNotSaved  = "result saved but not yet listed in your history"
)

type AssessmentHandler struct {
	uc AssessmentUsecase
}

func NewAssessmentHandler(uc AssessmentUsecase) *AssessmentHandler {
	return &AssessmentHandler{uc: uc}
}

func (h *AssessmentHandler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/assessments/:type/questions", h.HandleQuestions)
}

func (h *AssessmentHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/assessments/:type")
	g.Get("/session", h.HandleSession)
	g.Post("/session/answers", h.HandleAnswer)
	g.Post("/session/advance", h.HandleAdvance)
	g.Post("/session/retreat", h.HandleRetreat)
	g.Post("/session/submit", h.HandleSubmit)
	g.Delete("/cache", h.HandleInvalidateCache)
}

func (h *AssessmentHandler) HandleQuestions(c fiber.Ctx) error {
	qs, err := h.uc.Questions(c.Context(), c.Params("type"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewQuestionResponses(qs))
}

func (h *AssessmentHandler) HandleSession(c fiber.Ctx) error {
	st, err := h.uc.Session(c.Context(), middleware.IdentityFrom(c), c.Params("type"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewSessionResponse(st))
}

func (h *AssessmentHandler) HandleAnswer(c fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	if req.QuestionID == "" {
		return badRequest(errors.New("question_id is required"))
	}
	st, err := h.uc.Answer(c.Context(), middleware.IdentityFrom(c), c.Params("type"), req.QuestionID, req.Value)
	return h.sessionResponse(c, st, err)
}

func (h *AssessmentHandler) HandleAdvance(c fiber.Ctx) error {
	st, err := h.uc.Advance(c.Context(), middleware.IdentityFrom(c), c.Params("type"))
	return h.sessionResponse(c, st, err)
}

func (h *AssessmentHandler) HandleRetreat(c fiber.Ctx) error {
	st, err := h.uc.Retreat(c.Context(), middleware.IdentityFrom(c), c.Params("type"))
	return h.sessionResponse(c, st, err)
}

func (h *AssessmentHandler) sessionResponse(c fiber.Ctx, st assessment.SessionState, err error) error {
	if errors.Is(err, assessment.ErrProgressNotSaved) {
		return response.SuccessWithWarnings(c, fiber.StatusOK, "success", dto.NewSessionResponse(st), warnProgressNotSaved)
	}
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewSessionResponse(st))
}

// HandleSubmit accepts an optional answer map merged into the saved session.
func (h *AssessmentHandler) HandleSubmit(c fiber.Ctx) error {
	var req dto.SubmitRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return badRequest(err)
		}
	}

	res, err := h.uc.Submit(c.Context(), middleware.IdentityFrom(c), c.Params("type"), assessment.AnswerMap(req.Answers))
	if errors.Is(err, usecase.ErrHistoryNotUpdated) {
		return response.SuccessWithWarnings(c, fiber.StatusCreated, "result saved", dto.NewResultResponse(res), warnHistoryNotSaved)
	}
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "result saved", dto.NewResultResponse(res))
}

func (h *AssessmentHandler) HandleInvalidateCache(c fiber.Ctx) error {
	if err := h.uc.InvalidateCatalog(c.Context(), middleware.IdentityFrom(c), c.Params("type")); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "catalog cache cleared", nil)
}
