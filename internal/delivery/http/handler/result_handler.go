package handler

import (
	"context"

	"career-guidance/internal/delivery/http/dto"
	"career-guidance/internal/delivery/http/middleware"
	"career-guidance/internal/domain/assessment"
	"career-guidance/internal/domain/identity"
	"career-guidance/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ResultUsecase interface {
	History(ctx context.Context, ident identity.Context, limit, offset int) ([]assessment.Result, error)
	Result(ctx context.Context, ident identity.Context, id uuid.UUID) (assessment.Result, error)
}

type ResultHandler struct {
	uc ResultUsecase
}

func NewResultHandler(uc ResultUsecase) *ResultHandler {
	return &ResultHandler{uc: uc}
}

func (h *ResultHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/results", h.HandleHistory)
	r.Get("/results/:id", h.HandleGet)
}

func (h *ResultHandler) HandleHistory(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return badRequest(err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return badRequest(err)
	}

	items, err := h.uc.History(c.Context(), middleware.IdentityFrom(c), limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}
	out := make([]dto.ResultResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewResultResponse(it))
	}
	return response.Success(c, fiber.StatusOK, "success", out)
}

func (h *ResultHandler) HandleGet(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(err)
	}
	res, err := h.uc.Result(c.Context(), middleware.IdentityFrom(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewResultResponse(res))
}
