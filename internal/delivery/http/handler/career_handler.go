package handler

import (
	"context"

	"career-guidance/internal/delivery/http/dto"
	"career-guidance/internal/domain/career"
	"career-guidance/internal/pkg/response"
	"career-guidance/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CareerSearchUsecase interface {
	Search(ctx context.Context, p usecase.CareerSearchParams) ([]career.Career, error)
}

type CareerHandler struct {
	uc CareerSearchUsecase
}

func NewCareerHandler(uc CareerSearchUsecase) *CareerHandler {
	return &CareerHandler{uc: uc}
}

func (h *CareerHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/careers", h.HandleSearch)
}

func (h *CareerHandler) HandleSearch(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return badRequest(err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return badRequest(err)
	}

	items, err := h.uc.Search(c.Context(), usecase.CareerSearchParams{Term: c.Query("q"), Limit: limit, Offset: offset})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewCareerResponses(items))
}
