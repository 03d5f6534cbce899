package handler

import (
	"errors"
	"strconv"

	"career-guidance/internal/delivery/http/middleware"
	"career-guidance/internal/domain/assessment"
	"career-guidance/internal/pkg/response"
	"career-guidance/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, assessment.ErrInvalidAnswerValue):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid answer value", nil, err)
	case errors.Is(err, assessment.ErrUnknownQuestion):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Unknown question", nil, err)
	case errors.Is(err, assessment.ErrSessionCompleted):
		return middleware.NewAppError(fiber.StatusConflict, "Session already completed", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrResultNotSaved):
		e := middleware.NewAppError(fiber.StatusServiceUnavailable, "Result not saved, your answers are kept. Please submit again.", nil, err)
		e.Expose = true
		return e
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

func badRequest(err error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
}
