package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"sarah-testing/lib/llm"
	"sarah-testing/lib/smtp"
	authutils "sarah-testing/lib/utils/auth-utils"
	storeerrors "sarah-testing/lib/utils/store-errors"
	apimodels "sarah-testing/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", errors.New("не указан идентификатор")
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	fields := log.Fields{
		"path":       ctx.Path(),
		"method":     ctx.Method(),
		"request_id": ctx.GetRespHeader(fiber.HeaderXRequestID),
	}
	if subject := authutils.GetSubject(ctx); subject != "" {
		fields["client"] = subject
	}
	return log.WithFields(fields)
}

// SendError ответ с кодом по классу ошибки
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, err error) error {
	status := ErrorStatus(err)
	if status >= fiber.StatusInternalServerError {
		c.GetLogger(ctx).WithError(err).Error("ошибка обработки запроса")
	}
	return ctx.Status(status).JSON(apimodels.NewError(err.Error()))
}

func ErrorStatus(err error) int {
	switch {
	case apimodels.IsValidationError(err):
		return fiber.StatusBadRequest
	case errors.Is(err, storeerrors.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, storeerrors.ErrConstraint):
		return fiber.StatusConflict
	case errors.Is(err, llm.ErrRateLimited):
		return fiber.StatusTooManyRequests
	case errors.Is(err, llm.ErrInvalidRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, llm.ErrTransport):
		return fiber.StatusBadGateway
	case errors.Is(err, smtp.ErrNotConfigured):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	}
	return fiber.StatusInternalServerError
}
