package controllers

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"sarah-testing/lib/llm"
	"sarah-testing/lib/smtp"
	storeerrors "sarah-testing/lib/utils/store-errors"
	apimodels "sarah-testing/models/api"
)

func TestErrorStatus(t *testing.T) {
	cases := map[int]error{
		fiber.StatusBadRequest:          apimodels.NewValidationError(errors.New("bad")),
		fiber.StatusNotFound:            storeerrors.Classify(storeerrors.ErrNotFound, "нет"),
		fiber.StatusConflict:            storeerrors.Classify(storeerrors.ErrConstraint, "fk"),
		fiber.StatusTooManyRequests:     errors.Wrap(llm.ErrRateLimited, "429"),
		fiber.StatusBadGateway:          errors.Wrap(llm.ErrTransport, "timeout"),
		fiber.StatusServiceUnavailable:  errors.Wrap(smtp.ErrNotConfigured, "report"),
		fiber.StatusGatewayTimeout:      errors.Wrap(context.DeadlineExceeded, "rate"),
		fiber.StatusInternalServerError: errors.New("boom"),
	}
	for status, err := range cases {
		require.Equal(t, status, ErrorStatus(err), err.Error())
	}
	require.Equal(t, fiber.StatusBadRequest, ErrorStatus(errors.Wrap(llm.ErrInvalidRequest, "bad model")))
}
