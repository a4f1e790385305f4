package middleware

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	apimodels "sarah-testing/models/api"
)

// WithBodyLimit отклоняет запрос по заголовку Content-Length до чтения тела
func WithBodyLimit(limit int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentLength := c.Get(fiber.HeaderContentLength)
		if contentLength != "" && contentLength != "0" {
			size, err := strconv.ParseInt(contentLength, 10, 64)
			if err == nil && size > limit {
				return c.Status(fiber.StatusRequestEntityTooLarge).JSON(apimodels.NewError(
					fmt.Sprintf("слишком большой запрос, максимум %d байт", limit)))
			}
		}
		return c.Next()
	}
}
