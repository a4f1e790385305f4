package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	apimodels "sarah-testing/models/api"
)

// APIAuth проверка bearer токена; при пустом секрете API открыт
func APIAuth(secret string) fiber.Handler {
	if secret == "" {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(secret),
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError(err.Error()))
		},
	})
}
