package authutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// GetToken токен доступа к API для клиента subject
func GetToken(secret, subject string, ttl time.Duration) (tokenString string, err error) {
	if secret == "" {
		return "", errors.New("не задан секрет для подписи токена")
	}
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

// GetSubject клиент API из токена; пусто, если авторизация отключена
func GetSubject(ctx *fiber.Ctx) string {
	subject, _ := GetClaims(ctx)["sub"].(string)
	return subject
}
