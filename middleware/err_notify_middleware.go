package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

var notifyClient = &http.Client{Timeout: 10 * time.Second}

// ErrNotify отправляет 5xx ответы на внешний адрес; пустой адрес отключает уведомления
func ErrNotify(addr string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if addr == "" {
			return err
		}
		statusCode := c.Response().StatusCode()
		if statusCode < http.StatusInternalServerError {
			return err
		}

		var data struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		}
		if unmErr := json.Unmarshal(c.Response().Body(), &data); unmErr != nil {
			log.WithError(unmErr).Debug("ответ не в формате api, отправляется как есть")
		}
		msg := data.Message
		if msg == "" {
			msg = string(c.Response().Body())
		}
		method := c.Method()
		path := c.OriginalURL()
		if r := c.Route(); r != nil {
			path = r.Path
		}

		go func() {
			payload := fmt.Sprintf(
				`{"service":"sarah-testing","code":%d,"method":%q,"path":%q,"error":%q}`,
				statusCode, method, path, msg)
			resp, reqErr := notifyClient.Post(addr, "application/json", strings.NewReader(payload))
			if reqErr != nil {
				log.WithError(reqErr).Warn("ошибка отправки уведомления об ошибке")
				return
			}
			resp.Body.Close()
		}()
		return err
	}
}
