package middleware

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	dbsync "sarah-testing/lib/db-sync"
)

// SyncAfterWrite выгружает файл локальной БД в бакет после успешного изменяющего запроса
func SyncAfterWrite() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if dbsync.Instance == nil || !isWriteMethod(c.Method()) {
			return err
		}
		if err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			return err
		}
		if syncErr := dbsync.Instance.Push(c.Context()); syncErr != nil {
			log.WithError(syncErr).Error("ошибка выгрузки файла БД в бакет")
		}
		return err
	}
}

func isWriteMethod(method string) bool {
	switch method {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		return true
	}
	return false
}
