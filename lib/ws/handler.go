package ws

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"sarah-testing/controllers"
	dbsync "sarah-testing/lib/db-sync"
	testrun "sarah-testing/lib/test-run"
	wsclient "sarah-testing/lib/ws/client"
	testrunapimodels "sarah-testing/models/api/testrun"
	wsmodels "sarah-testing/models/ws"
)

// InitWs запуск прогона с потоком прогресса: клиент отправляет StartRequest,
// сервер присылает progress на каждый вопрос и summary в конце
func InitWs(router fiber.Router) {
	router.Use("ws", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("ws", websocket.New(runHandler))
}

// @Summary Запуск прогона с прогрессом
// @Tags Прогоны
// @Description Первое сообщение клиента testrunapimodels.StartRequest, далее сервер присылает события progress, summary или error
// @Success 101 {object} wsmodels.ServerMessage
// @router /api/v1/test_runs/ws [get]
func runHandler(c *websocket.Conn) {
	client := wsclient.NewClient(c)
	var request testrunapimodels.StartRequest
	if err := client.ReadJSON(&request); err != nil {
		if !errors.Is(err, wsclient.ErrClosed) {
			_ = client.SendError(fiber.StatusBadRequest, err)
		}
		return
	}
	summary, err := testrun.Instance.Start(context.Background(), request, func(event testrunapimodels.Progress) {
		_ = client.Send(wsmodels.NewServerMessage(wsmodels.CodeProgress, event))
	})
	if len(summary.Runs) != 0 && dbsync.Instance != nil {
		if syncErr := dbsync.Instance.Push(context.Background()); syncErr != nil {
			log.WithError(syncErr).Error("ошибка выгрузки файла БД в бакет")
		}
	}
	if err != nil {
		if summary.Error == "" {
			summary.Error = err.Error()
		}
		_ = client.SendError(controllers.ErrorStatus(err), err)
	}
	_ = client.Send(wsmodels.NewServerMessage(wsmodels.CodeSummary, summary))
}
