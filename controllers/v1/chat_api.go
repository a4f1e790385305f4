package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"sarah-testing/controllers"
	chathandler "sarah-testing/lib/chat"
	apimodels "sarah-testing/models/api"
	chatapimodels "sarah-testing/models/api/chat"
)

type chatApiController struct {
	controllers.BaseAPIController
}

func InitChatApiRouters(app *fiber.App) {
	controller := chatApiController{}
	app.Post("chat", controller.send)
	app.Get("models", controller.models)
}

// @Summary Сообщение в чат
// @Tags Чат
// @Description Ответ модели на историю сообщений. Промпт передается как системная инструкция, источники вопроса прикладываются как документы
// @Param   Authorization		header		string	false	"Authorization token"
// @Param	body				body		chatapimodels.ChatRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=chatapimodels.ChatResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 429 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/chat [post]
func (c *chatApiController) send(ctx *fiber.Ctx) error {
	var payload chatapimodels.ChatRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := chathandler.Instance.Send(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Доступные модели
// @Tags Чат
// @Description Модели, для которых настроен доступ к API
// @Param   Authorization		header		string	false	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]llmmodels.Model}
// @Failure 401
// @router /api/v1/models [get]
func (c *chatApiController) models(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(chathandler.Instance.Models()))
}
