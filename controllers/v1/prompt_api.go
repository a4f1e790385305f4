package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"sarah-testing/controllers"
	prompthandler "sarah-testing/lib/prompts"
	apimodels "sarah-testing/models/api"
	promptapimodels "sarah-testing/models/api/prompt"
)

type promptApiController struct {
	controllers.BaseAPIController
}

func InitPromptApiRouters(app *fiber.App) {
	controller := promptApiController{}
	app.Route("prompts", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Get("grouped", controller.grouped)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Создание промпта
// @Tags Промпты
// @Description Создание промпта. Для существующего названия создается следующая версия
// @Param   Authorization		header		string	false	"Authorization token"
// @Param	body				body		promptapimodels.PromptData	true	"request body"
// @Success 201 {object} apimodels.Response{data=promptapimodels.PromptView}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/prompts [post]
func (c *promptApiController) create(ctx *fiber.Ctx) error {
	var payload promptapimodels.PromptData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := prompthandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(resp))
}

// @Summary Список промптов
// @Tags Промпты
// @Description Все версии промптов; с параметром name только версии одного промпта
// @Param   Authorization		header		string	false	"Authorization token"
// @Param   name          		query    	string  false   "prompt name"
// @Success 200 {object} apimodels.Response{data=[]promptapimodels.PromptView}
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/prompts [get]
func (c *promptApiController) list(ctx *fiber.Ctx) error {
	var (
		resp []promptapimodels.PromptView
		err  error
	)
	if name := ctx.Query("name"); name != "" {
		resp, err = prompthandler.Instance.Versions(name)
	} else {
		resp, err = prompthandler.Instance.List()
	}
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Промпты по названиям
// @Tags Промпты
// @Description Промпты, сгруппированные по названию, последняя версия первой
// @Param   Authorization		header		string	false	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]promptapimodels.PromptGroup}
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/prompts/grouped [get]
func (c *promptApiController) grouped(ctx *fiber.Ctx) error {
	resp, err := prompthandler.Instance.ListGrouped()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получение промпта
// @Tags Промпты
// @Description Получение версии промпта по ID
// @Param   Authorization		header		string	false	"Authorization token"
// @Param   id          		path    	string  true    "prompt ID"
// @Success 200 {object} apimodels.Response{data=promptapimodels.PromptView}
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/prompts/{id} [get]
func (c *promptApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := prompthandler.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление промпта
// @Tags Промпты
// @Description Удаление версии промпта. Версию, по которой есть прогоны, удалить нельзя
// @Param   Authorization		header		string	false	"Authorization token"
// @Param   id          		path    	string  true    "prompt ID"
// @Success 200 {object} apimodels.Response
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/prompts/{id} [delete]
func (c *promptApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = prompthandler.Instance.Delete(id); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
