package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"sarah-testing/controllers"
	questionhandler "sarah-testing/lib/questions"
	apimodels "sarah-testing/models/api"
	questionapimodels "sarah-testing/models/api/question"
)

type questionApiController struct {
	controllers.BaseAPIController
}

func InitQuestionApiRouters(app *fiber.App) {
	controller := questionApiController{}
	app.Route("questions", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", controller.delete)
			idRoute.Get("sources", controller.listSources)
			idRoute.Post("sources", controller.addSource)
		})
	})
}

// @Summary Создание вопроса
// @Tags Вопросы
// @Description Создание вопроса вместе с источниками (не более 10)
// @Param   Authorization		header		string	false	"Authorization token"
// @Param	body				body		questionapimodels.QuestionData	true	"request body"
// @Success 201 {object} apimodels.Response{data=questionapimodels.QuestionView}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/questions [post]
func (c *questionApiController) create(ctx *fiber.Ctx) error {
	var payload questionapimodels.QuestionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := questionhandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(resp))
}

// @Summary Список вопросов
// @Tags Вопросы
// @Description Список вопросов с источниками, последние первыми
// @Param   Authorization		header		string	false	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]questionapimodels.QuestionView}
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/questions [get]
func (c *questionApiController) list(ctx *fiber.Ctx) error {
	resp, err := questionhandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получение вопроса
// @Tags Вопросы
// @Description Получение вопроса по ID
// @Param   Authorization		header		string	false	"Authorization token"
// @Param   id          		path    	string  true    "question ID"
// @Success 200 {object} apimodels.Response{data=questionapimodels.QuestionView}
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/questions/{id} [get]
func (c *questionApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := questionhandler.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление вопроса
// @Tags Вопросы
// @Description Удаление вопроса вместе с источниками. Вопрос с результатами прогонов удалить нельзя
// @Param   Authorization		header		string	false	"Authorization token"
// @Param   id          		path    	string  true    "question ID"
// @Success 200 {object} apimodels.Response
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/questions/{id} [delete]
func (c *questionApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = questionhandler.Instance.Delete(id); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Источники вопроса
// @Tags Вопросы
// @Description Список источников вопроса
// @Param   Authorization		header		string	false	"Authorization token"
// @Param   id          		path    	string  true    "question ID"
// @Success 200 {object} apimodels.Response{data=[]questionapimodels.SourceView}
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/questions/{id}/sources [get]
func (c *questionApiController) listSources(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := questionhandler.Instance.ListSources(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Добавление источника
// @Tags Вопросы
// @Description Добавление источника к вопросу
// @Param   Authorization		header		string	false	"Authorization token"
// @Param   id          		path    	string  true    "question ID"
// @Param	body				body		questionapimodels.SourceData	true	"request body"
// @Success 201 {object} apimodels.Response{data=questionapimodels.SourceView}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/questions/{id}/sources [post]
func (c *questionApiController) addSource(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload questionapimodels.SourceData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := questionhandler.Instance.AddSource(id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(resp))
}
