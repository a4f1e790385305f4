package apiv1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"sarah-testing/controllers"
	"sarah-testing/lib/export"
	testrun "sarah-testing/lib/test-run"
	"sarah-testing/lib/ws"
	apimodels "sarah-testing/models/api"
	testrunapimodels "sarah-testing/models/api/testrun"
)

type testRunApiController struct {
	controllers.BaseAPIController
}

func InitTestRunApiRouters(app *fiber.App) {
	controller := testRunApiController{}
	app.Route("test_runs", func(router fiber.Router) {
		ws.InitWs(router)
		router.Get("", controller.list)
		router.Post("", controller.start)
		router.Get("compare", controller.compare)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", controller.delete)
			idRoute.Get("export/:format", controller.export)
			idRoute.Post("report", controller.report)
		})
	})
}

// @Summary Запуск прогона
// @Tags Прогоны
// @Description Прогон вопросов через модель. В режиме range создается по прогону на каждую конфигурацию параметров
// @Param   Authorization		header		string	false	"Authorization token"
// @Param	body				body		testrunapimodels.StartRequest	true	"request body"
// @Success 201 {object} apimodels.Response{data=testrunapimodels.StartSummary}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response{data=testrunapimodels.StartSummary}
// @router /api/v1/test_runs [post]
func (c *testRunApiController) start(ctx *fiber.Ctx) error {
	var payload testrunapimodels.StartRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	summary, err := testrun.Instance.Start(ctx.UserContext(), payload, nil)
	if err != nil {
		if len(summary.Runs) == 0 {
			return c.SendError(ctx, err)
		}
		// часть результатов уже сохранена, возвращаем их вместе с ошибкой
		c.GetLogger(ctx).WithError(err).Error("прогон остановлен")
		resp := apimodels.NewError(err.Error())
		resp.Data = summary
		return ctx.Status(controllers.ErrorStatus(err)).JSON(resp)
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(summary))
}

// @Summary Список прогонов
// @Tags Прогоны
// @Description Список прогонов, последние первыми
// @Param   Authorization		header		string	false	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]testrunapimodels.RunView}
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/test_runs [get]
func (c *testRunApiController) list(ctx *fiber.Ctx) error {
	resp, err := testrun.Instance.List()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получение прогона
// @Tags Прогоны
// @Description Прогон с результатами, сгруппированными по вопросам
// @Param   Authorization		header		string	false	"Authorization token"
// @Param   id          		path    	string  true    "test run ID"
// @Success 200 {object} apimodels.Response{data=testrunapimodels.RunDetails}
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/test_runs/{id} [get]
func (c *testRunApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := testrun.Instance.Get(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление прогона
// @Tags Прогоны
// @Description Удаление прогона вместе с результатами
// @Param   Authorization		header		string	false	"Authorization token"
// @Param   id          		path    	string  true    "test run ID"
// @Success 200 {object} apimodels.Response
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/test_runs/{id} [delete]
func (c *testRunApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = testrun.Instance.Delete(id); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Сравнение прогонов
// @Tags Прогоны
// @Description Ответы двух прогонов по общим вопросам
// @Param   Authorization		header		string	false	"Authorization token"
// @Param   left          		query    	string  true    "test run ID"
// @Param   right          		query    	string  true    "test run ID"
// @Success 200 {object} apimodels.Response{data=testrunapimodels.CompareView}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/test_runs/compare [get]
func (c *testRunApiController) compare(ctx *fiber.Ctx) error {
	left, right := ctx.Query("left"), ctx.Query("right")
	if left == "" || right == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указаны прогоны для сравнения"))
	}
	resp, err := testrun.Instance.Compare(ctx.UserContext(), left, right)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Выгрузка результатов
// @Tags Прогоны
// @Description Выгрузка результатов прогона в csv, xlsx или pdf
// @Param   Authorization		header		string	false	"Authorization token"
// @Param   id          		path    	string  true    "test run ID"
// @Param   format          	path    	string  true    "csv | xlsx | pdf"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/test_runs/{id}/export/{format} [get]
func (c *testRunApiController) export(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	run, rows, err := testrun.Instance.ExportRows(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	file, err := export.RunResults(ctx.Params("format"), run, rows)
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, file.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	return ctx.Status(fiber.StatusOK).Send(file.Body)
}

// @Summary Отчет по почте
// @Tags Прогоны
// @Description Отправка текстового отчета по прогону на почту
// @Param   Authorization		header		string	false	"Authorization token"
// @Param   id          		path    	string  true    "test run ID"
// @Param	body				body		testrunapimodels.ReportRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/test_runs/{id}/report [post]
func (c *testRunApiController) report(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload testrunapimodels.ReportRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = testrun.Instance.SendReport(ctx.UserContext(), id, payload.Email); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
